package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/kihuha/flighter/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps the foreign_keys pragma in effect for every statement.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS airlines (
  airline_id TEXT PRIMARY KEY,
  name TEXT,
  iata_code TEXT,
  icao_code TEXT,
  call_sign TEXT,
  country TEXT,
  is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS airports (
  airport_id INTEGER PRIMARY KEY,
  name TEXT,
  city TEXT,
  country TEXT,
  iata_code TEXT,
  icao_code TEXT,
  latitude REAL,
  longitude REAL,
  timezone TEXT,
  database_timezone TEXT,
  type TEXT
);
CREATE INDEX IF NOT EXISTS idx_airports_iata ON airports(iata_code);

CREATE TABLE IF NOT EXISTS aircraft_types (
  plane_iso TEXT PRIMARY KEY,
  plane_name TEXT,
  aircraft_name TEXT,
  manufacturer TEXT,
  category TEXT,
  fuel_litre_per_100km_per_passenger REAL,
  capacity_min REAL,
  capacity_max REAL,
  range_nm REAL,
  co2_g_per_pax_mile REAL
);

CREATE TABLE IF NOT EXISTS routes (
  route_id TEXT PRIMARY KEY,
  airline_id TEXT NOT NULL,
  source_airport_id INTEGER NOT NULL,
  destination_airport_id INTEGER NOT NULL,
  stops INTEGER NOT NULL DEFAULT 0,
  plane_iso TEXT,
  FOREIGN KEY(airline_id) REFERENCES airlines(airline_id),
  FOREIGN KEY(source_airport_id) REFERENCES airports(airport_id),
  FOREIGN KEY(destination_airport_id) REFERENCES airports(airport_id)
);
CREATE INDEX IF NOT EXISTS idx_routes_pair ON routes(source_airport_id, destination_airport_id);

CREATE TABLE IF NOT EXISTS route_metrics (
  route_id TEXT PRIMARY KEY,
  distance_km REAL,
  distance_miles REAL,
  is_international INTEGER,
  co2_total_kg REAL,
  FOREIGN KEY(route_id) REFERENCES routes(route_id)
);

CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  inputPath TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// WriteSeedFrames replaces the contents of the five seed tables in a single
// transaction. On error nothing is changed.
func (d *DB) WriteSeedFrames(frames internal.SeedFrames) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	tables := frames.Tables()
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.Exec(`DELETE FROM ` + tables[i].Name); err != nil {
			return fmt.Errorf("clear %s: %w", tables[i].Name, err)
		}
	}

	for _, t := range tables {
		if err := insertRows(tx, t); err != nil {
			return fmt.Errorf("insert %s: %w", t.Name, err)
		}
	}

	return tx.Commit()
}

func insertRows(tx *sql.Tx, t internal.Table) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, t.Name, strings.Join(t.Columns, ", "), placeholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		if _, err := stmt.Exec(row...); err != nil {
			return err
		}
	}
	return nil
}

// Counts returns the row count of each seed table.
func (d *DB) Counts() ([]internal.TableCount, error) {
	tables := []string{internal.TableAirlines, internal.TableAirports, internal.TableAircraftTypes, internal.TableRoutes, internal.TableRouteMetrics}
	out := make([]internal.TableCount, 0, len(tables))
	for _, table := range tables {
		var n int
		if err := d.conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, internal.TableCount{Table: table, Rows: n})
	}
	return out, nil
}

// ListRoutes returns the stored routes ordered by route id.
func (d *DB) ListRoutes() ([]internal.Route, error) {
	rows, err := d.conn.Query(`
SELECT route_id, airline_id, source_airport_id, destination_airport_id, stops, plane_iso
FROM routes ORDER BY route_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Route
	for rows.Next() {
		var r internal.Route
		if err := rows.Scan(&r.RouteID, &r.AirlineID, &r.SourceAirportID, &r.DestinationAirportID, &r.Stops, &r.PlaneISO); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(runID, inputPath string, counts []internal.TableCount) error {
	byTable := make(map[string]int, len(counts))
	for _, c := range counts {
		byTable[c.Table] = c.Rows
	}
	countsJSON, _ := json.Marshal(byTable)
	_, err := d.conn.Exec(`INSERT INTO runs (id, inputPath, countsJson) VALUES (?, ?, ?)`, runID, inputPath, string(countsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
