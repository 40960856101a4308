package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/util"
)

func sampleFrames() internal.SeedFrames {
	return internal.SeedFrames{
		Airlines: []internal.Airline{
			{AirlineID: "24", Name: util.StringPtr("American Airlines"), IATACode: util.StringPtr("AA"), IsActive: true},
			{AirlineID: "410", Name: util.StringPtr("Aerocondor"), CallSign: util.StringPtr("ANDI'S"), IsActive: false},
		},
		Airports: []internal.Airport{
			{AirportID: 3682, Name: util.StringPtr("Hartsfield Jackson"), Latitude: util.FloatPtr(33.6367)},
			{AirportID: 3797, Name: util.StringPtr("John F Kennedy")},
		},
		Routes: []internal.Route{
			{RouteID: "61ea514f-0848-5ac9-b2e5-7399fb5b6173", AirlineID: "24", SourceAirportID: 3682, DestinationAirportID: 3797, PlaneISO: util.StringPtr("738")},
		},
		RouteMetrics: []internal.RouteMetric{
			{RouteID: "61ea514f-0848-5ac9-b2e5-7399fb5b6173", DistanceKm: util.FloatPtr(1223.5), IsInternational: util.BoolPtr(false)},
		},
	}
}

func TestLiteral(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{"plain", "'plain'"},
		{"O'Hare", "'O''Hare'"},
		{true, "TRUE"},
		{false, "FALSE"},
		{3, "3"},
		{int64(3682), "3682"},
		{1223.5, "1223.5"},
		{33.0, "33"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Literal(tc.in), "Literal(%#v)", tc.in)
	}
}

func TestRenderSeedSQLStructure(t *testing.T) {
	out := RenderSeedSQL(sampleFrames(), Options{})

	assert.Contains(t, out, "-- airlines: 2 rows\n")
	assert.Contains(t, out, "-- aircraft_types: 0 rows\n")

	begin := strings.Index(out, "BEGIN;")
	commit := strings.Index(out, "COMMIT;")
	require.GreaterOrEqual(t, begin, 0)
	require.Greater(t, commit, begin)

	// foreign-key order inside the transaction
	order := []string{
		"INSERT INTO airlines ",
		"INSERT INTO airports ",
		"-- aircraft_types\n-- no rows",
		"INSERT INTO routes ",
		"INSERT INTO route_metrics ",
	}
	last := begin
	for _, marker := range order {
		idx := strings.Index(out, marker)
		require.Greater(t, idx, last, "marker %q out of order", marker)
		last = idx
	}
	assert.Less(t, last, commit)

	assert.Contains(t, out, "('410', 'Aerocondor', NULL, NULL, 'ANDI''S', NULL, FALSE)")
	assert.Contains(t, out, "ON CONFLICT (airline_id) DO UPDATE SET\n  name = EXCLUDED.name,")
	assert.Contains(t, out, "ON CONFLICT (route_id) DO UPDATE SET\n  distance_km = EXCLUDED.distance_km,")
	assert.NotContains(t, out, "airline_id = EXCLUDED.airline_id,\n  name")
	assert.NotContains(t, out, "flight schedules")
}

func TestRenderSeedSQLBatches(t *testing.T) {
	frames := internal.SeedFrames{}
	for i := range 5 {
		frames.Airports = append(frames.Airports, internal.Airport{AirportID: int64(i + 1)})
	}

	out := RenderSeedSQL(frames, Options{BatchSize: 2})
	assert.Equal(t, 3, strings.Count(out, "INSERT INTO airports "))
	assert.Equal(t, 3, strings.Count(out, "ON CONFLICT (airport_id)"))

	out = RenderSeedSQL(frames, Options{})
	assert.Equal(t, 1, strings.Count(out, "INSERT INTO airports "))
}

func TestRenderSeedSQLAppendsSchedules(t *testing.T) {
	schedules := "INSERT INTO flight_schedules SELECT 1;\n\n"
	out := RenderSeedSQL(sampleFrames(), Options{SchedulesSQL: &schedules})

	commit := strings.Index(out, "COMMIT;")
	idx := strings.Index(out, "-- flight schedules\nINSERT INTO flight_schedules SELECT 1;\n")
	require.Greater(t, idx, commit)
	assert.True(t, strings.HasSuffix(out, "SELECT 1;\n"))
}

func TestRenderSeedSQLDeterministic(t *testing.T) {
	a := RenderSeedSQL(sampleFrames(), Options{BatchSize: 1})
	b := RenderSeedSQL(sampleFrames(), Options{BatchSize: 1})
	assert.Equal(t, a, b)
}

func TestLoadOptionalSchedulesSQL(t *testing.T) {
	dir := t.TempDir()

	got, err := LoadOptionalSchedulesSQL("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = LoadOptionalSchedulesSQL(filepath.Join(dir, "missing.sql"))
	require.NoError(t, err)
	assert.Nil(t, got)

	blank := filepath.Join(dir, "blank.sql")
	require.NoError(t, os.WriteFile(blank, []byte("  \n\t\n"), 0o644))
	got, err = LoadOptionalSchedulesSQL(blank)
	require.NoError(t, err)
	assert.Nil(t, got)

	present := filepath.Join(dir, "schedules.sql")
	require.NoError(t, os.WriteFile(present, []byte("SELECT 1;\n"), 0o644))
	got, err = LoadOptionalSchedulesSQL(present)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "SELECT 1;\n", *got)
}

func TestWriteSeedSQL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated", "001_seed_bundle.sql")
	sql := RenderSeedSQL(sampleFrames(), Options{})

	require.NoError(t, WriteSeedSQL(path, sql))

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sql, string(blob))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
