// Package emit renders normalized seed tables as a PostgreSQL seed bundle.
package emit

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/util"
)

const DefaultBatchSize = 500

type Options struct {
	// BatchSize caps the rows per INSERT statement. Zero means DefaultBatchSize.
	BatchSize int
	// SchedulesSQL is appended verbatim after the seed transaction when set.
	SchedulesSQL *string
}

// RenderSeedSQL renders all tables inside one transaction, in foreign-key
// order, as idempotent upserts. The output depends only on frames and opts.
func RenderSeedSQL(frames internal.SeedFrames, opts Options) string {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	tables := frames.Tables()

	var b strings.Builder
	b.WriteString("-- Flighter seed bundle. Generated by flightseed; do not edit by hand.\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "-- %s: %d rows\n", t.Name, len(t.Rows))
	}
	b.WriteString("\nBEGIN;\n")

	for _, t := range tables {
		fmt.Fprintf(&b, "\n-- %s\n", t.Name)
		if len(t.Rows) == 0 {
			b.WriteString("-- no rows\n")
			continue
		}
		for start := 0; start < len(t.Rows); start += batch {
			end := min(start+batch, len(t.Rows))
			writeUpsert(&b, t, t.Rows[start:end])
		}
	}

	b.WriteString("\nCOMMIT;\n")

	if opts.SchedulesSQL != nil {
		b.WriteString("\n-- flight schedules\n")
		b.WriteString(strings.TrimRight(*opts.SchedulesSQL, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func writeUpsert(b *strings.Builder, t internal.Table, rows [][]any) {
	fmt.Fprintf(b, "INSERT INTO %s (%s) VALUES\n", t.Name, strings.Join(t.Columns, ", "))
	for i, row := range rows {
		b.WriteString("  (")
		for j, value := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(Literal(value))
		}
		b.WriteString(")")
		if i < len(rows)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	updates := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		if col == t.Key {
			continue
		}
		updates = append(updates, fmt.Sprintf("  %s = EXCLUDED.%s", col, col))
	}
	if len(updates) == 0 {
		fmt.Fprintf(b, "ON CONFLICT (%s) DO NOTHING;\n", t.Key)
		return
	}
	fmt.Fprintf(b, "ON CONFLICT (%s) DO UPDATE SET\n%s;\n", t.Key, strings.Join(updates, ",\n"))
}

// Literal renders one cell as a SQL literal.
func Literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return Literal(fmt.Sprint(v))
	}
}

// LoadOptionalSchedulesSQL reads the schedule SQL appended to the bundle. A
// missing or blank file yields nil.
func LoadOptionalSchedulesSQL(path string) (*string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	blob, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read schedules sql: %w", err)
	}
	if strings.TrimSpace(string(blob)) == "" {
		return nil, nil
	}
	return util.StringPtr(string(blob)), nil
}

// WriteSeedSQL writes the rendered bundle atomically.
func WriteSeedSQL(path, sql string) error {
	return util.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, sql)
		return err
	})
}
