package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/util"
)

func TestExportSeedFramesToXLSX(t *testing.T) {
	frames := internal.SeedFrames{
		Airlines: []internal.Airline{{AirlineID: "24", Name: util.StringPtr("American Airlines"), IsActive: true}},
		Airports: []internal.Airport{{AirportID: 3682}, {AirportID: 3797, Name: util.StringPtr("John F Kennedy")}},
	}
	path := filepath.Join(t.TempDir(), "out", "seed.xlsx")

	require.NoError(t, ExportSeedFramesToXLSX(frames, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"airlines", "airports", "aircraft_types", "routes", "route_metrics"}, f.GetSheetList())

	rows, err := f.GetRows("airports")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "airport_id", rows[0][0])
	assert.Equal(t, []string{"3797", "John F Kennedy"}, rows[2][:2])
	// nil cells stay empty, so the row ends after the id
	assert.Equal(t, []string{"3682"}, rows[1])

	rows, err = f.GetRows("routes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, internal.RouteColumns, rows[0])
}
