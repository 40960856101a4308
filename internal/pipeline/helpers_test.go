package pipeline

import (
	"testing"

	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/util"
)

// observation builds a row from input column names, so fixtures read like the
// dataset header.
func observation(t *testing.T, cells map[string]string) internal.FlightObservation {
	t.Helper()
	var obs internal.FlightObservation
	for name, value := range cells {
		target, ok := observationColumns[name]
		if !ok {
			t.Fatalf("unknown column %q", name)
		}
		*target(&obs) = util.CleanCell(&value)
	}
	return obs
}
