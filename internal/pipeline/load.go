package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/util"
)

// ErrMissingColumns is returned when the input header lacks required columns.
var ErrMissingColumns = errors.New("input is missing required columns")

type cellTarget func(*internal.FlightObservation) **string

var observationColumns = map[string]cellTarget{
	"airline_id":        func(o *internal.FlightObservation) **string { return &o.AirlineID },
	"airline_name":      func(o *internal.FlightObservation) **string { return &o.AirlineName },
	"airline_iata":      func(o *internal.FlightObservation) **string { return &o.AirlineIATA },
	"airline_icao":      func(o *internal.FlightObservation) **string { return &o.AirlineICAO },
	"airline_call_sign": func(o *internal.FlightObservation) **string { return &o.AirlineCallSign },
	"airline_country":   func(o *internal.FlightObservation) **string { return &o.AirlineCountry },
	"airline_active":    func(o *internal.FlightObservation) **string { return &o.AirlineActive },

	"route_source_airport_id":      func(o *internal.FlightObservation) **string { return &o.RouteSourceAirportID },
	"route_destination_airport_id": func(o *internal.FlightObservation) **string { return &o.RouteDestinationAirportID },
	"route_stops":                  func(o *internal.FlightObservation) **string { return &o.RouteStops },
	"route_plane_iso":              func(o *internal.FlightObservation) **string { return &o.RoutePlaneISO },

	"plane_iso":                          func(o *internal.FlightObservation) **string { return &o.PlaneISO },
	"plane_name":                         func(o *internal.FlightObservation) **string { return &o.PlaneName },
	"aircraft_name":                      func(o *internal.FlightObservation) **string { return &o.AircraftName },
	"manufacturer":                       func(o *internal.FlightObservation) **string { return &o.Manufacturer },
	"category":                           func(o *internal.FlightObservation) **string { return &o.Category },
	"fuel_litre_per_100km_per_passenger": func(o *internal.FlightObservation) **string { return &o.FuelLitrePer100KmPerPassenger },
	"capacity_min":                       func(o *internal.FlightObservation) **string { return &o.CapacityMin },
	"capacity_max":                       func(o *internal.FlightObservation) **string { return &o.CapacityMax },
	"range_nm":                           func(o *internal.FlightObservation) **string { return &o.RangeNM },
	"co2_g_per_pax_mile":                 func(o *internal.FlightObservation) **string { return &o.CO2GPerPaxMile },

	"distance_km":      func(o *internal.FlightObservation) **string { return &o.DistanceKm },
	"distance_miles":   func(o *internal.FlightObservation) **string { return &o.DistanceMiles },
	"is_international": func(o *internal.FlightObservation) **string { return &o.IsInternational },
	"co2_total_kg":     func(o *internal.FlightObservation) **string { return &o.CO2TotalKg },
}

func init() {
	addAirportColumns("source", func(o *internal.FlightObservation) *internal.AirportColumns { return &o.Source })
	addAirportColumns("destination", func(o *internal.FlightObservation) *internal.AirportColumns { return &o.Destination })
}

// addAirportColumns registers the <role>_port_* and <role>_Type columns.
func addAirportColumns(role string, group func(*internal.FlightObservation) *internal.AirportColumns) {
	fields := map[string]func(*internal.AirportColumns) **string{
		"_port_name":              func(c *internal.AirportColumns) **string { return &c.Name },
		"_port_city":              func(c *internal.AirportColumns) **string { return &c.City },
		"_port_country":           func(c *internal.AirportColumns) **string { return &c.Country },
		"_port_iata":              func(c *internal.AirportColumns) **string { return &c.IATA },
		"_port_icao":              func(c *internal.AirportColumns) **string { return &c.ICAO },
		"_port_latitude":          func(c *internal.AirportColumns) **string { return &c.Latitude },
		"_port_longitude":         func(c *internal.AirportColumns) **string { return &c.Longitude },
		"_port_timezone":          func(c *internal.AirportColumns) **string { return &c.Timezone },
		"_port_database_timezone": func(c *internal.AirportColumns) **string { return &c.DatabaseTimezone },
		"_Type":                   func(c *internal.AirportColumns) **string { return &c.Type },
	}
	for suffix, field := range fields {
		observationColumns[role+suffix] = func(o *internal.FlightObservation) **string { return field(group(o)) }
	}
}

// RequiredColumns lists every input column the normalizer reads, sorted.
func RequiredColumns() []string {
	out := make([]string, 0, len(observationColumns))
	for name := range observationColumns {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LoadFlightData reads the curated dataset, CSV or the first sheet of a
// workbook as decided by DetectInputFormat. The first row is the header.
func LoadFlightData(path string) ([]internal.FlightObservation, error) {
	format, err := DetectInputFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rows, err := ReadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return rows, nil
	case FormatXLSX:
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rows, err := readWorkbook(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
	}
}

// ReadCSV parses CSV with a header row. Rows may be shorter or longer than
// the header; missing cells read as nil.
func ReadCSV(r io.Reader) ([]internal.FlightObservation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumns)
	}
	if err != nil {
		return nil, err
	}
	mapping, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	out := []internal.FlightObservation{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlankRecord(record) {
			continue
		}
		out = append(out, recordToObservation(mapping, record))
	}
	return out, nil
}

func readWorkbook(f *excelize.File) ([]internal.FlightObservation, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMissingColumns)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumns)
	}
	mapping, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	out := make([]internal.FlightObservation, 0, len(rows)-1)
	for _, record := range rows[1:] {
		if isBlankRecord(record) {
			continue
		}
		out = append(out, recordToObservation(mapping, record))
	}
	return out, nil
}

// mapHeader resolves each header cell to its target field. Unknown columns
// map to nil and are ignored.
func mapHeader(header []string) ([]cellTarget, error) {
	mapping := make([]cellTarget, len(header))
	found := make(map[string]bool, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if target, ok := observationColumns[name]; ok && !found[name] {
			mapping[i] = target
			found[name] = true
		}
	}

	var missing []string
	for _, name := range RequiredColumns() {
		if !found[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return mapping, nil
}

func recordToObservation(mapping []cellTarget, record []string) internal.FlightObservation {
	var obs internal.FlightObservation
	for i, target := range mapping {
		if target == nil || i >= len(record) {
			continue
		}
		*target(&obs) = util.CleanCell(&record[i])
	}
	return obs
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
