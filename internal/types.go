package internal

// FlightObservation is one row of the curated wide dataset. Cells are kept as
// raw text; nil means the cell was missing or blank.
type FlightObservation struct {
	AirlineID       *string
	AirlineName     *string
	AirlineIATA     *string
	AirlineICAO     *string
	AirlineCallSign *string
	AirlineCountry  *string
	AirlineActive   *string

	RouteSourceAirportID      *string
	RouteDestinationAirportID *string
	RouteStops                *string
	RoutePlaneISO             *string

	Source      AirportColumns
	Destination AirportColumns

	PlaneISO                      *string
	PlaneName                     *string
	AircraftName                  *string
	Manufacturer                  *string
	Category                      *string
	FuelLitrePer100KmPerPassenger *string
	CapacityMin                   *string
	CapacityMax                   *string
	RangeNM                       *string
	CO2GPerPaxMile                *string

	DistanceKm      *string
	DistanceMiles   *string
	IsInternational *string
	CO2TotalKg      *string
}

// AirportColumns is one role-labelled airport column group (source_port_* or
// destination_port_*).
type AirportColumns struct {
	Name             *string
	City             *string
	Country          *string
	IATA             *string
	ICAO             *string
	Latitude         *string
	Longitude        *string
	Timezone         *string
	DatabaseTimezone *string
	Type             *string
}

type Airline struct {
	AirlineID string
	Name      *string
	IATACode  *string
	ICAOCode  *string
	CallSign  *string
	Country   *string
	IsActive  bool
}

type Airport struct {
	AirportID        int64
	Name             *string
	City             *string
	Country          *string
	IATACode         *string
	ICAOCode         *string
	Latitude         *float64
	Longitude        *float64
	Timezone         *string
	DatabaseTimezone *string
	Type             *string
}

type AircraftType struct {
	PlaneISO                      string
	PlaneName                     *string
	AircraftName                  *string
	Manufacturer                  *string
	Category                      *string
	FuelLitrePer100KmPerPassenger *float64
	CapacityMin                   *float64
	CapacityMax                   *float64
	RangeNM                       *float64
	CO2GPerPaxMile                *float64
}

type Route struct {
	RouteID              string
	AirlineID            string
	SourceAirportID      int64
	DestinationAirportID int64
	Stops                int
	PlaneISO             *string
}

type RouteMetric struct {
	RouteID         string
	DistanceKm      *float64
	DistanceMiles   *float64
	IsInternational *bool
	CO2TotalKg      *float64
}

// NormalizedRoute is one route occurrence after key coercion. Routes and
// route metrics are both finalized from the same slice of these.
type NormalizedRoute struct {
	Route
	DistanceKm      *float64
	DistanceMiles   *float64
	IsInternational *string
	CO2TotalKg      *float64
}

// SeedFrames is the bundle of normalized tables handed to renderers. Every
// table is sorted ascending by its key.
type SeedFrames struct {
	Airlines      []Airline
	Airports      []Airport
	AircraftTypes []AircraftType
	Routes        []Route
	RouteMetrics  []RouteMetric
}

type TableCount struct {
	Table string
	Rows  int
}

func (f SeedFrames) Counts() []TableCount {
	return []TableCount{
		{Table: TableAirlines, Rows: len(f.Airlines)},
		{Table: TableAirports, Rows: len(f.Airports)},
		{Table: TableAircraftTypes, Rows: len(f.AircraftTypes)},
		{Table: TableRoutes, Rows: len(f.Routes)},
		{Table: TableRouteMetrics, Rows: len(f.RouteMetrics)},
	}
}

const (
	TableAirlines      = "airlines"
	TableAirports      = "airports"
	TableAircraftTypes = "aircraft_types"
	TableRoutes        = "routes"
	TableRouteMetrics  = "route_metrics"
)

// Output column order per table. SQL, XLSX and SQLite writers all use these.
var AirlineColumns = []string{"airline_id", "name", "iata_code", "icao_code", "call_sign", "country", "is_active"}

var AirportColumnNames = []string{
	"airport_id", "name", "city", "country", "iata_code", "icao_code",
	"latitude", "longitude", "timezone", "database_timezone", "type",
}

var AircraftTypeColumns = []string{
	"plane_iso", "plane_name", "aircraft_name", "manufacturer", "category",
	"fuel_litre_per_100km_per_passenger", "capacity_min", "capacity_max", "range_nm", "co2_g_per_pax_mile",
}

var RouteColumns = []string{"route_id", "airline_id", "source_airport_id", "destination_airport_id", "stops", "plane_iso"}

var RouteMetricColumns = []string{"route_id", "distance_km", "distance_miles", "is_international", "co2_total_kg"}
