package internal

// Table is a renderer-facing view of one output table: its name, key column,
// ordered columns and row values. Nil cells are untyped nil.
type Table struct {
	Name    string
	Key     string
	Columns []string
	Rows    [][]any
}

// Tables returns the five tables in foreign-key order: airlines, airports,
// aircraft types, routes, route metrics.
func (f SeedFrames) Tables() []Table {
	return []Table{
		{Name: TableAirlines, Key: "airline_id", Columns: AirlineColumns, Rows: rowsOf(f.Airlines)},
		{Name: TableAirports, Key: "airport_id", Columns: AirportColumnNames, Rows: rowsOf(f.Airports)},
		{Name: TableAircraftTypes, Key: "plane_iso", Columns: AircraftTypeColumns, Rows: rowsOf(f.AircraftTypes)},
		{Name: TableRoutes, Key: "route_id", Columns: RouteColumns, Rows: rowsOf(f.Routes)},
		{Name: TableRouteMetrics, Key: "route_id", Columns: RouteMetricColumns, Rows: rowsOf(f.RouteMetrics)},
	}
}

type valuer interface {
	Values() []any
}

func rowsOf[T valuer](items []T) [][]any {
	out := make([][]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.Values())
	}
	return out
}

func (a Airline) Values() []any {
	return []any{a.AirlineID, text(a.Name), text(a.IATACode), text(a.ICAOCode), text(a.CallSign), text(a.Country), a.IsActive}
}

func (a Airport) Values() []any {
	return []any{
		a.AirportID, text(a.Name), text(a.City), text(a.Country), text(a.IATACode), text(a.ICAOCode),
		number(a.Latitude), number(a.Longitude), text(a.Timezone), text(a.DatabaseTimezone), text(a.Type),
	}
}

func (a AircraftType) Values() []any {
	return []any{
		a.PlaneISO, text(a.PlaneName), text(a.AircraftName), text(a.Manufacturer), text(a.Category),
		number(a.FuelLitrePer100KmPerPassenger), number(a.CapacityMin), number(a.CapacityMax), number(a.RangeNM), number(a.CO2GPerPaxMile),
	}
}

func (r Route) Values() []any {
	return []any{r.RouteID, r.AirlineID, r.SourceAirportID, r.DestinationAirportID, r.Stops, text(r.PlaneISO)}
}

func (m RouteMetric) Values() []any {
	return []any{m.RouteID, number(m.DistanceKm), number(m.DistanceMiles), flag(m.IsInternational), number(m.CO2TotalKg)}
}

func text(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func number(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func flag(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}
