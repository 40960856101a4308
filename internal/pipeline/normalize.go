package pipeline

import (
	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/util"
)

// NormalizeRoutes coerces the route key columns of every observation and
// attaches the synthesized route id. Rows without an airline id or with a
// non-integer source or destination airport id are dropped. The result keeps
// input order and may hold several rows per route id.
func NormalizeRoutes(rows []internal.FlightObservation) []internal.NormalizedRoute {
	out := make([]internal.NormalizedRoute, 0, len(rows))
	for _, row := range rows {
		airlineID := util.CleanCell(row.AirlineID)
		source := util.ParseInt(row.RouteSourceAirportID)
		destination := util.ParseInt(row.RouteDestinationAirportID)
		if airlineID == nil || source == nil || destination == nil {
			continue
		}

		stops := 0
		if n := util.ParseIntTrunc(row.RouteStops); n != nil {
			stops = int(*n)
		}
		planeISO := util.CleanCell(row.RoutePlaneISO)

		out = append(out, internal.NormalizedRoute{
			Route: internal.Route{
				RouteID:              BuildRouteID(*airlineID, *source, *destination, stops, planeISO),
				AirlineID:            *airlineID,
				SourceAirportID:      *source,
				DestinationAirportID: *destination,
				Stops:                stops,
				PlaneISO:             planeISO,
			},
			DistanceKm:      util.ParseFloat(row.DistanceKm),
			DistanceMiles:   util.ParseFloat(row.DistanceMiles),
			IsInternational: row.IsInternational,
			CO2TotalKg:      util.ParseFloat(row.CO2TotalKg),
		})
	}
	return out
}
