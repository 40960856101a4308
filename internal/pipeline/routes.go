package pipeline

import (
	"cmp"
	"slices"

	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/util"
)

// BuildRoutes keeps the first normalized row for each route id.
func BuildRoutes(normalized []internal.NormalizedRoute) []internal.Route {
	seen := make(map[string]struct{}, len(normalized))
	out := make([]internal.Route, 0)
	for _, row := range normalized {
		if _, exists := seen[row.RouteID]; exists {
			continue
		}
		seen[row.RouteID] = struct{}{}
		out = append(out, row.Route)
	}

	slices.SortFunc(out, func(a, b internal.Route) int {
		return cmp.Compare(a.RouteID, b.RouteID)
	})
	return out
}

// BuildRouteMetrics keeps the metrics of the first normalized row for each
// route id. The international flag has no default: unknown stays nil.
func BuildRouteMetrics(normalized []internal.NormalizedRoute) []internal.RouteMetric {
	seen := make(map[string]struct{}, len(normalized))
	out := make([]internal.RouteMetric, 0)
	for _, row := range normalized {
		if _, exists := seen[row.RouteID]; exists {
			continue
		}
		seen[row.RouteID] = struct{}{}
		out = append(out, internal.RouteMetric{
			RouteID:         row.RouteID,
			DistanceKm:      row.DistanceKm,
			DistanceMiles:   row.DistanceMiles,
			IsInternational: util.NormalizeBool(row.IsInternational),
			CO2TotalKg:      row.CO2TotalKg,
		})
	}

	slices.SortFunc(out, func(a, b internal.RouteMetric) int {
		return cmp.Compare(a.RouteID, b.RouteID)
	})
	return out
}
