package pipeline

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/logging"
)

// ErrInvariant reports a violated table invariant (duplicate key or an
// orphaned route id). It indicates a bug, not bad input.
var ErrInvariant = errors.New("seed frame invariant violated")

// BuildSeedFrames derives all five tables from the observations. Routes are
// normalized once and shared read-only by the route and route metric
// builders. Each builder checks its own keys; route closure is checked once
// all tables are built. Either every table is returned or an error is.
func BuildSeedFrames(rows []internal.FlightObservation) (internal.SeedFrames, error) {
	normalized := NormalizeRoutes(rows)

	var frames internal.SeedFrames
	var g errgroup.Group
	g.Go(func() error {
		frames.Airlines = BuildAirlines(rows)
		return verifyAirlines(frames.Airlines)
	})
	g.Go(func() error {
		frames.Airports = BuildAirports(rows)
		return verifyAirports(frames.Airports)
	})
	g.Go(func() error {
		frames.AircraftTypes = BuildAircraftTypes(rows)
		return verifyAircraftTypes(frames.AircraftTypes)
	})
	g.Go(func() error {
		frames.Routes = BuildRoutes(normalized)
		return verifyRoutes(frames.Routes)
	})
	g.Go(func() error {
		frames.RouteMetrics = BuildRouteMetrics(normalized)
		return verifyRouteMetrics(frames.RouteMetrics)
	})
	if err := g.Wait(); err != nil {
		return internal.SeedFrames{}, err
	}

	if err := verifyRouteClosure(frames.Routes, frames.RouteMetrics); err != nil {
		return internal.SeedFrames{}, err
	}

	logging.Debug("built seed frames",
		"input_rows", len(rows),
		"route_rows", len(normalized),
		"route_rows_dropped", len(rows)-len(normalized),
		"airlines", len(frames.Airlines),
		"airports", len(frames.Airports),
		"aircraft_types", len(frames.AircraftTypes),
		"routes", len(frames.Routes),
		"route_metrics", len(frames.RouteMetrics),
	)
	return frames, nil
}

// VerifySeedFrames checks key uniqueness in every table and that routes and
// route metrics cover exactly the same route ids.
func VerifySeedFrames(frames internal.SeedFrames) error {
	checks := []func() error{
		func() error { return verifyAirlines(frames.Airlines) },
		func() error { return verifyAirports(frames.Airports) },
		func() error { return verifyAircraftTypes(frames.AircraftTypes) },
		func() error { return verifyRoutes(frames.Routes) },
		func() error { return verifyRouteMetrics(frames.RouteMetrics) },
		func() error { return verifyRouteClosure(frames.Routes, frames.RouteMetrics) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func verifyAirlines(rows []internal.Airline) error {
	return uniqueKeys(internal.TableAirlines, rows, func(a internal.Airline) string { return a.AirlineID })
}

func verifyAirports(rows []internal.Airport) error {
	return uniqueKeys(internal.TableAirports, rows, func(a internal.Airport) string {
		return strconv.FormatInt(a.AirportID, 10)
	})
}

func verifyAircraftTypes(rows []internal.AircraftType) error {
	return uniqueKeys(internal.TableAircraftTypes, rows, func(a internal.AircraftType) string { return a.PlaneISO })
}

func verifyRoutes(rows []internal.Route) error {
	return uniqueKeys(internal.TableRoutes, rows, func(r internal.Route) string { return r.RouteID })
}

func verifyRouteMetrics(rows []internal.RouteMetric) error {
	return uniqueKeys(internal.TableRouteMetrics, rows, func(m internal.RouteMetric) string { return m.RouteID })
}

func verifyRouteClosure(routes []internal.Route, metrics []internal.RouteMetric) error {
	if len(routes) != len(metrics) {
		return fmt.Errorf("%w: %d routes but %d route metrics", ErrInvariant, len(routes), len(metrics))
	}
	routeIDs := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		routeIDs[r.RouteID] = struct{}{}
	}
	for _, m := range metrics {
		if _, ok := routeIDs[m.RouteID]; !ok {
			return fmt.Errorf("%w: route metric %s has no route", ErrInvariant, m.RouteID)
		}
	}
	return nil
}

func uniqueKeys[T any](table string, rows []T, key func(T) string) error {
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, exists := seen[k]; exists {
			return fmt.Errorf("%w: duplicate key %q in %s", ErrInvariant, k, table)
		}
		seen[k] = struct{}{}
	}
	return nil
}
