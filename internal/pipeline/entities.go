package pipeline

import (
	"cmp"
	"slices"

	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/util"
)

// BuildAirlines returns one airline per distinct airline id, first occurrence
// wins. Rows without an airline id are skipped. A missing or unrecognised
// active flag defaults to true.
func BuildAirlines(rows []internal.FlightObservation) []internal.Airline {
	seen := make(map[string]struct{}, len(rows))
	out := make([]internal.Airline, 0)
	for _, row := range rows {
		id := util.CleanCell(row.AirlineID)
		if id == nil {
			continue
		}
		if _, exists := seen[*id]; exists {
			continue
		}
		seen[*id] = struct{}{}

		active := true
		if flag := util.NormalizeBool(row.AirlineActive); flag != nil {
			active = *flag
		}
		out = append(out, internal.Airline{
			AirlineID: *id,
			Name:      util.CleanCell(row.AirlineName),
			IATACode:  util.CleanCell(row.AirlineIATA),
			ICAOCode:  util.CleanCell(row.AirlineICAO),
			CallSign:  util.CleanCell(row.AirlineCallSign),
			Country:   util.CleanCell(row.AirlineCountry),
			IsActive:  active,
		})
	}

	slices.SortFunc(out, func(a, b internal.Airline) int {
		return util.CompareKeys(a.AirlineID, b.AirlineID)
	})
	return out
}

// BuildAirports merges the source-role and destination-role column groups into
// one airport stream and keeps one airport per id. The stream holds every
// source-role record in row order followed by every destination-role record,
// and the first record for an id wins.
func BuildAirports(rows []internal.FlightObservation) []internal.Airport {
	type candidate struct {
		id      *string
		columns internal.AirportColumns
	}
	stream := make([]candidate, 0, 2*len(rows))
	for _, row := range rows {
		stream = append(stream, candidate{id: row.RouteSourceAirportID, columns: row.Source})
	}
	for _, row := range rows {
		stream = append(stream, candidate{id: row.RouteDestinationAirportID, columns: row.Destination})
	}

	seen := make(map[int64]struct{}, len(rows))
	out := make([]internal.Airport, 0)
	for _, c := range stream {
		id := util.ParseInt(c.id)
		if id == nil {
			continue
		}
		if _, exists := seen[*id]; exists {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, airportFromColumns(*id, c.columns))
	}

	slices.SortFunc(out, func(a, b internal.Airport) int {
		return cmp.Compare(a.AirportID, b.AirportID)
	})
	return out
}

func airportFromColumns(id int64, c internal.AirportColumns) internal.Airport {
	return internal.Airport{
		AirportID:        id,
		Name:             util.CleanCell(c.Name),
		City:             util.CleanCell(c.City),
		Country:          util.CleanCell(c.Country),
		IATACode:         util.CleanCell(c.IATA),
		ICAOCode:         util.CleanCell(c.ICAO),
		Latitude:         util.ParseFloat(c.Latitude),
		Longitude:        util.ParseFloat(c.Longitude),
		Timezone:         util.CleanCell(c.Timezone),
		DatabaseTimezone: util.CleanCell(c.DatabaseTimezone),
		Type:             util.CleanCell(c.Type),
	}
}

// BuildAircraftTypes keeps one aircraft type per plane ISO code. Codes are
// trimmed; blank and <NA> codes are skipped.
func BuildAircraftTypes(rows []internal.FlightObservation) []internal.AircraftType {
	seen := make(map[string]struct{})
	out := make([]internal.AircraftType, 0)
	for _, row := range rows {
		iso := util.CleanCell(row.PlaneISO)
		if iso == nil {
			continue
		}
		if _, exists := seen[*iso]; exists {
			continue
		}
		seen[*iso] = struct{}{}

		out = append(out, internal.AircraftType{
			PlaneISO:                      *iso,
			PlaneName:                     util.CleanCell(row.PlaneName),
			AircraftName:                  util.CleanCell(row.AircraftName),
			Manufacturer:                  util.CleanCell(row.Manufacturer),
			Category:                      util.CleanCell(row.Category),
			FuelLitrePer100KmPerPassenger: util.ParseFloat(row.FuelLitrePer100KmPerPassenger),
			CapacityMin:                   util.ParseFloat(row.CapacityMin),
			CapacityMax:                   util.ParseFloat(row.CapacityMax),
			RangeNM:                       util.ParseFloat(row.RangeNM),
			CO2GPerPaxMile:                util.ParseFloat(row.CO2GPerPaxMile),
		})
	}

	slices.SortFunc(out, func(a, b internal.AircraftType) int {
		return cmp.Compare(a.PlaneISO, b.PlaneISO)
	})
	return out
}
