package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/kihuha/flighter/internal/util"
)

// RouteKeySeparator joins the route key components before hashing. Changing
// it (or RouteNamespace) changes every generated route id.
const RouteKeySeparator = "|"

// RouteNamespace is the RFC 4122 URL namespace, so ids match
// uuid5(NAMESPACE_URL, key) from any other implementation.
var RouteNamespace = uuid.NameSpaceURL

// ErrMissingKey is returned when a route key component is missing or not numeric.
var ErrMissingKey = errors.New("missing route key component")

// BuildRouteID derives the route id from already-coerced key components. A nil
// plane ISO code is hashed as the empty string.
func BuildRouteID(airlineID string, sourceAirportID, destinationAirportID int64, stops int, planeISO *string) string {
	key := strings.Join([]string{
		airlineID,
		strconv.FormatInt(sourceAirportID, 10),
		strconv.FormatInt(destinationAirportID, 10),
		strconv.Itoa(stops),
		util.Deref(planeISO),
	}, RouteKeySeparator)
	return uuid.NewSHA1(RouteNamespace, []byte(key)).String()
}

// RouteID coerces loosely typed key components and derives the route id.
// Airport ids accept integers, integral floats and numeric text; stops that do
// not parse count as zero. A blank airline id or a missing airport id returns
// ErrMissingKey.
func RouteID(airlineID any, sourceAirportID, destinationAirportID, stops any, planeISO *string) (string, error) {
	airline, ok := airlineKey(airlineID)
	if !ok {
		return "", fmt.Errorf("airline id: %w", ErrMissingKey)
	}
	source, ok := util.CoerceInt(sourceAirportID)
	if !ok {
		return "", fmt.Errorf("source airport id %v: %w", sourceAirportID, ErrMissingKey)
	}
	destination, ok := util.CoerceInt(destinationAirportID)
	if !ok {
		return "", fmt.Errorf("destination airport id %v: %w", destinationAirportID, ErrMissingKey)
	}
	return BuildRouteID(airline, source, destination, coerceStops(stops), util.CleanCell(planeISO)), nil
}

func airlineKey(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		cleaned := util.CleanCell(&v)
		return util.Deref(cleaned), cleaned != nil
	case *string:
		if v == nil {
			return "", false
		}
		return airlineKey(*v)
	default:
		s := strings.TrimSpace(fmt.Sprint(v))
		return s, s != ""
	}
}

func coerceStops(value any) int {
	switch v := value.(type) {
	case *string:
		if n := util.ParseIntTrunc(v); n != nil {
			return int(*n)
		}
		return 0
	case string:
		return coerceStops(&v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	}
	if n, ok := util.CoerceInt(value); ok {
		return int(n)
	}
	return 0
}
