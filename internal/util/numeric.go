package util

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat parses a numeric cell. Blank, non-numeric, NaN and infinite
// values yield nil.
func ParseFloat(v *string) *float64 {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	return &parsed
}

// ParseInt parses an integral cell. "12" and "12.0" both yield 12; fractional
// or non-numeric text yields nil.
func ParseInt(v *string) *int64 {
	if v == nil {
		return nil
	}
	if n, ok := CoerceInt(*v); ok {
		return &n
	}
	return nil
}

// ParseIntTrunc is ParseInt but truncates fractional values toward zero.
func ParseIntTrunc(v *string) *int64 {
	f := ParseFloat(v)
	if f == nil {
		return nil
	}
	if n, ok := CoerceInt(*v); ok {
		return &n
	}
	if *f >= math.MaxInt64 || *f < math.MinInt64 {
		return nil
	}
	n := int64(*f)
	return &n
}

// CoerceInt converts Go integers, integral floats and integral numeric text
// to int64. The bool result is false for anything else.
func CoerceInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return integralFloat(float64(v))
	case float64:
		return integralFloat(v)
	case *int64:
		if v == nil {
			return 0, false
		}
		return *v, true
	case *string:
		if v == nil {
			return 0, false
		}
		return CoerceInt(*v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return integralFloat(f)
	default:
		return 0, false
	}
}

func integralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
