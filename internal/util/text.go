package util

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NAToken is the missing-value marker some dataframe exports write into text cells.
const NAToken = "<NA>"

var (
	trueTokens  = map[string]struct{}{"Y": {}, "YES": {}, "TRUE": {}, "1": {}}
	falseTokens = map[string]struct{}{"N": {}, "NO": {}, "FALSE": {}, "0": {}}
)

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }

func BoolPtr(v bool) *bool { return &v }

func Int64Ptr(v int64) *int64 { return &v }

func Deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// CleanCell trims a text cell and maps blank and NAToken to nil.
func CleanCell(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" || s == NAToken {
		return nil
	}
	return &s
}

// NormalizeBool maps a loosely typed flag to true, false or nil. Text is
// trimmed and upper-cased before matching Y/YES/TRUE/1 and N/NO/FALSE/0;
// anything else, including nil and NaN, yields nil.
func NormalizeBool(value any) *bool {
	var text string
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		return BoolPtr(v)
	case *bool:
		if v == nil {
			return nil
		}
		return BoolPtr(*v)
	case string:
		text = v
	case *string:
		if v == nil {
			return nil
		}
		text = *v
	case float64:
		if math.IsNaN(v) {
			return nil
		}
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		if math.IsNaN(float64(v)) {
			return nil
		}
		text = strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		text = fmt.Sprint(v)
	}

	token := strings.ToUpper(strings.TrimSpace(text))
	if _, ok := trueTokens[token]; ok {
		return BoolPtr(true)
	}
	if _, ok := falseTokens[token]; ok {
		return BoolPtr(false)
	}
	return nil
}

// CompareKeys orders natural keys given as text. Two integer keys compare
// numerically, integer keys sort before non-integer keys, and everything else
// compares lexically. Ties between equal integers fall back to the raw text so
// the order stays total.
func CompareKeys(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		if c := cmp.Compare(ai, bi); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
