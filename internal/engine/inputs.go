package engine

import (
	"math"
	"strconv"
	"strings"
)

// Reserved input keys. KeyRegen carries a nonce that forces recomputation
// for randomized engines; KeyMode selects a sub-mode for text transforms.
const (
	KeyRegen = "_regen"
	KeyMode  = "mode"
)

// Inputs is the raw per-request field mapping: field name to scalar
// (string, bool, or number). The dispatcher never retains it.
type Inputs map[string]any

// Num converts a raw field value to a number. A value is numeric only if
// the conversion is finite: empty strings, NaN and infinities are absent.
func (in Inputs) Num(key string) (float64, bool) {
	raw, ok := in[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, isFinite(v)
	case float32:
		return float64(v), isFinite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, isFinite(f)
	default:
		return 0, false
	}
}

// Str returns the field as a string; non-string values are absent.
func (in Inputs) Str(key string) string {
	if s, ok := in[key].(string); ok {
		return s
	}
	return ""
}

// Bool returns the field truthiness: booleans directly, anything else false.
func (in Inputs) Bool(key string) bool {
	b, _ := in[key].(bool)
	return b
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Round rounds to the given decimal count, half away from zero on the
// scaled value, identically regardless of sign.
func Round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// Round2 is the default rounding for currency/measurement outputs.
func Round2(v float64) float64 {
	return Round(v, 2)
}
