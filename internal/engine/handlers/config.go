package handlers

import (
	"math"
	"strconv"
)

// cfgNum reads a numeric computeConfig entry; only finite values count.
func cfgNum(cfg map[string]any, key string) (float64, bool) {
	raw, ok := cfg[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, finite(v)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, finite(f)
	default:
		return 0, false
	}
}

// cfgString reads a string computeConfig entry with a default.
func cfgString(cfg map[string]any, key, def string) string {
	if s, ok := cfg[key].(string); ok && s != "" {
		return s
	}
	return def
}

// cfgDecimals reads the output decimal count, defaulting when absent.
func cfgDecimals(cfg map[string]any, def int) int {
	if d, ok := cfgNum(cfg, "decimals"); ok {
		return int(d)
	}
	return def
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
