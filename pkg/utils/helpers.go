package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseValue converts a raw cell to int, float64 or, failing both, the trimmed string.
func ParseValue(s string) interface{} {
	s = strings.TrimSpace(s)

	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// ParseCount parses a non-negative whole number, tolerating "12.0" style cells.
func ParseCount(s string) (int64, error) {
	switch v := ParseValue(s).(type) {
	case int:
		if v < 0 {
			return 0, fmt.Errorf("negative count %d", v)
		}
		return int64(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, fmt.Errorf("count %q is not a whole number", s)
		}
		if v < 0 {
			return 0, fmt.Errorf("negative count %v", v)
		}
		if v >= math.MaxInt64 {
			return 0, fmt.Errorf("count %q is out of range", s)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("count %q is not numeric", s)
	}
}
