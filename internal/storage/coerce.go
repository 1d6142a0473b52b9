package storage

import (
	"strconv"
	"strings"
	"time"
)

// Coercion helpers for reading hand-edited or legacy state files. Each one
// accepts whatever JSON type shows up and falls back to a default instead of
// failing.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asFloat(v any, def float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f
		}
	}
	return def
}

func clampInt(v any, lo, hi, def int) int {
	var n int
	switch x := v.(type) {
	case float64:
		n = int(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return def
		}
		n = int(f)
	case bool:
		if x {
			n = 1
		}
	default:
		return def
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// asTime reads an RFC 3339 string, or a Unix timestamp in seconds for files
// written by older versions. Anything else yields def.
func asTime(v any, def time.Time) time.Time {
	switch x := v.(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, x); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, x); err == nil {
			return t
		}
	case float64:
		if x > 0 {
			sec := int64(x)
			nsec := int64((x - float64(sec)) * 1e9)
			return time.Unix(sec, nsec)
		}
	}
	return def
}

func asStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
