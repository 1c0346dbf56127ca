// Package coerce converts loosely typed configuration values.
//
// Values decoded from TOML arrive as int64, []any and friends, while values
// typed on the command line arrive as strings. Every config store reads
// through these helpers so both shapes behave the same.
package coerce

import (
	"strconv"
	"strings"
)

// String returns v as a string. Integers are formatted; other types yield "".
func String(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	}
	return ""
}

// Int returns v as an int, parsing numeric strings. Anything else is 0.
func Int(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n
		}
	}
	return 0
}

// Bool returns v as a bool, parsing strings with strconv.ParseBool.
func Bool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(x))
		return b
	}
	return false
}

// Strings returns v as a string slice. Non-string array items are skipped
// and a plain string is split on commas.
func Strings(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(x, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}
