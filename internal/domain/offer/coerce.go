package offer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParsePolicy controls how malformed optional fields are handled. Lenient
// degrades them to null, which is what the upstream API always did; Strict
// rejects them with a field-level validation error.
type ParsePolicy string

const (
	ParseLenient ParsePolicy = "lenient"
	ParseStrict  ParsePolicy = "strict"
)

// PolicyFromString maps a config value to a policy, defaulting to lenient.
func PolicyFromString(s string) ParsePolicy {
	if strings.EqualFold(strings.TrimSpace(s), string(ParseStrict)) {
		return ParseStrict
	}
	return ParseLenient
}

// coerceInt converts the loosely-typed JSON values clients actually send
// (numbers, numeric strings, json.Number) to an integer.
func coerceInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// coerceString accepts only actual strings; everything else is a miss.
func coerceString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// timestampLayouts are tried in order. Naive timestamps are interpreted
// as UTC, matching upstream behavior for datetime-local form values.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTimestamp parses an ISO-8601 timestamp, accepting a trailing Z or
// numeric offset as well as naive date-time forms.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
