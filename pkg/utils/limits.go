package utils

// ClampLimit normalizes a caller-supplied result limit: non-positive values
// fall back to the default, and anything above max is capped to prevent
// unbounded scans.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	return limit
}
