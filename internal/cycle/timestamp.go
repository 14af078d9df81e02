package cycle

import (
	"strings"
	"time"
)

// timestampLayouts covers the ISO-8601 shapes the portal emits: RFC 3339 with
// or without fractional seconds, zone-less local stamps, the space-separated
// database form, and bare dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp parses a portal timestamp for sorting. Missing or malformed
// values return the zero time so they sort before every real timestamp; this
// mirrors the portal's own report generator and must never be treated as an
// error.
func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
