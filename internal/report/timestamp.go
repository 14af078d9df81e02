package report

import (
	"strings"
	"time"
)

const displayLayout = "2006-01-02 15:04:05"

// Converter rewrites portal ISO timestamps into the raw database display
// form. The source clock runs ahead of UTC by SourceUTCOffsetHours (the plant
// is on UTC+8), and the database stores values DisplayOffsetHours ahead of
// UTC; both corrections apply to the wall-clock value with the zone stripped,
// exactly as the portal's own report does it.
type Converter struct {
	SourceUTCOffsetHours int
	DisplayOffsetHours   int
}

// NewConverter builds a converter with the given hour offsets.
func NewConverter(sourceUTCOffsetHours, displayOffsetHours int) Converter {
	return Converter{
		SourceUTCOffsetHours: sourceUTCOffsetHours,
		DisplayOffsetHours:   displayOffsetHours,
	}
}

var displayLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Display converts a single timestamp. Empty input stays empty; unparseable
// input passes through unchanged so bad upstream data stays visible in the
// report instead of silently vanishing.
func (c Converter) Display(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	parsed, ok := parseISO(trimmed)
	if !ok {
		return value
	}

	// Drop the zone without converting, then shift source-local to UTC and
	// on to the database clock.
	naive := time.Date(parsed.Year(), parsed.Month(), parsed.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), parsed.Nanosecond(), time.UTC)
	adjusted := naive.
		Add(-time.Duration(c.SourceUTCOffsetHours) * time.Hour).
		Add(time.Duration(c.DisplayOffsetHours) * time.Hour)
	return adjusted.Format(displayLayout)
}

func parseISO(value string) (time.Time, bool) {
	for _, layout := range displayLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
