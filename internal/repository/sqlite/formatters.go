package sqlite

import (
	"time"
)

// TimeLayout stores timestamps as local wall-clock text with fixed-width
// milliseconds, so that lexical order in SQL matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000"

// FormatTimeForDB formats t in local time using TimeLayout.
func FormatTimeForDB(t time.Time) string {
	return t.In(time.Local).Format(TimeLayout)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses a stored timestamp as local time.
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.Local)
}

// boolToInt maps a Go bool onto the 0/1 integers stored in the schema.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
