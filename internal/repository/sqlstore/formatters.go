package sqlstore

import (
	"time"
)

// FormatTimeForDB formats t as an RFC3339 UTC string.
// Every stored instant uses the same fixed-width form so text comparison and
// ORDER BY agree with chronological order in both dialects.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Bounds of the fixed-width form. Instants outside them do not round-trip.
var (
	MinStoredTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxStoredTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// IsStorableTime reports whether t can be written and read back unchanged.
func IsStorableTime(t time.Time) bool {
	return !t.Before(MinStoredTime) && !t.After(MaxStoredTime)
}

// FormatBoundForDB formats a query bound, clamping it into the stored range
// so text comparison still orders it against stored values.
func FormatBoundForDB(t time.Time) string {
	switch {
	case t.Before(MinStoredTime):
		t = MinStoredTime
	case t.After(MaxStoredTime):
		t = MaxStoredTime
	}
	return FormatTimeForDB(t)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
