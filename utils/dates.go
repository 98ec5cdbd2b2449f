package utils

import "time"

// StartOfDay truncates t to midnight in its own location. Every component
// that keys records by day goes through this so equality lookups never miss
// on time-of-day drift.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// DayKey formats t as YYYY-MM-DD for indexing day-keyed rows.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
