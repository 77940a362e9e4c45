package timeutil

import (
	"fmt"
	"time"
)

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfMonth returns the first day of the month at 00:00:00 in the same timezone
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last nanosecond of the last day of the month (23:59:59.999999999)
func EndOfMonth(t time.Time) time.Time {
	// First day of next month minus one nanosecond handles 28-31 day months.
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// IsInRange checks if the given time t falls within the range [start, end] (inclusive)
func IsInRange(t, start, end time.Time) bool {
	return (t.Equal(start) || t.After(start)) && (t.Equal(end) || t.Before(end))
}

// ISOWeekKey identifies an ISO 8601 week.
type ISOWeekKey struct {
	Year int
	Week int
}

// ISOWeekOf returns the ISO year and week containing t.
func ISOWeekOf(t time.Time) ISOWeekKey {
	y, w := t.ISOWeek()
	return ISOWeekKey{Year: y, Week: w}
}

// FormatMinutes formats minutes as "30m", "2h" or "1h 30m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
