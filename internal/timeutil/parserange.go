package timeutil

import (
	"fmt"
	"time"
)

// ParseFlagDate parses a command-line date in YYYY-MM-DD or German
// d.m[.yy[yy]] form. German dates without a year use the current year.
func ParseFlagDate(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD.MM.YYYY, e.g., 2025-06-30 or 30.06.2025)")
	}
	if t, err := ParseISODate(input); err == nil {
		return t, nil
	}
	if t, err := ParseDate(input, time.Now()); err == nil {
		return t, nil
	}
	return ParseISODate(input)
}

// ParseMonth parses "YYYY-MM" and returns the first and last instant of that month.
func ParseMonth(input string) (start, end time.Time, err error) {
	t, err := time.ParseInLocation("2006-01", input, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month '%s' (use YYYY-MM, e.g., 2025-06)", input)
	}
	return StartOfMonth(t), EndOfMonth(t), nil
}

// ParseDateRangeFlags parses date range flags and returns start/end times.
// If lastDays > 0, it takes precedence over from/to.
// Returns an error if both lastDays and from/to are specified.
// A zero start means "from the beginning".
func ParseDateRangeFlags(fromStr, toStr string, lastDays int) (start, end time.Time, err error) {
	if lastDays > 0 && (fromStr != "" || toStr != "") {
		return time.Time{}, time.Time{}, fmt.Errorf("cannot use --last with --from or --to")
	}

	if lastDays > 0 {
		now := time.Now()
		end = EndOfDay(now)
		start = StartOfDay(now.AddDate(0, 0, -(lastDays - 1)))
		return start, end, nil
	}

	if fromStr != "" {
		start, err = ParseFlagDate(fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
		}
	}

	if toStr != "" {
		toDate, err := ParseFlagDate(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
		end = EndOfDay(toDate)
	} else {
		end = time.Date(9999, 12, 31, 23, 59, 59, 0, time.Local)
	}

	if !start.IsZero() && start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from date (%s) is after --to date (%s)",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return start, end, nil
}
