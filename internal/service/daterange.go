package service

import (
	"fmt"
	"strings"

	"github.com/xolan/chrono/internal/timeutil"
)

// RangeOptions are the user-facing ways of selecting a date range.
// At most one of Period, Month, LastDays and From/To may be set.
type RangeOptions struct {
	Period   string // "today", "week", "month" or "prev-month"
	Month    string // YYYY-MM
	LastDays int
	From     string
	To       string
}

// ParseRange turns RangeOptions into a DateRangeSpec. No options select all time.
func ParseRange(opts RangeOptions) (DateRangeSpec, error) {
	set := 0
	for _, ok := range []bool{opts.Period != "", opts.Month != "", opts.LastDays > 0, opts.From != "" || opts.To != ""} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return DateRangeSpec{}, fmt.Errorf("choose only one of period, month, last and from/to")
	}
	if opts.LastDays < 0 {
		return DateRangeSpec{}, fmt.Errorf("last must be a positive number of days, got %d", opts.LastDays)
	}

	switch {
	case opts.Period != "":
		return parsePeriod(opts.Period)
	case opts.Month != "":
		start, _, err := timeutil.ParseMonth(opts.Month)
		if err != nil {
			return DateRangeSpec{}, err
		}
		return DateRangeSpec{Type: DateRangeMonth, Year: start.Year(), Month: start.Month()}, nil
	case opts.LastDays > 0:
		return DateRangeSpec{Type: DateRangeLast, LastDays: opts.LastDays}, nil
	case opts.From != "" || opts.To != "":
		from, to, err := timeutil.ParseDateRangeFlags(opts.From, opts.To, 0)
		if err != nil {
			return DateRangeSpec{}, err
		}
		return DateRangeSpec{Type: DateRangeCustom, From: from, To: to}, nil
	}
	return DateRangeSpec{Type: DateRangeAll}, nil
}

func parsePeriod(period string) (DateRangeSpec, error) {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "today":
		return DateRangeSpec{Type: DateRangeToday}, nil
	case "week":
		return DateRangeSpec{Type: DateRangeThisWeek}, nil
	case "month":
		return DateRangeSpec{Type: DateRangeThisMonth}, nil
	case "prev-month":
		return DateRangeSpec{Type: DateRangePrevMonth}, nil
	case "all":
		return DateRangeSpec{Type: DateRangeAll}, nil
	}
	return DateRangeSpec{}, fmt.Errorf("invalid period '%s' (use today, week, month, prev-month or all)", period)
}
