package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/filter"
	"github.com/xolan/chrono/internal/stats"
	"github.com/xolan/chrono/internal/timeutil"
)

// EntryService provides read operations on stored time entries
type EntryService struct {
	loc    StoreLocation
	config config.Config
	now    func() time.Time
}

// NewEntryService creates a new EntryService
func NewEntryService(loc StoreLocation, cfg config.Config) *EntryService {
	return &EntryService{
		loc:    loc,
		config: cfg,
		now:    time.Now,
	}
}

// List returns entries for the specified date range and filter, ordered by start
func (s *EntryService) List(dateRange DateRangeSpec, f *filter.Filter) (*ListResult, error) {
	start, end, period := resolveDateRange(dateRange, s.now())

	result, err := s.loc.load()
	if err != nil {
		return nil, err
	}

	var filtered []entry.Entry
	for _, e := range result.Entries {
		if !timeutil.IsInRange(e.Start, start, end) {
			continue
		}
		if !f.Matches(e) {
			continue
		}
		filtered = append(filtered, e)
	}

	sortByStart(filtered)

	hours, minutes := stats.Total(filtered)
	return &ListResult{
		Entries:      filtered,
		Warnings:     result.Warnings,
		Period:       period,
		Filter:       f.String(),
		Start:        start,
		End:          end,
		TotalMinutes: minutes,
		TotalHours:   hours,
	}, nil
}

// All returns every stored entry ordered by start
func (s *EntryService) All() (*ListResult, error) {
	return s.List(DateRangeSpec{Type: DateRangeAll}, nil)
}

// Locations returns the distinct locations of the stored entries, sorted
func (s *EntryService) Locations() ([]string, error) {
	result, err := s.loc.load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var locations []string
	for _, e := range result.Entries {
		if !seen[e.Location] {
			seen[e.Location] = true
			locations = append(locations, e.Location)
		}
	}
	sort.Strings(locations)
	return locations, nil
}

// Export writes the selected entries to w as an indented JSON array, the
// format accepted by "chrono import" for .json files. It returns the
// number of exported entries.
func (s *EntryService) Export(w io.Writer, dateRange DateRangeSpec, f *filter.Filter) (int, error) {
	result, err := s.List(dateRange, f)
	if err != nil {
		return 0, err
	}

	entries := result.Entries
	if entries == nil {
		entries = []entry.Entry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return 0, fmt.Errorf("failed to encode entries: %w", err)
	}
	return len(entries), nil
}

// resolveDateRange converts a DateRangeSpec to concrete start/end times
func resolveDateRange(spec DateRangeSpec, now time.Time) (start, end time.Time, period string) {
	switch spec.Type {
	case DateRangeToday:
		start, end = timeutil.StartOfDay(now), timeutil.EndOfDay(now)
		period = "today"
	case DateRangeThisWeek:
		// ISO weeks start on Monday.
		offset := (int(now.Weekday()) + 6) % 7
		start = timeutil.StartOfDay(now.AddDate(0, 0, -offset))
		end = timeutil.EndOfDay(start.AddDate(0, 0, 6))
		period = "this week"
	case DateRangeThisMonth:
		start, end = timeutil.StartOfMonth(now), timeutil.EndOfMonth(now)
		period = "this month"
	case DateRangePrevMonth:
		prev := timeutil.StartOfMonth(now).AddDate(0, -1, 0)
		start, end = prev, timeutil.EndOfMonth(prev)
		period = "last month"
	case DateRangeLast:
		days := spec.LastDays
		if days < 1 {
			days = 1
		}
		end = timeutil.EndOfDay(now)
		start = timeutil.StartOfDay(now.AddDate(0, 0, -(days - 1)))
		period = fmt.Sprintf("last %d days", days)
	case DateRangeMonth:
		first := time.Date(spec.Year, spec.Month, 1, 0, 0, 0, 0, now.Location())
		start, end = first, timeutil.EndOfMonth(first)
		period = first.Format("January 2006")
	case DateRangeCustom:
		start, end = spec.From, spec.To
		if end.IsZero() {
			end = unbounded
		}
		period = formatDateRangeForDisplay(start, end)
	default:
		start, end = time.Time{}, unbounded
		period = "all time"
	}

	return start, end, period
}

// unbounded is the end of an open date range.
var unbounded = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// formatDateRangeForDisplay formats a date range for human-readable display
func formatDateRangeForDisplay(start, end time.Time) string {
	switch {
	case start.IsZero() && end.Year() == 9999:
		return "all time"
	case start.IsZero():
		return "until " + end.Format("Jan 2, 2006")
	case end.Year() == 9999:
		return "since " + start.Format("Jan 2, 2006")
	}
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return start.Format("Mon, Jan 2, 2006")
	}
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}
