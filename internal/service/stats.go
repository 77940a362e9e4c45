package service

import (
	"sort"
	"time"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/stats"
	"github.com/xolan/chrono/internal/timeutil"
)

// StatsService provides statistics operations
type StatsService struct {
	loc    StoreLocation
	config config.Config
	now    func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(loc StoreLocation, cfg config.Config) *StatsService {
	return &StatsService{
		loc:    loc,
		config: cfg,
		now:    time.Now,
	}
}

// Summary returns the overall summary and the monthly breakdown of the store
func (s *StatsService) Summary() (*StatsResult, error) {
	result, err := s.loc.load()
	if err != nil {
		return nil, err
	}

	return &StatsResult{
		Overall:  stats.Overall(result.Entries),
		Months:   stats.Monthly(result.Entries),
		Warnings: result.Warnings,
	}, nil
}

// Month returns the summary and entries of one month. Entries are ordered
// by start and limited to ui.max_display_entries.
func (s *StatsService) Month(year int, month time.Month) (*MonthDetail, error) {
	result, err := s.loc.load()
	if err != nil {
		return nil, err
	}

	entries := stats.EntriesForMonth(result.Entries, year, month)
	sortByStart(entries)

	detail := &MonthDetail{
		Summary: stats.MonthlySummary{Year: year, Month: month},
		Entries: entries,
	}
	if months := stats.Monthly(entries); len(months) == 1 {
		detail.Summary = months[0]
	}

	if limit := s.config.UI.MaxDisplayEntries; limit > 0 && len(entries) > limit {
		detail.Truncated = len(entries) - limit
		detail.Entries = entries[:limit]
	}
	return detail, nil
}

// ForDateRange returns statistics for entries starting within the range
func (s *StatsService) ForDateRange(spec DateRangeSpec) (*RangeStatsResult, error) {
	start, end, period := resolveDateRange(spec, s.now())

	result, err := s.loc.load()
	if err != nil {
		return nil, err
	}

	// Unbounded ranges average over the days between the first and last entry.
	rangeStart, rangeEnd := start, end
	if len(result.Entries) > 0 && (start.IsZero() || end.Year() == unbounded.Year()) {
		first, last := result.Entries[0].Start, result.Entries[0].Start
		for _, e := range result.Entries {
			if e.Start.Before(first) {
				first = e.Start
			}
			if e.Start.After(last) {
				last = e.Start
			}
		}
		if start.IsZero() {
			rangeStart = timeutil.StartOfDay(first)
		}
		if end.Year() == unbounded.Year() {
			rangeEnd = timeutil.EndOfDay(last)
		}
	}

	statistics := stats.CalculateStatistics(result.Entries, start, end)
	if statistics.EntryCount > 0 {
		days := int(rangeEnd.Sub(rangeStart).Hours()/24) + 1
		if days > 0 {
			statistics.AverageMinutesPerDay = float64(statistics.TotalMinutes) / float64(days)
		}
	}

	return &RangeStatsResult{
		Statistics: statistics,
		Period:     period,
		Start:      start,
		End:        end,
	}, nil
}

func sortByStart(entries []entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
}
