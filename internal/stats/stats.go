// Package stats computes totals and per-period summaries over entries.
// Every function recomputes from the given entries.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/timeutil"
)

// LocationHours is the time spent at one location
type LocationHours struct {
	Location string
	Hours    float64
	Minutes  int
}

// MonthlySummary contains the totals of one calendar month
type MonthlySummary struct {
	Year         int
	Month        time.Month
	TotalHours   float64
	TotalMinutes int
	EntryCount   int
	Locations    []LocationHours
}

// Key returns the month as "2006-01".
func (m MonthlySummary) Key() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Label returns the month as "January 2006".
func (m MonthlySummary) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// OverallSummary contains the totals of a whole collection
type OverallSummary struct {
	TotalHours           float64
	TotalMinutes         int
	EntryCount           int
	Days                 int
	Weeks                int
	Months               int
	AverageHoursPerMonth float64
	AverageHoursPerWeek  float64
	Locations            []LocationHours
}

// Statistics contains aggregated statistics for entries within a date range
type Statistics struct {
	TotalMinutes         int
	AverageMinutesPerDay float64
	EntryCount           int
	DaysWithEntries      int
}

var hourDivisor = decimal.NewFromInt(int64(time.Hour))

// Hours converts d to decimal hours rounded to two places, half away from zero.
func Hours(d time.Duration) float64 {
	return hoursDecimal(d).Round(2).InexactFloat64()
}

// Minutes returns the whole minutes in d.
func Minutes(d time.Duration) int {
	return int(d / time.Minute)
}

func hoursDecimal(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(hourDivisor)
}

// Total sums the durations of entries.
func Total(entries []entry.Entry) (hours float64, minutes int) {
	d := sumDurations(entries)
	return Hours(d), Minutes(d)
}

// Monthly groups entries by the year and month they start in. Summaries are
// sorted by year, then month.
func Monthly(entries []entry.Entry) []MonthlySummary {
	type monthKey struct {
		year  int
		month time.Month
	}
	type bucket struct {
		total     time.Duration
		count     int
		locations map[string]time.Duration
	}

	buckets := make(map[monthKey]*bucket)
	for _, e := range entries {
		k := monthKey{e.Start.Year(), e.Start.Month()}
		b, ok := buckets[k]
		if !ok {
			b = &bucket{locations: make(map[string]time.Duration)}
			buckets[k] = b
		}
		b.total += e.Duration()
		b.count++
		b.locations[e.Location] += e.Duration()
	}

	summaries := make([]MonthlySummary, 0, len(buckets))
	for k, b := range buckets {
		summaries = append(summaries, MonthlySummary{
			Year:         k.year,
			Month:        k.month,
			TotalHours:   Hours(b.total),
			TotalMinutes: Minutes(b.total),
			EntryCount:   b.count,
			Locations:    locationBreakdown(b.locations),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year < summaries[j].Year
		}
		return summaries[i].Month < summaries[j].Month
	})
	return summaries
}

// Overall computes totals, distinct day, ISO week and month counts and the
// per-month and per-week averages. Averages are 0 when there are no entries.
func Overall(entries []entry.Entry) OverallSummary {
	if len(entries) == 0 {
		return OverallSummary{}
	}

	days := make(map[string]bool)
	months := make(map[string]bool)
	weeks := make(map[timeutil.ISOWeekKey]bool)
	locations := make(map[string]time.Duration)

	var total time.Duration
	for _, e := range entries {
		total += e.Duration()
		days[e.Start.Format("2006-01-02")] = true
		months[e.Start.Format("2006-01")] = true
		weeks[timeutil.ISOWeekOf(e.Start)] = true
		locations[e.Location] += e.Duration()
	}

	s := OverallSummary{
		TotalHours:   Hours(total),
		TotalMinutes: Minutes(total),
		EntryCount:   len(entries),
		Days:         len(days),
		Weeks:        len(weeks),
		Months:       len(months),
		Locations:    locationBreakdown(locations),
	}
	s.AverageHoursPerMonth = average(total, s.Months)
	s.AverageHoursPerWeek = average(total, s.Weeks)
	return s
}

// EntriesForMonth returns the entries starting in the given month, in input order.
func EntriesForMonth(entries []entry.Entry, year int, month time.Month) []entry.Entry {
	var out []entry.Entry
	for _, e := range entries {
		if e.Start.Year() == year && e.Start.Month() == month {
			out = append(out, e)
		}
	}
	return out
}

// CalculateStatistics computes statistics for entries starting within the
// given date range. The average is taken over every day of the range.
func CalculateStatistics(entries []entry.Entry, start, end time.Time) Statistics {
	stats := Statistics{}

	if len(entries) == 0 {
		return stats
	}

	daysWithEntries := make(map[string]bool)

	for _, e := range entries {
		if !timeutil.IsInRange(e.Start, start, end) {
			continue
		}
		stats.TotalMinutes += Minutes(e.Duration())
		stats.EntryCount++
		daysWithEntries[e.Start.Format("2006-01-02")] = true
	}

	stats.DaysWithEntries = len(daysWithEntries)

	totalDays := int(end.Sub(start).Hours()/24) + 1
	if totalDays > 0 {
		stats.AverageMinutesPerDay = float64(stats.TotalMinutes) / float64(totalDays)
	}

	return stats
}

func average(total time.Duration, n int) float64 {
	if n == 0 {
		return 0
	}
	return hoursDecimal(total).Div(decimal.NewFromInt(int64(n))).Round(2).InexactFloat64()
}

// locationBreakdown sorts locations by time spent, descending, then by name.
func locationBreakdown(durations map[string]time.Duration) []LocationHours {
	out := make([]LocationHours, 0, len(durations))
	for loc, d := range durations {
		out = append(out, LocationHours{Location: loc, Hours: Hours(d), Minutes: Minutes(d)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Location < out[j].Location
	})
	return out
}

func sumDurations(entries []entry.Entry) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.Duration()
	}
	return total
}
