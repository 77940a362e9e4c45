package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/stats"
	"github.com/xolan/chrono/internal/timeutil"
)

// ShowStats prints the overall summary of the store
func ShowStats(deps *cli.Deps) {
	result, err := deps.Services.Stats.Summary()
	if err != nil {
		fail(deps, "Failed to read entries", err, "Run 'chrono validate' to check the store")
		return
	}
	cli.WriteCorruptionWarnings(deps.Stderr, result.Warnings, deps.Config.UI.MaxDisplayErrors)

	o := result.Overall
	if o.EntryCount == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries in the store")
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Import a time log with 'chrono import <file>'")
		return
	}

	w := deps.Stdout
	_, _ = fmt.Fprintln(w, "Overall Summary")
	_, _ = fmt.Fprintln(w, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(w, "  %-24s %s\n", "Total hours:", cli.FormatHours(o.TotalHours))
	_, _ = fmt.Fprintf(w, "  %-24s %d\n", "Entries:", o.EntryCount)
	_, _ = fmt.Fprintf(w, "  %-24s %d\n", "Days worked:", o.Days)
	_, _ = fmt.Fprintf(w, "  %-24s %d\n", "Weeks:", o.Weeks)
	_, _ = fmt.Fprintf(w, "  %-24s %d\n", "Months:", o.Months)
	_, _ = fmt.Fprintf(w, "  %-24s %s\n", "Average per month:", cli.FormatHours(o.AverageHoursPerMonth))
	_, _ = fmt.Fprintf(w, "  %-24s %s\n", "Average per week:", cli.FormatHours(o.AverageHoursPerWeek))

	_, _ = fmt.Fprintln(w)
	writeLocations(w, o.Locations)
}

// ShowMonths prints one line per calendar month
func ShowMonths(deps *cli.Deps) {
	result, err := deps.Services.Stats.Summary()
	if err != nil {
		fail(deps, "Failed to read entries", err, "Run 'chrono validate' to check the store")
		return
	}
	cli.WriteCorruptionWarnings(deps.Stderr, result.Warnings, deps.Config.UI.MaxDisplayErrors)

	if len(result.Months) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries in the store")
		return
	}

	w := deps.Stdout
	_, _ = fmt.Fprintln(w, "Monthly Breakdown")
	_, _ = fmt.Fprintln(w, strings.Repeat("=", 50))
	for _, m := range result.Months {
		_, _ = fmt.Fprintf(w, "  %-20s %10s  (%d %s)\n",
			m.Label(), cli.FormatHours(m.TotalHours),
			m.EntryCount, cli.Pluralize("entry", m.EntryCount))
	}
}

// ShowMonth prints the summary and entries of one month given as YYYY-MM
func ShowMonth(deps *cli.Deps, month string) {
	start, _, err := timeutil.ParseMonth(month)
	if err != nil {
		fail(deps, "Invalid month", err, "")
		return
	}

	detail, err := deps.Services.Stats.Month(start.Year(), start.Month())
	if err != nil {
		fail(deps, "Failed to read entries", err, "Run 'chrono validate' to check the store")
		return
	}

	w := deps.Stdout
	s := detail.Summary
	_, _ = fmt.Fprintf(w, "Statistics for %s:\n", s.Label())
	_, _ = fmt.Fprintln(w, strings.Repeat("=", 50))
	if s.EntryCount == 0 {
		_, _ = fmt.Fprintln(w, "No entries for this month")
		return
	}
	_, _ = fmt.Fprintf(w, "  %-24s %s (%s)\n", "Total:", cli.FormatHours(s.TotalHours), cli.FormatDuration(s.TotalMinutes))
	_, _ = fmt.Fprintf(w, "  %-24s %d\n", "Entries:", s.EntryCount)
	_, _ = fmt.Fprintln(w)
	writeLocations(w, s.Locations)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Entries:")
	for _, e := range detail.Entries {
		_, _ = fmt.Fprintln(w, "  "+cli.FormatEntryLine(e))
	}
	if detail.Truncated > 0 {
		_, _ = fmt.Fprintf(w, "  ... and %d more %s\n", detail.Truncated, cli.Pluralize("entry", detail.Truncated))
	}
}

// ShowRangeStats prints totals for a date range
func ShowRangeStats(deps *cli.Deps, spec service.DateRangeSpec) {
	result, err := deps.Services.Stats.ForDateRange(spec)
	if err != nil {
		fail(deps, "Failed to read entries", err, "Run 'chrono validate' to check the store")
		return
	}

	w := deps.Stdout
	s := result.Statistics
	_, _ = fmt.Fprintf(w, "Statistics for %s:\n", result.Period)
	_, _ = fmt.Fprintln(w, strings.Repeat("=", 50))
	if s.EntryCount == 0 {
		_, _ = fmt.Fprintln(w, "No entries for this period")
		return
	}
	_, _ = fmt.Fprintf(w, "  %-24s %s\n", "Total time:", cli.FormatDuration(s.TotalMinutes))
	_, _ = fmt.Fprintf(w, "  %-24s %d\n", "Entries:", s.EntryCount)
	_, _ = fmt.Fprintf(w, "  %-24s %d\n", "Days with entries:", s.DaysWithEntries)
	_, _ = fmt.Fprintf(w, "  %-24s %s\n", "Average per day:", cli.FormatDuration(int(s.AverageMinutesPerDay)))
}

func writeLocations(w io.Writer, locations []stats.LocationHours) {
	_, _ = fmt.Fprintln(w, "By location:")
	if len(locations) == 0 {
		_, _ = fmt.Fprintln(w, "  (none)")
		return
	}
	for _, l := range locations {
		_, _ = fmt.Fprintf(w, "  %-20s %10s  (%s)\n", l.Location, cli.FormatHours(l.Hours), cli.FormatDuration(l.Minutes))
	}
}
