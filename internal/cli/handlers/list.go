package handlers

import (
	"fmt"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/filter"
	"github.com/xolan/chrono/internal/service"
)

// ListEntries prints the stored entries in a date range
func ListEntries(deps *cli.Deps, spec service.DateRangeSpec, f *filter.Filter) {
	result, err := deps.Services.Entry.List(spec, f)
	if err != nil {
		fail(deps, "Failed to read entries", err, "Run 'chrono validate' to check the store")
		return
	}
	cli.WriteCorruptionWarnings(deps.Stderr, result.Warnings, deps.Config.UI.MaxDisplayErrors)

	heading := fmt.Sprintf("Entries for %s", result.Period)
	if result.Filter != "" {
		heading += fmt.Sprintf(" (%s)", result.Filter)
	}

	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found for %s\n", result.Period)
		if result.Filter != "" {
			_, _ = fmt.Fprintf(deps.Stdout, "Filter: %s\n", result.Filter)
		}
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s:\n", heading)
	_, _ = fmt.Fprintln(deps.Stdout, rule("-"))

	lines := make([]string, len(result.Entries))
	for i, e := range result.Entries {
		lines[i] = cli.FormatEntryLine(e)
	}
	cli.WriteLimited(deps.Stdout, lines, deps.Config.UI.MaxDisplayEntries, "entry")

	_, _ = fmt.Fprintln(deps.Stdout, rule("-"))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s (%s) in %d %s\n",
		cli.FormatDuration(result.TotalMinutes),
		cli.FormatHours(result.TotalHours),
		len(result.Entries), cli.Pluralize("entry", len(result.Entries)))
}
