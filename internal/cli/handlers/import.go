package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/merge"
	"github.com/xolan/chrono/internal/parser"
	"github.com/xolan/chrono/internal/service"
)

// ImportOptions controls an import run
type ImportOptions struct {
	// Text is parsed when no files are given; empty reads stdin.
	Text   string
	DryRun bool
	// Yes merges without asking when conflicts are found.
	Yes bool
}

// Import parses the given files (or text) and merges the entries into the store
func Import(deps *cli.Deps, paths []string, opts ImportOptions) {
	svc := deps.Services.Import
	maxErrors := deps.Config.UI.MaxDisplayErrors

	var sources []service.ParsedSource
	fromStdin := false
	switch {
	case len(paths) > 0:
		parsed, err := svc.ParseFiles(paths)
		if err != nil {
			failLoad(deps, err)
			return
		}
		sources = parsed
	case opts.Text != "":
		src, err := svc.ParseText(opts.Text)
		if err != nil {
			failLoad(deps, err)
			return
		}
		sources = []service.ParsedSource{src}
	default:
		fromStdin = true
		src, err := svc.ParseReader(deps.Stdin)
		if err != nil {
			failLoad(deps, err)
			return
		}
		sources = []service.ParsedSource{src}
	}

	writeSourceWarnings(deps, sources)

	plan, err := svc.Plan(sources)
	if err != nil {
		fail(deps, "Failed to prepare import", err, "")
		return
	}
	cli.WriteCorruptionWarnings(deps.Stderr, plan.StoreWarnings, maxErrors)

	if plan.Parsed() == 0 {
		fail(deps, "No time entries found in the input", nil,
			"Each entry needs a date (e.g. 30.6.25) followed by a time range (e.g. 9:00 - 12:00)")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Parsed %d %s from %d %s\n",
		plan.Parsed(), cli.Pluralize("entry", plan.Parsed()),
		len(sources), cli.Pluralize("source", len(sources)))

	if len(plan.Conflicts) > 0 {
		writeConflicts(deps, plan.Conflicts, maxErrors)
		if !opts.DryRun && !opts.Yes {
			if fromStdin {
				fail(deps, "Conflicts need confirmation but the input was read from stdin", nil,
					"Re-run with --yes to merge anyway, or --dry-run to preview")
				return
			}
			if !confirm(deps, "Merge anyway?") {
				_, _ = fmt.Fprintln(deps.Stdout, "Import cancelled")
				return
			}
		}
	}

	saved := false
	if !opts.DryRun {
		saved, err = svc.Apply(plan)
		if err != nil {
			fail(deps, "Failed to save entries", err, "Run 'chrono validate' to check the store")
			return
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, merge.FormatSummary(plan.Merge, maxErrors))
	if n := len(plan.Retained); n > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Kept %d invalid stored %s unchanged; run 'chrono validate' for details\n",
			n, cli.Pluralize("entry", n))
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	switch {
	case opts.DryRun:
		_, _ = fmt.Fprintln(deps.Stdout, "Dry run: no changes were saved")
	case saved:
		_, _ = fmt.Fprintf(deps.Stdout, "Saved %d new %s (batch %s)\n",
			plan.Merge.Added, cli.Pluralize("entry", plan.Merge.Added), plan.BatchID)
	default:
		_, _ = fmt.Fprintln(deps.Stdout, "No new entries; store unchanged")
	}
}

// ShowConflicts previews the conflicts between the given files and the store
func ShowConflicts(deps *cli.Deps, paths []string) {
	conflicts, sources, err := deps.Services.Import.Conflicts(paths)
	if err != nil {
		failLoad(deps, err)
		return
	}
	writeSourceWarnings(deps, sources)

	if len(conflicts) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No conflicts found")
		return
	}
	writeConflicts(deps, conflicts, 0)
}

func writeConflicts(deps *cli.Deps, conflicts []merge.Conflict, max int) {
	_, _ = fmt.Fprintf(deps.Stdout, "Potential %s (%d):\n", cli.Pluralize("conflict", len(conflicts)), len(conflicts))
	lines := make([]string, len(conflicts))
	for i, c := range conflicts {
		lines[i] = "  - " + c.String()
	}
	cli.WriteLimited(deps.Stdout, lines, max, "conflict")
}

func writeSourceWarnings(deps *cli.Deps, sources []service.ParsedSource) {
	var lines []string
	for _, src := range sources {
		for _, w := range src.Result.Warnings {
			lines = append(lines, cli.FormatParseWarning(src.Name, w))
		}
	}
	if len(lines) == 0 {
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Warning: Skipped %d %s:\n", len(lines), cli.Pluralize("line", len(lines)))
	cli.WriteLimited(deps.Stderr, lines, deps.Config.UI.MaxDisplayErrors, "warning")
}

// failLoad reports an input that could not be read.
func failLoad(deps *cli.Deps, err error) {
	var loadErr *parser.LoadError
	if !errors.As(err, &loadErr) {
		fail(deps, "Failed to read input", err, "")
		return
	}

	hint := ""
	switch {
	case errors.Is(err, parser.ErrFileNotFound):
		hint = "Check that the file path is correct"
	case errors.Is(err, parser.ErrFileTooLarge):
		hint = "Split the file or raise files.max_file_size_mb in the config"
	case errors.Is(err, parser.ErrUnsupportedFormat):
		hint = "Supported formats: " + strings.Join(deps.Config.Files.SupportedFormats, ", ")
	}
	fail(deps, fmt.Sprintf("Failed to load %s", loadErr.Path), err, hint)
}
