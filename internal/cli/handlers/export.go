package handlers

import (
	"fmt"
	"os"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/filter"
	"github.com/xolan/chrono/internal/service"
)

// ExportEntries writes entries as JSON to output, or stdout when output is empty
func ExportEntries(deps *cli.Deps, output string, spec service.DateRangeSpec, f *filter.Filter) {
	if output == "" {
		if _, err := deps.Services.Entry.Export(deps.Stdout, spec, f); err != nil {
			fail(deps, "Failed to export entries", err, "")
		}
		return
	}

	file, err := os.Create(output)
	if err != nil {
		fail(deps, fmt.Sprintf("Failed to create %s", output), err, "Check that the output directory exists and is writable")
		return
	}

	n, err := deps.Services.Entry.Export(file, spec, f)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fail(deps, "Failed to export entries", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Exported %d %s to %s\n", n, cli.Pluralize("entry", n), output)
}
