package handlers

import (
	"fmt"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/service"
)

// WriteReport renders the HTML report to output, or to the configured
// file name when output is empty. "-" writes to stdout.
func WriteReport(deps *cli.Deps, output string, spec service.DateRangeSpec) {
	if output == "-" {
		if err := deps.Services.Report.Render(deps.Stdout, spec); err != nil {
			fail(deps, "Failed to render report", err, "")
		}
		return
	}

	path, err := deps.Services.Report.Write(output, spec)
	if err != nil {
		fail(deps, "Failed to write report", err, "Check that the output directory exists and is writable")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Report written to %s\n", path)
}
