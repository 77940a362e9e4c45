package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/cli/handlers"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the HTML report",
	Long: `Write an HTML report with the overall summary, the hours per location
and month and, when export.include_raw_data is set, every entry.

The file name defaults to export.output_filename from the config.

Examples:
  chrono report                         Write report.html
  chrono report -o june.html --month 2025-06
  chrono report -o -                    Write to stdout`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		spec, ok := rangeFromFlags(cmd, deps)
		if !ok {
			return
		}
		output, _ := cmd.Flags().GetString("output")
		handlers.WriteReport(deps, output, spec)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report and a JSON API",
	Long: `Serve the HTML report and a JSON API over HTTP.

Endpoints:
  GET  /                    HTML report (period, month, last, from, to)
  GET  /api/entries         Entries (plus location and keyword filters)
  GET  /api/summary         Overall and monthly summary
  GET  /api/months/{month}  One month (YYYY-MM)
  GET  /api/locations       Distinct locations
  POST /api/import          Import the request body as a time log (dry_run=true)`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		handlers.Serve(ctx, cli.GetDeps(), addr)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)

	addRangeFlags(reportCmd)
	reportCmd.Flags().StringP("output", "o", "", "Output file, or - for stdout")

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address to listen on")
}
