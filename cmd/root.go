package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "chrono",
	Short: "Import, merge and summarize time logs",
	Long: `chrono turns free-form time logs into a clean store of work entries.

It reads pasted text, CSV, Excel and JSON files, removes duplicates when
merging, and summarizes the hours per month and location.

Usage:
  chrono import log.txt                 Import a file into the store
  pbpaste | chrono import               Import pasted text from stdin
  chrono list --month 2025-06           List the entries of a month
  chrono stats                          Show the overall summary
  chrono months [YYYY-MM]               Monthly breakdown or month detail
  chrono conflicts log.txt              Preview conflicts without importing
  chrono report -o report.html          Write the HTML report
  chrono serve                          Serve the report and a JSON API
  chrono tui                            Launch the interactive terminal UI

Time log format:
  30.6.25                               A date (d.m.yy, d.m.yyyy or d.m.)
  9:00 - 12:00                          A time range
  C                                     A location code (see 'chrono config')
  Meeting                               A description`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		d := cli.GetDeps()
		if err := d.EnsureServices(); err != nil {
			return err
		}

		level := d.Config.Log.Level
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		logging.Setup(level, d.Config.Log.Format)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug details to stderr")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"chrono version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
