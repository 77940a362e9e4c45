package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive terminal UI.

Views available:
  - Entries: Browse entries by month
  - Months: Monthly breakdown and month details
  - Summary: Overall totals and hours per location
  - Import: Paste a time log and merge it into the store
  - Config: View the configuration and store status

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-5: Jump to a view
  - j/k or arrows: Navigate within lists
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		if err := tui.Run(deps.Services); err != nil {
			cli.PrintError(deps, "Failed to run the terminal UI", err, "")
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
