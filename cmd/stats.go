package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/cli/handlers"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show total hours and averages",
	Long: `Show the overall summary of the store: total hours, days worked,
averages per month and week, and hours per location.

With a range flag, show the totals of that period instead.

Examples:
  chrono stats                          Overall summary
  chrono stats --period week            This week
  chrono stats --from 2025-06-01 --to 2025-06-30`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		if !rangeFlagsSet(cmd) {
			handlers.ShowStats(deps)
			return
		}
		spec, ok := rangeFromFlags(cmd, deps)
		if !ok {
			return
		}
		handlers.ShowRangeStats(deps, spec)
	},
}

var monthsCmd = &cobra.Command{
	Use:   "months [YYYY-MM]",
	Short: "Show the monthly breakdown",
	Long: `Without arguments, list the hours of every month. With a month, show
its totals per location and its entries.

Examples:
  chrono months                         One line per month
  chrono months 2025-06                 Details for June 2025`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		if len(args) == 0 {
			handlers.ShowMonths(deps)
			return
		}
		handlers.ShowMonth(deps, args[0])
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(monthsCmd)

	addRangeFlags(statsCmd)
}

func rangeFlagsSet(cmd *cobra.Command) bool {
	for _, name := range []string{"period", "month", "last", "from", "to"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
