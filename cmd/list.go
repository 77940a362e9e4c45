package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/cli/handlers"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored entries",
	Long: `List the stored entries in chronological order.

Examples:
  chrono list                           All entries
  chrono list --period week             This week (Monday to Sunday)
  chrono list --month 2025-06           June 2025
  chrono list --last 7                  The last 7 days
  chrono list --from 2025-06-01 --to 2025-06-15
  chrono list -l homeoffice -k review   Filter by location and keyword`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		spec, ok := rangeFromFlags(cmd, deps)
		if !ok {
			return
		}
		handlers.ListEntries(deps, spec, filterFromFlags(cmd))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as JSON",
	Long: `Export the stored entries as a JSON array. The output can be imported
again with 'chrono import file.json'.

Examples:
  chrono export > backup.json           All entries to stdout
  chrono export -o june.json --month 2025-06`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		spec, ok := rangeFromFlags(cmd, deps)
		if !ok {
			return
		}
		output, _ := cmd.Flags().GetString("output")
		handlers.ExportEntries(deps, output, spec, filterFromFlags(cmd))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)

	addRangeFlags(listCmd)
	addFilterFlags(listCmd)

	addRangeFlags(exportCmd)
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}
