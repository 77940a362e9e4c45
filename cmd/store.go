package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/cli/handlers"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check store health",
	Long:  `Validate the store and report corrupted or invalid entries.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Validate(cli.GetDeps())
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all entries",
	Long: `Remove every entry from the store. The store is backed up first when
files.backup_on_save is set, so 'chrono restore 1' undoes a clear.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.Clear(cli.GetDeps(), yes)
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [n]",
	Short: "List or restore store backups",
	Long: `Without arguments, list the backups (1 is the most recent). With a
number, replace the store with that backup. The current store is backed
up first.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Restore(cli.GetDeps(), args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(restoreCmd)

	clearCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
}
