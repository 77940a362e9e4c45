package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/cli/handlers"
)

var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import time logs into the store",
	Long: `Parse time logs and merge them into the store.

Input is read from the given files (.txt, .csv, .xlsx, .json), from --text,
or from stdin when neither is given. Entries already in the store are
recognized as duplicates and skipped. Overlapping entries are listed as
conflicts and need confirmation before they are merged.

Examples:
  chrono import june.txt july.xlsx      Import two files
  chrono import --text "30.6.25 9:00 - 12:00 C Meeting"
  pbpaste | chrono import --yes         Import pasted text, merging conflicts
  chrono import june.txt --dry-run      Show the merge summary without saving`,
	Run: func(cmd *cobra.Command, args []string) {
		text, _ := cmd.Flags().GetString("text")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.Import(cli.GetDeps(), args, handlers.ImportOptions{Text: text, DryRun: dryRun, Yes: yes})
	},
}

var conflictsCmd = &cobra.Command{
	Use:   "conflicts <file...>",
	Short: "Preview conflicts without importing",
	Long: `Parse the given files and list the entries that overlap with the store.
Nothing is saved.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowConflicts(cli.GetDeps(), args)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(conflictsCmd)

	importCmd.Flags().StringP("text", "t", "", "Time log text to import instead of files")
	importCmd.Flags().Bool("dry-run", false, "Show what would be merged without saving")
	importCmd.Flags().BoolP("yes", "y", false, "Merge without asking when conflicts are found")
}
