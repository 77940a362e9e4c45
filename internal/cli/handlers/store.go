package handlers

import (
	"fmt"
	"strconv"

	"github.com/xolan/chrono/internal/cli"
)

// Validate checks the store and prints its health
func Validate(deps *cli.Deps) {
	status, err := deps.Services.Store.Status()
	if err != nil {
		fail(deps, "Failed to validate store", err, "")
		return
	}

	w := deps.Stdout
	h := status.Health
	_, _ = fmt.Fprintf(w, "Store: %s (%s)\n", status.Path, status.Backend)
	_, _ = fmt.Fprintf(w, "  Total lines:       %d\n", h.TotalLines)
	_, _ = fmt.Fprintf(w, "  Valid entries:     %d\n", h.ValidEntries)
	_, _ = fmt.Fprintf(w, "  Corrupted entries: %d\n", h.CorruptedEntries)
	_, _ = fmt.Fprintf(w, "  Invalid entries:   %d\n", h.InvalidEntries)
	_, _ = fmt.Fprintf(w, "  Backups:           %d\n", len(status.Backups))

	if len(h.Warnings) == 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Store is healthy")
		return
	}

	_, _ = fmt.Fprintln(w)
	lines := make([]string, len(h.Warnings))
	for i, warning := range h.Warnings {
		lines[i] = cli.FormatCorruptionWarning(warning)
	}
	_, _ = fmt.Fprintf(w, "Problems (%d):\n", len(lines))
	cli.WriteLimited(w, lines, deps.Config.UI.MaxDisplayErrors, "problem")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Hint: Use 'chrono restore' to roll back to a backup")
	deps.Exit(1)
}

// Clear removes every entry from the store after confirmation
func Clear(deps *cli.Deps, yes bool) {
	n, err := deps.Services.Store.Count()
	if err != nil {
		fail(deps, "Failed to read entries", err, "")
		return
	}
	if n == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Store is already empty")
		return
	}

	if !yes && !confirm(deps, fmt.Sprintf("Remove all %d %s?", n, cli.Pluralize("entry", n))) {
		_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
		return
	}

	removed, err := deps.Services.Store.Clear()
	if err != nil {
		fail(deps, "Failed to clear store", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Removed %d %s\n", removed, cli.Pluralize("entry", removed))
	if deps.Config.Files.BackupOnSave {
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Run 'chrono restore 1' to undo")
	}
}

// Restore lists the backups, or restores the one numbered in args
func Restore(deps *cli.Deps, args []string) {
	if len(args) == 0 {
		listBackups(deps)
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fail(deps, fmt.Sprintf("Invalid backup number '%s'", args[0]), nil, "Run 'chrono restore' to list the backups")
		return
	}

	if err := deps.Services.Store.Restore(n); err != nil {
		fail(deps, "Failed to restore backup", err, "Run 'chrono restore' to list the backups")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Restored backup %d to %s\n", n, deps.Services.Store.Path())
}

func listBackups(deps *cli.Deps) {
	backups, err := deps.Services.Store.Backups()
	if err != nil {
		fail(deps, "Failed to list backups", err, "")
		return
	}
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups (1 is the most recent):")
	for _, b := range backups {
		_, _ = fmt.Fprintf(deps.Stdout, "  %d  %s  (%d bytes)\n", b.Number, b.Path, b.Size)
	}
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Hint: Run 'chrono restore <number>' to restore one")
}
