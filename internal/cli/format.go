// Package cli provides the CLI presentation layer for the chrono application.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/parser"
	"github.com/xolan/chrono/internal/storage"
	"github.com/xolan/chrono/internal/timeutil"
)

// FormatDuration formats minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	return timeutil.FormatMinutes(minutes)
}

// FormatHours formats decimal hours with two places, e.g. "8.50h".
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}

// FormatTimeRange formats the clock times of an entry as "09:00-12:00".
func FormatTimeRange(e entry.Entry) string {
	return e.Start.Format("15:04") + "-" + e.End.Format("15:04")
}

// FormatEntryLine formats an entry as one aligned line:
// "2025-06-30  09:00-12:00  3h       Company       Meeting"
func FormatEntryLine(e entry.Entry) string {
	line := fmt.Sprintf("%s  %s  %-7s  %-12s",
		e.Start.Format("2006-01-02"),
		FormatTimeRange(e),
		FormatDuration(int(e.Duration().Minutes())),
		e.Location)
	if e.Description != "" {
		line += "  " + e.Description
	}
	return strings.TrimRight(line, " ")
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning storage.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// FormatParseWarning formats a warning about a skipped input line
func FormatParseWarning(source string, w parser.Warning) string {
	return fmt.Sprintf("  %s %s", source, w.String())
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if n := len(word); n > 1 && word[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[n-2])) {
		return word[:n-1] + "ies"
	}
	return word + "s"
}

// Limit returns how many of n items to show when at most max are
// displayed. A non-positive max shows everything.
func Limit(n, max int) (shown, hidden int) {
	if max <= 0 || n <= max {
		return n, 0
	}
	return max, n - max
}

// WriteLimited writes lines to w, at most max of them, followed by an
// "... and N more <noun>s" line when some were left out.
func WriteLimited(w io.Writer, lines []string, max int, noun string) {
	shown, hidden := Limit(len(lines), max)
	for _, line := range lines[:shown] {
		_, _ = fmt.Fprintln(w, line)
	}
	if hidden > 0 {
		_, _ = fmt.Fprintf(w, "  ... and %d more %s\n", hidden, Pluralize(noun, hidden))
	}
}

// WriteCorruptionWarnings reports corrupted lines in the store on w.
func WriteCorruptionWarnings(w io.Writer, warnings []storage.ParseWarning, max int) {
	if len(warnings) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "Warning: Found %d corrupted %s in storage:\n", len(warnings), Pluralize("line", len(warnings)))
	lines := make([]string, len(warnings))
	for i, warning := range warnings {
		lines[i] = FormatCorruptionWarning(warning)
	}
	WriteLimited(w, lines, max, "warning")
	_, _ = fmt.Fprintln(w)
}

// SpansMultipleDays checks if entries span multiple calendar days
func SpansMultipleDays(entries []entry.Entry) bool {
	if len(entries) < 2 {
		return false
	}
	for _, e := range entries[1:] {
		if !e.SameDay(entries[0]) {
			return true
		}
	}
	return false
}
