package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/tui/ui"
)

// EntryRenderOptions configures how entries are rendered
type EntryRenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Currently selected entry index (-1 for none)
	// Offset is the index of the first visible entry; Height limits the
	// number of rows when positive.
	Offset int
	Height int
}

// RenderEntryList renders entries as aligned columns:
// date, time range, duration, location, description.
func RenderEntryList(entries []entry.Entry, styles ui.Styles, opts EntryRenderOptions) string {
	if len(entries) == 0 {
		return ""
	}

	opts.Offset = max(0, min(opts.Offset, len(entries)-1))
	end := len(entries)
	if opts.Height > 0 {
		end = min(end, opts.Offset+opts.Height)
	}
	visible := entries[opts.Offset:end]

	locWidth := 0
	for _, e := range visible {
		locWidth = max(locWidth, lipgloss.Width(e.Location))
	}

	// date(10) + time(11) + duration(7) + location + 4 gaps
	descWidth := max(20, opts.Width-10-11-7-locWidth-4)

	var b strings.Builder
	for i, e := range visible {
		style := styles.EntryNormal
		if opts.Offset+i == opts.Cursor {
			style = styles.EntrySelected
		}

		date := styles.EntryDate.Render(e.Start.Format("2006-01-02"))
		timeCol := styles.EntryTime.Render(cli.FormatTimeRange(e))
		duration := styles.EntryDuration.Render(fmt.Sprintf("%7s", cli.FormatDuration(int(e.Duration().Minutes()))))
		loc := styles.EntryLocation.Render(fmt.Sprintf("%-*s", locWidth, e.Location))

		line := fmt.Sprintf("%s %s %s %s %s", date, timeCol, duration, loc, truncate(e.Description, descWidth))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// scrollOffset keeps cursor inside a window of height rows.
func scrollOffset(offset, cursor, height int) int {
	if height <= 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+height {
		return cursor - height + 1
	}
	return offset
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// renderBar draws a horizontal bar of width proportional to value/maxValue.
func renderBar(styles ui.Styles, value, maxValue float64, width int) string {
	if maxValue <= 0 || width <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(width))
	if n == 0 && value > 0 {
		n = 1
	}
	return styles.Bar.Render(strings.Repeat("█", n))
}

func renderStatLine(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}
