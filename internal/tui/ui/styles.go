package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style
	Subtle    lipgloss.Style

	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Entry list
	EntrySelected lipgloss.Style
	EntryNormal   lipgloss.Style
	EntryDate     lipgloss.Style
	EntryTime     lipgloss.Style
	EntryLocation lipgloss.Style
	EntryDuration lipgloss.Style

	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Bar       lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Dialog lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to colors.
type palette struct {
	primary, secondary, accent, muted lipgloss.TerminalColor
	success, warning, errorColor      lipgloss.TerminalColor
	fg, bg, selection                 lipgloss.TerminalColor
}

// DefaultStyles returns styles on the 256-color palette, used when no
// theme registry is available.
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:    lipgloss.Color("99"),
		secondary:  lipgloss.Color("39"),
		accent:     lipgloss.Color("212"),
		muted:      lipgloss.Color("240"),
		success:    lipgloss.Color("82"),
		warning:    lipgloss.Color("214"),
		errorColor: lipgloss.Color("196"),
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		selection:  lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates Styles from the current bubbletint theme.
// Purple is the primary color (tabs, titles), cyan the secondary (times,
// keys), bright purple the accent (durations, bars).
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		selection:  r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		Subtle: lipgloss.NewStyle().
			Foreground(p.muted),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		EntrySelected: lipgloss.NewStyle().
			Background(p.selection).
			Bold(true),
		EntryNormal: lipgloss.NewStyle(),
		EntryDate: lipgloss.NewStyle().
			Foreground(p.muted),
		EntryTime: lipgloss.NewStyle().
			Foreground(p.secondary),
		EntryLocation: lipgloss.NewStyle().
			Foreground(p.primary),
		EntryDuration: lipgloss.NewStyle().
			Foreground(p.accent).
			Align(lipgloss.Right),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(22),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),
		Bar: lipgloss.NewStyle().
			Foreground(p.accent),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(56),

		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
