package ui

import (
	"slices"
	"strings"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is used when ui.theme is unset or unknown.
const DefaultTheme = "dracula"

// ThemeProvider owns the bubbletint registry backing the TUI colors.
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider builds a registry over all bundled tints and selects
// initialTheme. Unknown names keep DefaultTheme.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	tints := tint.DefaultTints()

	fallback := tints[0]
	for _, t := range tints {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, tints...)}
	if initialTheme != "" {
		tp.SetTheme(initialTheme)
	}
	return tp
}

// NormalizeThemeName turns user input like "Tokyo Night" into a tint ID.
func NormalizeThemeName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return strings.ReplaceAll(name, " ", "_")
}

// SetTheme selects a theme by name and reports whether it exists.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(NormalizeThemeName(name))
}

// NextTheme advances to the next theme and returns its ID.
func (tp *ThemeProvider) NextTheme() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// PreviousTheme steps back one theme and returns its ID.
func (tp *ThemeProvider) PreviousTheme() string {
	tp.registry.PreviousTint()
	return tp.registry.ID()
}

func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes lists theme IDs in sorted order.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	slices.Sort(ids)
	return ids
}

func (tp *ThemeProvider) Registry() *tint.Registry {
	return tp.registry
}

// Styles returns the style set for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
