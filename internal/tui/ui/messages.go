package ui

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// StoreChangedMsg is broadcast after an import changed the store so that
// views showing entries reload.
type StoreChangedMsg struct {
	Added int
}
