package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/tui/ui"
)

// maxVisibleThemes is the number of rows of the theme picker.
const maxVisibleThemes = 10

// ConfigModel shows the effective settings and store status and hosts the
// theme picker.
type ConfigModel struct {
	services *service.Services
	themes   *ui.ThemeProvider
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int

	config    config.Config
	path      string
	exists    bool
	store     *service.StoreStatus
	storeErr  error
	themeName string

	picking     bool
	themeIDs    []string
	themeCursor int
	themeOffset int
}

// NewConfigModel creates a new config view model
func NewConfigModel(services *service.Services, themes *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	m := ConfigModel{
		services:  services,
		themes:    themes,
		styles:    styles,
		keys:      keys,
		themeIDs:  themes.AvailableThemes(),
		themeName: themes.CurrentName(),
	}
	m.syncThemeCursor()
	return m
}

type configLoadedMsg struct {
	config   config.Config
	path     string
	exists   bool
	store    *service.StoreStatus
	storeErr error
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picking {
			return m.handlePicker(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Select):
			m.picking = true
			m.syncThemeCursor()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadConfig()
		}
		return m, nil

	case configLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists
		m.store = msg.store
		m.storeErr = msg.storeErr

	case ui.StoreChangedMsg:
		return m, m.loadConfig()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.syncThemeCursor()
	}

	return m, nil
}

func (m ConfigModel) handlePicker(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themeIDs)-1 {
			m.themeCursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.picking = false
		name := m.themeIDs[m.themeCursor]
		return m, func() tea.Msg { return ui.ThemeChangeRequestMsg{ThemeName: name} }
	case key.Matches(msg, m.keys.Back):
		m.picking = false
		m.syncThemeCursor()
		return m, nil
	}
	m.themeOffset = scrollOffset(m.themeOffset, m.themeCursor, maxVisibleThemes)
	return m, nil
}

func (m *ConfigModel) syncThemeCursor() {
	if i := slices.Index(m.themeIDs, m.themeName); i >= 0 {
		m.themeCursor = i
	}
	m.themeOffset = scrollOffset(m.themeOffset, m.themeCursor, maxVisibleThemes)
}

// InputActive reports whether the theme picker is open.
func (m ConfigModel) InputActive() bool {
	return m.picking
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	b.WriteString(renderStatLine(m.styles, "Config file:", m.path))
	b.WriteString(m.styles.StatLabel.Render("Status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderStore())
	b.WriteString("\n")

	cfg := m.config
	codes := make([]string, 0, len(cfg.Parsing.LocationMappings))
	for code := range cfg.Parsing.LocationMappings {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		b.WriteString(renderStatLine(m.styles, "Location "+code+":", cfg.Parsing.LocationMappings[code]))
	}
	b.WriteString(renderStatLine(m.styles, "Time separators:", strings.Join(cfg.Parsing.TimeSeparators, " ")))
	b.WriteString(renderStatLine(m.styles, "Tolerance:", fmt.Sprintf("%d minutes", cfg.Merge.ToleranceMinutes)))
	b.WriteString(renderStatLine(m.styles, "Similarity:", fmt.Sprintf("%.2f", cfg.Merge.SimilarityThreshold)))
	b.WriteString(renderStatLine(m.styles, "Backup on save:", fmt.Sprintf("%t", cfg.Files.BackupOnSave)))
	b.WriteString("\n")

	if m.picking {
		b.WriteString(m.renderThemePicker())
		return b.String()
	}

	b.WriteString(renderStatLine(m.styles, "Theme:", m.themeName))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("Enter to change theme"))
	return b.String()
}

func (m ConfigModel) renderStore() string {
	if m.storeErr != nil {
		return m.styles.Error.Render(fmt.Sprintf("Store error: %v", m.storeErr)) + "\n"
	}
	if m.store == nil {
		return ""
	}

	var b strings.Builder
	st := m.store
	b.WriteString(renderStatLine(m.styles, "Store:", fmt.Sprintf("%s (%s)", st.Path, st.Backend)))
	b.WriteString(renderStatLine(m.styles, "Entries:", fmt.Sprintf("%d", st.Health.ValidEntries)))
	if problems := st.Health.CorruptedEntries + st.Health.InvalidEntries; problems > 0 {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("%d %s need attention; run 'chrono validate'",
			problems, cli.Pluralize("line", problems))))
		b.WriteString("\n")
	}
	b.WriteString(renderStatLine(m.styles, "Backups:", fmt.Sprintf("%d", len(st.Backups))))
	return b.String()
}

func (m ConfigModel) renderThemePicker() string {
	var b strings.Builder

	b.WriteString(m.styles.StatValue.Render("Select a theme"))
	b.WriteString("\n\n")

	end := min(m.themeOffset+maxVisibleThemes, len(m.themeIDs))
	if m.themeOffset > 0 {
		b.WriteString(m.styles.Subtle.Render("  ↑ more"))
		b.WriteString("\n")
	}
	for i := m.themeOffset; i < end; i++ {
		id := m.themeIDs[i]
		line := "  " + id
		if i == m.themeCursor {
			line = m.styles.EntrySelected.Render("▸ " + id)
		}
		if id == m.themeName {
			line += m.styles.Success.Render(" (current)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if end < len(m.themeIDs) {
		b.WriteString(m.styles.Subtle.Render("  ↓ more"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m ConfigModel) loadConfig() tea.Cmd {
	return func() tea.Msg {
		status, err := m.services.Store.Status()
		return configLoadedMsg{
			config:   m.services.Config.Get(),
			path:     m.services.Config.GetPath(),
			exists:   m.services.Config.Exists(),
			store:    status,
			storeErr: err,
		}
	}
}
