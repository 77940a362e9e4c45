// Package tui provides the terminal user interface for browsing the store
// and importing pasted time logs.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/tui/ui"
	"github.com/xolan/chrono/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabEntries Tab = iota
	TabMonths
	TabSummary
	TabImport
	TabConfig
)

var tabNames = []string{"Entries", "Months", "Summary", "Import", "Config"}

func (t Tab) String() string {
	return tabNames[t]
}

// Model is the root TUI model
type Model struct {
	services *service.Services

	activeTab Tab
	width     int
	height    int
	showHelp  bool

	entriesView views.EntriesModel
	monthsView  views.MonthsModel
	summaryView views.SummaryModel
	importView  views.ImportModel
	configView  views.ConfigModel

	themes *ui.ThemeProvider
	styles ui.Styles
	keys   ui.KeyMap
	help   help.Model
}

// New creates a new TUI model using the theme from ui.theme.
func New(services *service.Services) Model {
	themes := ui.NewThemeProvider(services.Config.Get().UI.Theme)
	styles := themes.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:    services,
		activeTab:   TabEntries,
		themes:      themes,
		styles:      styles,
		keys:        keys,
		help:        help.New(),
		entriesView: views.NewEntriesModel(services, styles, keys),
		monthsView:  views.NewMonthsModel(services, styles, keys),
		summaryView: views.NewSummaryModel(services, styles, keys),
		importView:  views.NewImportModel(services, styles, keys),
		configView:  views.NewConfigModel(services, themes, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.entriesView.Init(),
		m.monthsView.Init(),
		m.summaryView.Init(),
		m.importView.Init(),
		m.configView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		// Views with an active input get every other key.
		if m.inputActive() {
			return m.updateActive(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.NextTab):
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))
		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))
		case key.Matches(msg, m.keys.Tab1):
			return m.switchTab(TabEntries)
		case key.Matches(msg, m.keys.Tab2):
			return m.switchTab(TabMonths)
		case key.Matches(msg, m.keys.Tab3):
			return m.switchTab(TabSummary)
		case key.Matches(msg, m.keys.Tab4):
			return m.switchTab(TabImport)
		case key.Matches(msg, m.keys.Tab5):
			return m.switchTab(TabConfig)
		}
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		contentHeight := m.height - 4 // tabs and status bar
		m.entriesView.SetSize(m.width, contentHeight)
		m.monthsView.SetSize(m.width, contentHeight)
		m.summaryView.SetSize(m.width, contentHeight)
		m.importView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		if !m.themes.SetTheme(msg.ThemeName) {
			return m, nil
		}
		m.styles = m.themes.Styles()
		name := m.themes.CurrentName()
		var cmd tea.Cmd
		m, cmd = m.broadcast(ui.ThemeChangedMsg{ThemeName: name, Styles: m.styles})
		return m, tea.Batch(cmd, m.saveTheme(name))
	}

	return m.broadcast(msg)
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	m.showHelp = false
	return m, nil
}

// updateActive routes a key press to the visible view.
func (m Model) updateActive(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabEntries:
		m.entriesView, cmd = m.entriesView.Update(msg)
	case TabMonths:
		m.monthsView, cmd = m.monthsView.Update(msg)
	case TabSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	case TabImport:
		m.importView, cmd = m.importView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}
	return m, cmd
}

// broadcast delivers a non-key message to every view so results of
// background loads reach views that are not visible.
func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 5)
	m.entriesView, cmds[0] = m.entriesView.Update(msg)
	m.monthsView, cmds[1] = m.monthsView.Update(msg)
	m.summaryView, cmds[2] = m.summaryView.Update(msg)
	m.importView, cmds[3] = m.importView.Update(msg)
	m.configView, cmds[4] = m.configView.Update(msg)
	return m, tea.Batch(cmds...)
}

func (m Model) inputActive() bool {
	switch m.activeTab {
	case TabEntries:
		return m.entriesView.InputActive()
	case TabImport:
		return m.importView.InputActive()
	case TabConfig:
		return m.configView.InputActive()
	}
	return false
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		switch m.activeTab {
		case TabEntries:
			b.WriteString(m.entriesView.View())
		case TabMonths:
			b.WriteString(m.monthsView.View())
		case TabSummary:
			b.WriteString(m.summaryView.View())
		case TabImport:
			b.WriteString(m.importView.View())
		case TabConfig:
			b.WriteString(m.configView.View())
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())
	return m.styles.App.Render(b.String())
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.activeTab {
			tabs[i] = m.styles.TabActive.Render(label)
		} else {
			tabs[i] = m.styles.TabInactive.Render(label)
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// viewKeys returns the bindings of the visible view.
func (m Model) viewKeys() []key.Binding {
	k := m.keys
	switch m.activeTab {
	case TabEntries:
		return m.entriesView.HelpKeys()
	case TabMonths:
		if m.monthsView.InDetail() {
			return []key.Binding{k.Up, k.Down, k.Back}
		}
		return []key.Binding{k.Up, k.Down, k.Select}
	case TabImport:
		return []key.Binding{k.Submit, k.Confirm, k.Discard, k.Back}
	case TabConfig:
		return []key.Binding{k.Select, k.Back}
	}
	return nil
}

func (m Model) renderStatusBar() string {
	bindings := append(m.viewKeys(), m.keys.GlobalHelp()...)
	content := m.help.ShortHelpView(bindings)

	if padding := m.width - lipgloss.Width(content) - 4; padding > 0 {
		content += strings.Repeat(" ", padding)
	}
	return m.styles.StatusBar.Render(content)
}

func (m Model) renderHelp() string {
	k := m.keys
	groups := [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5, k.NextTab, k.PrevTab},
		{k.Up, k.Down, k.Select, k.Back, k.Refresh},
		{k.PrevMonth, k.NextMonth, k.AllTime, k.Filter, k.Search},
		{k.Submit, k.Confirm, k.Discard, k.Help, k.Quit},
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(groups))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Subtle.Render("Press ? to close"))
	return m.styles.Dialog.Render(b.String())
}

// saveTheme persists the theme to ui.theme. A failed write only loses the
// choice for the next session.
func (m Model) saveTheme(name string) tea.Cmd {
	return func() tea.Msg {
		cfg := m.services.Config.Get()
		cfg.UI.Theme = name
		if err := m.services.Config.Update(cfg); err != nil {
			slog.Warn("failed to save theme", "theme", name, "error", err)
		}
		return nil
	}
}

// Run starts the TUI application
func Run(services *service.Services) error {
	p := tea.NewProgram(New(services), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
