package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/filter"
	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/tui/ui"
)

// EntriesModel lists stored entries for one month or for all time,
// narrowed by location and keyword.
type EntriesModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width   int
	height  int
	cursor  int
	offset  int
	entries []entry.Entry
	period  string
	total   int
	err     error

	allTime bool
	month   time.Time // first day of the selected month

	locations   []string
	locationIdx int // -1 means all locations

	searching   bool
	searchInput textinput.Model
	keyword     string
}

// NewEntriesModel creates a new entries view model showing all entries.
func NewEntriesModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) EntriesModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Keyword in description..."
	searchInput.CharLimit = 100
	searchInput.Width = 40

	now := time.Now()
	return EntriesModel{
		services:    services,
		styles:      styles,
		keys:        keys,
		allTime:     true,
		month:       time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		locationIdx: -1,
		searchInput: searchInput,
	}
}

type entriesLoadedMsg struct {
	result    *service.ListResult
	locations []string
	err       error
}

// Init implements tea.Model
func (m EntriesModel) Init() tea.Cmd {
	return m.loadEntries()
}

// Update implements tea.Model
func (m EntriesModel) Update(msg tea.Msg) (EntriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.PrevMonth):
			if !m.allTime {
				m.month = m.month.AddDate(0, -1, 0)
			}
			m.allTime = false
			return m, m.loadEntries()
		case key.Matches(msg, m.keys.NextMonth):
			if !m.allTime {
				m.month = m.month.AddDate(0, 1, 0)
			}
			m.allTime = false
			return m, m.loadEntries()
		case key.Matches(msg, m.keys.AllTime):
			m.allTime = true
			return m, m.loadEntries()
		case key.Matches(msg, m.keys.Filter):
			m.locationIdx = m.nextLocation()
			return m, m.loadEntries()
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			m.searchInput.SetValue(m.keyword)
			m.searchInput.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadEntries()
		}
		m.offset = scrollOffset(m.offset, m.cursor, m.listHeight())
		return m, nil

	case entriesLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.result.Entries
			m.period = msg.result.Period
			m.total = msg.result.TotalMinutes
			m.locations = msg.locations
			if m.locationIdx >= len(m.locations) {
				m.locationIdx = -1
			}
			if m.cursor >= len(m.entries) {
				m.cursor = max(0, len(m.entries)-1)
			}
			m.offset = scrollOffset(m.offset, m.cursor, m.listHeight())
		}
		return m, nil

	case ui.StoreChangedMsg:
		return m, m.loadEntries()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

func (m EntriesModel) handleSearchMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.searching = false
		m.searchInput.Blur()
		m.keyword = strings.TrimSpace(m.searchInput.Value())
		m.cursor = 0
		return m, m.loadEntries()
	case key.Matches(msg, m.keys.Back):
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// nextLocation cycles all -> first location -> ... -> last -> all.
func (m EntriesModel) nextLocation() int {
	if m.locationIdx+1 >= len(m.locations) {
		return -1
	}
	return m.locationIdx + 1
}

func (m EntriesModel) location() string {
	if m.locationIdx < 0 || m.locationIdx >= len(m.locations) {
		return ""
	}
	return m.locations[m.locationIdx]
}

func (m EntriesModel) rangeSpec() service.DateRangeSpec {
	if m.allTime {
		return service.DateRangeSpec{Type: service.DateRangeAll}
	}
	return service.DateRangeSpec{Type: service.DateRangeMonth, Year: m.month.Year(), Month: m.month.Month()}
}

// InputActive reports whether the view is capturing keystrokes.
func (m EntriesModel) InputActive() bool {
	return m.searching
}

// View implements tea.Model
func (m EntriesModel) View() string {
	var b strings.Builder

	title := "Entries"
	if m.period != "" {
		title = "Entries for " + m.period
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	f := filter.NewFilter(m.keyword, m.location())
	if !f.IsEmpty() {
		b.WriteString(m.styles.Subtle.Render("Filter: " + f.String()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.styles.InputFocused.Render(m.searchInput.View()))
		b.WriteString("\n")
		b.WriteString(m.styles.Subtle.Render("Enter to apply, empty to clear, Esc to cancel"))
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if len(m.entries) == 0 {
		b.WriteString(m.styles.Subtle.Render("No entries found"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Subtle.Render("Import a time log on the Import tab or with 'chrono import'"))
		return b.String()
	}

	b.WriteString(RenderEntryList(m.entries, m.styles, EntryRenderOptions{
		Width:  m.width,
		Cursor: m.cursor,
		Offset: m.offset,
		Height: m.listHeight(),
	}))

	b.WriteString(strings.Repeat("─", min(60, max(m.width, 20))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %s in %d %s",
		cli.FormatDuration(m.total),
		len(m.entries),
		cli.Pluralize("entry", len(m.entries))))

	return b.String()
}

// HelpKeys returns the view-specific bindings for the status bar.
func (m EntriesModel) HelpKeys() []key.Binding {
	return []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.AllTime, m.keys.Filter, m.keys.Search}
}

// SetSize sets the view dimensions
func (m *EntriesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// listHeight is the number of entry rows that fit below the header and total.
func (m EntriesModel) listHeight() int {
	if m.height <= 0 {
		return 0
	}
	return max(1, m.height-6)
}

func (m EntriesModel) loadEntries() tea.Cmd {
	spec := m.rangeSpec()
	f := filter.NewFilter(m.keyword, m.location())
	return func() tea.Msg {
		result, err := m.services.Entry.List(spec, f)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		locations, err := m.services.Entry.Locations()
		return entriesLoadedMsg{result: result, locations: locations, err: err}
	}
}

// ShowMonth switches the view to a single calendar month and reloads.
func (m *EntriesModel) ShowMonth(year int, month time.Month) tea.Cmd {
	m.allTime = false
	m.month = time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	m.cursor = 0
	return m.loadEntries()
}
