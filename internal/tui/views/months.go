package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/stats"
	"github.com/xolan/chrono/internal/tui/ui"
)

// MonthsModel shows the monthly breakdown and, on Enter, one month's entries.
type MonthsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	cursor int
	months []stats.MonthlySummary
	err    error

	detail       *service.MonthDetail
	detailCursor int
	detailOffset int
}

// NewMonthsModel creates a new months view model
func NewMonthsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) MonthsModel {
	return MonthsModel{
		services: services,
		styles:   styles,
		keys:     keys,
	}
}

type monthsLoadedMsg struct {
	months []stats.MonthlySummary
	err    error
}

type monthDetailMsg struct {
	detail *service.MonthDetail
	err    error
}

// Init implements tea.Model
func (m MonthsModel) Init() tea.Cmd {
	return m.loadMonths()
}

// Update implements tea.Model
func (m MonthsModel) Update(msg tea.Msg) (MonthsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.detail != nil {
			return m.handleDetail(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.months)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if m.cursor < len(m.months) {
				return m, m.loadDetail(m.months[m.cursor])
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadMonths()
		}
		return m, nil

	case monthsLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.months = msg.months
			if m.cursor >= len(m.months) {
				m.cursor = max(0, len(m.months)-1)
			}
		}
		return m, nil

	case monthDetailMsg:
		m.err = msg.err
		m.detail = msg.detail
		m.detailCursor = 0
		m.detailOffset = 0
		return m, nil

	case ui.StoreChangedMsg:
		m.detail = nil
		return m, m.loadMonths()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

func (m MonthsModel) handleDetail(msg tea.KeyMsg) (MonthsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.detail = nil
	case key.Matches(msg, m.keys.Up):
		if m.detailCursor > 0 {
			m.detailCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.detailCursor < len(m.detail.Entries)-1 {
			m.detailCursor++
		}
	}
	m.detailOffset = scrollOffset(m.detailOffset, m.detailCursor, m.detailHeight())
	return m, nil
}

// InDetail reports whether a single month is open.
func (m MonthsModel) InDetail() bool {
	return m.detail != nil
}

// View implements tea.Model
func (m MonthsModel) View() string {
	if m.detail != nil {
		return m.renderDetail()
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Monthly Breakdown"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if len(m.months) == 0 {
		b.WriteString(m.styles.Subtle.Render("No entries in the store"))
		return b.String()
	}

	maxHours := 0.0
	for _, ms := range m.months {
		maxHours = max(maxHours, ms.TotalHours)
	}

	for i, ms := range m.months {
		line := fmt.Sprintf("%-16s %10s  %-12s ",
			ms.Label(),
			cli.FormatHours(ms.TotalHours),
			fmt.Sprintf("(%d %s)", ms.EntryCount, cli.Pluralize("entry", ms.EntryCount)))
		line += renderBar(m.styles, ms.TotalHours, maxHours, 20)
		if i == m.cursor {
			line = m.styles.EntrySelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("Enter to open a month"))
	return b.String()
}

func (m MonthsModel) renderDetail() string {
	var b strings.Builder
	s := m.detail.Summary

	b.WriteString(m.styles.ViewTitle.Render("Statistics for " + s.Label()))
	b.WriteString("\n\n")
	b.WriteString(renderStatLine(m.styles, "Total:", fmt.Sprintf("%s (%s)", cli.FormatHours(s.TotalHours), cli.FormatDuration(s.TotalMinutes))))
	b.WriteString(renderStatLine(m.styles, "Entries:", fmt.Sprintf("%d", s.EntryCount)))
	for _, loc := range s.Locations {
		b.WriteString(renderStatLine(m.styles, "  "+loc.Location+":", cli.FormatHours(loc.Hours)))
	}
	b.WriteString("\n")

	if len(m.detail.Entries) == 0 {
		b.WriteString(m.styles.Subtle.Render("No entries for this month"))
	} else {
		b.WriteString(RenderEntryList(m.detail.Entries, m.styles, EntryRenderOptions{
			Width:  m.width,
			Cursor: m.detailCursor,
			Offset: m.detailOffset,
			Height: m.detailHeight(),
		}))
		if m.detail.Truncated > 0 {
			b.WriteString(m.styles.Subtle.Render(fmt.Sprintf("... and %d more %s",
				m.detail.Truncated, cli.Pluralize("entry", m.detail.Truncated))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("Esc to go back"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *MonthsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m MonthsModel) detailHeight() int {
	if m.height <= 0 || m.detail == nil {
		return 0
	}
	return max(1, m.height-8-len(m.detail.Summary.Locations))
}

func (m MonthsModel) loadMonths() tea.Cmd {
	return func() tea.Msg {
		result, err := m.services.Stats.Summary()
		if err != nil {
			return monthsLoadedMsg{err: err}
		}
		return monthsLoadedMsg{months: result.Months}
	}
}

func (m MonthsModel) loadDetail(ms stats.MonthlySummary) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.services.Stats.Month(ms.Year, ms.Month)
		return monthDetailMsg{detail: detail, err: err}
	}
}
