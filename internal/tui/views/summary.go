package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/tui/ui"
)

// SummaryModel shows the overall summary of the store and statistics for
// the current month.
type SummaryModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width   int
	height  int
	result  *service.StatsResult
	current *service.RangeStatsResult
	err     error
}

// NewSummaryModel creates a new summary view model
func NewSummaryModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) SummaryModel {
	return SummaryModel{
		services: services,
		styles:   styles,
		keys:     keys,
	}
}

type summaryLoadedMsg struct {
	result  *service.StatsResult
	current *service.RangeStatsResult
	err     error
}

// Init implements tea.Model
func (m SummaryModel) Init() tea.Cmd {
	return m.loadSummary()
}

// Update implements tea.Model
func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.loadSummary()
		}

	case summaryLoadedMsg:
		m.err = msg.err
		m.result = msg.result
		m.current = msg.current

	case ui.StoreChangedMsg:
		return m, m.loadSummary()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

// View implements tea.Model
func (m SummaryModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Overall Summary"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.result == nil {
		b.WriteString("Loading...")
		return b.String()
	}

	o := m.result.Overall
	if o.EntryCount == 0 {
		b.WriteString(m.styles.Subtle.Render("No entries in the store"))
		return b.String()
	}

	b.WriteString(renderStatLine(m.styles, "Total hours:", fmt.Sprintf("%s (%s)", cli.FormatHours(o.TotalHours), cli.FormatDuration(o.TotalMinutes))))
	b.WriteString(renderStatLine(m.styles, "Entries:", fmt.Sprintf("%d", o.EntryCount)))
	b.WriteString(renderStatLine(m.styles, "Days:", fmt.Sprintf("%d", o.Days)))
	b.WriteString(renderStatLine(m.styles, "Months:", fmt.Sprintf("%d", o.Months)))
	b.WriteString(renderStatLine(m.styles, "Average per month:", cli.FormatHours(o.AverageHoursPerMonth)))
	b.WriteString(renderStatLine(m.styles, "Average per week:", cli.FormatHours(o.AverageHoursPerWeek)))

	if len(o.Locations) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("By Location"))
		b.WriteString("\n")
		maxHours := 0.0
		for _, loc := range o.Locations {
			maxHours = max(maxHours, loc.Hours)
		}
		for _, loc := range o.Locations {
			b.WriteString(fmt.Sprintf("  %-20s %10s  %s\n",
				loc.Location,
				cli.FormatHours(loc.Hours),
				renderBar(m.styles, loc.Hours, maxHours, 24)))
		}
	}

	if c := m.current; c != nil && c.Statistics.EntryCount > 0 {
		st := c.Statistics
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("This Month"))
		b.WriteString("\n")
		b.WriteString(renderStatLine(m.styles, "Total time:", cli.FormatDuration(st.TotalMinutes)))
		b.WriteString(renderStatLine(m.styles, "Days with work:", fmt.Sprintf("%d %s", st.DaysWithEntries, cli.Pluralize("day", st.DaysWithEntries))))
		b.WriteString(renderStatLine(m.styles, "Average per day:", cli.FormatDuration(int(st.AverageMinutesPerDay))))
	}

	if n := len(m.result.Warnings); n > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("%d corrupted %s skipped; run 'chrono validate'",
			n, cli.Pluralize("line", n))))
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m SummaryModel) loadSummary() tea.Cmd {
	return func() tea.Msg {
		result, err := m.services.Stats.Summary()
		if err != nil {
			return summaryLoadedMsg{err: err}
		}
		current, err := m.services.Stats.ForDateRange(service.DateRangeSpec{Type: service.DateRangeThisMonth})
		return summaryLoadedMsg{result: result, current: current, err: err}
	}
}
