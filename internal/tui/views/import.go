package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/merge"
	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/tui/ui"
)

var errNoEntries = errors.New("no time entries found in the input")

type importStage int

const (
	importStageEdit importStage = iota
	importStagePreview
	importStageDone
)

// ImportModel lets the user paste a raw time log, preview the merge and
// confirm it.
type ImportModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int

	stage  importStage
	input  textarea.Model
	plan   *service.ImportPlan
	status string
	err    error
}

// NewImportModel creates a new import view model
func NewImportModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) ImportModel {
	input := textarea.New()
	input.Placeholder = "Paste a time log here, e.g.\n30.6.25\n09:00 - 12:00\nC\nMeeting"
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetWidth(60)
	input.SetHeight(12)

	return ImportModel{
		services: services,
		styles:   styles,
		keys:     keys,
		input:    input,
	}
}

type importPlannedMsg struct {
	plan *service.ImportPlan
	err  error
}

type importAppliedMsg struct {
	plan  *service.ImportPlan
	saved bool
	err   error
}

// Init implements tea.Model
func (m ImportModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ImportModel) Update(msg tea.Msg) (ImportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.stage {
		case importStagePreview:
			return m.handlePreview(msg)
		case importStageDone:
			if key.Matches(msg, m.keys.Select) || key.Matches(msg, m.keys.Back) {
				m.stage = importStageEdit
				m.status = ""
				m.err = nil
			}
			return m, nil
		}
		return m.handleEdit(msg)

	case importPlannedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.plan = msg.plan
			m.stage = importStagePreview
		}
		return m, nil

	case importAppliedMsg:
		m.stage = importStageDone
		m.err = msg.err
		m.plan = nil
		if msg.err != nil {
			return m, nil
		}
		if !msg.saved {
			m.status = "No new entries; store unchanged"
			return m, nil
		}
		m.status = fmt.Sprintf("Saved %d new %s (batch %s)",
			msg.plan.Merge.Added, cli.Pluralize("entry", msg.plan.Merge.Added), msg.plan.BatchID)
		m.input.Reset()
		added := msg.plan.Merge.Added
		return m, func() tea.Msg { return ui.StoreChangedMsg{Added: added} }

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.stage == importStageEdit && m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ImportModel) handleEdit(msg tea.KeyMsg) (ImportModel, tea.Cmd) {
	if !m.input.Focused() {
		if key.Matches(msg, m.keys.Select) {
			return m, m.input.Focus()
		}
		if key.Matches(msg, m.keys.Submit) {
			return m, m.planImport(m.input.Value())
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		m.err = nil
		return m, m.planImport(m.input.Value())
	case key.Matches(msg, m.keys.Back):
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ImportModel) handlePreview(msg tea.KeyMsg) (ImportModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, m.applyImport(m.plan)
	case key.Matches(msg, m.keys.Discard), key.Matches(msg, m.keys.Back):
		m.plan = nil
		m.stage = importStageEdit
		return m, m.input.Focus()
	}
	return m, nil
}

// InputActive reports whether the text area is capturing keystrokes.
func (m ImportModel) InputActive() bool {
	return m.stage == importStageEdit && m.input.Focused()
}

// View implements tea.Model
func (m ImportModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Import Time Log"))
	b.WriteString("\n\n")

	switch m.stage {
	case importStagePreview:
		b.WriteString(m.renderPreview())
		return b.String()
	case importStageDone:
		if m.err != nil {
			b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.styles.Success.Render(m.status))
		}
		b.WriteString("\n\n")
		b.WriteString(m.styles.Subtle.Render("Enter to import more"))
		return b.String()
	}

	style := m.styles.Input
	if m.input.Focused() {
		style = m.styles.InputFocused
	}
	b.WriteString(style.Render(m.input.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	help := "ctrl+s to preview, Esc to leave the editor"
	if !m.input.Focused() {
		help = "Enter to edit, ctrl+s to preview"
	}
	b.WriteString(m.styles.Subtle.Render(help))
	return b.String()
}

func (m ImportModel) renderPreview() string {
	var b strings.Builder
	plan := m.plan
	maxErrors := m.services.Config.Get().UI.MaxDisplayErrors

	b.WriteString(renderStatLine(m.styles, "Parsed:", fmt.Sprintf("%d %s", plan.Parsed(), cli.Pluralize("entry", plan.Parsed()))))

	var warnings []string
	for _, src := range plan.Sources {
		for _, w := range src.Result.Warnings {
			warnings = append(warnings, w.String())
		}
	}
	if len(warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Skipped %d %s:", len(warnings), cli.Pluralize("line", len(warnings)))))
		b.WriteString("\n")
		shown, hidden := cli.Limit(len(warnings), maxErrors)
		for _, w := range warnings[:shown] {
			b.WriteString("  " + w + "\n")
		}
		if hidden > 0 {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", hidden))
		}
	}

	if n := len(plan.Conflicts); n > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Potential %s (%d):", cli.Pluralize("conflict", n), n)))
		b.WriteString("\n")
		shown, hidden := cli.Limit(n, maxErrors)
		for _, c := range plan.Conflicts[:shown] {
			b.WriteString("  " + c.String() + "\n")
		}
		if hidden > 0 {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", hidden))
		}
	}

	b.WriteString("\n")
	b.WriteString(merge.FormatSummary(plan.Merge, maxErrors))
	b.WriteString("\n")
	if n := len(plan.Retained); n > 0 {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Kept %d invalid stored %s unchanged", n, cli.Pluralize("entry", n))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if plan.HasChanges() {
		b.WriteString(m.styles.Subtle.Render("y to merge, n or Esc to go back"))
	} else {
		b.WriteString(m.styles.Subtle.Render("Nothing new to merge; n or Esc to go back"))
	}
	return b.String()
}

// SetSize sets the view dimensions
func (m *ImportModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(max(30, min(width-4, 100)))
	m.input.SetHeight(max(5, height-8))
}

func (m ImportModel) planImport(text string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(text) == "" {
			return importPlannedMsg{err: service.ErrNoInput}
		}
		src, err := m.services.Import.ParseText(text)
		if err != nil {
			return importPlannedMsg{err: err}
		}
		if len(src.Result.Entries) == 0 {
			return importPlannedMsg{err: errNoEntries}
		}
		plan, err := m.services.Import.Plan([]service.ParsedSource{src})
		return importPlannedMsg{plan: plan, err: err}
	}
}

func (m ImportModel) applyImport(plan *service.ImportPlan) tea.Cmd {
	return func() tea.Msg {
		saved, err := m.services.Import.Apply(plan)
		return importAppliedMsg{plan: plan, saved: saved, err: err}
	}
}
