package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/storage"
	"github.com/xolan/chrono/internal/tui/ui"
)

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	dir := t.TempDir()
	return service.NewServicesWithPaths(
		filepath.Join(dir, storage.EntriesFile),
		filepath.Join(dir, "config.toml"),
		config.DefaultConfig(),
	)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return model, cmd
}

func sized(t *testing.T) Model {
	t.Helper()
	m, _ := update(t, New(setupTestServices(t)), tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestNew(t *testing.T) {
	m := New(setupTestServices(t))

	if m.activeTab != TabEntries {
		t.Errorf("expected initial tab Entries, got %s", m.activeTab)
	}
	if m.showHelp {
		t.Error("expected help to be hidden initially")
	}
	if m.themes.CurrentName() != "dracula" {
		t.Errorf("expected theme from config, got %q", m.themes.CurrentName())
	}
	if m.Init() == nil {
		t.Error("expected Init to return a command")
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := sized(t)

	if m.width != 120 || m.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", m.width, m.height)
	}
}

func TestUpdate_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, New(setupTestServices(t)), msg)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected QuitMsg for %q", msg.String())
		}
	}
}

func TestUpdate_Help(t *testing.T) {
	m := sized(t)

	m, _ = update(t, m, keyRunes("?"))
	if !m.showHelp {
		t.Fatal("expected help to be shown")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Errorf("expected help in view, got:\n%s", m.View())
	}

	m, _ = update(t, m, keyRunes("?"))
	if m.showHelp {
		t.Error("expected help to be hidden again")
	}
}

func TestUpdate_TabKeys(t *testing.T) {
	tests := []struct {
		key  string
		want Tab
	}{
		{"1", TabEntries},
		{"2", TabMonths},
		{"3", TabSummary},
		{"4", TabImport},
		{"5", TabConfig},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			m, _ := update(t, New(setupTestServices(t)), keyRunes(tt.key))
			if m.activeTab != tt.want {
				t.Errorf("expected tab %s, got %s", tt.want, m.activeTab)
			}
		})
	}
}

func TestUpdate_TabCycling(t *testing.T) {
	m := New(setupTestServices(t))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.activeTab != TabConfig {
		t.Errorf("expected shift+tab to wrap to Config, got %s", m.activeTab)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabEntries {
		t.Errorf("expected tab to wrap to Entries, got %s", m.activeTab)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabMonths {
		t.Errorf("expected Months, got %s", m.activeTab)
	}
}

func TestUpdate_InputCapturesGlobalKeys(t *testing.T) {
	m := sized(t)

	m, _ = update(t, m, keyRunes("4"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inputActive() {
		t.Fatal("expected import editor to capture input")
	}

	m, cmd := update(t, m, keyRunes("q"))
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("expected q to be typed, not quit")
		}
	}
	m, _ = update(t, m, keyRunes("1"))
	if m.activeTab != TabImport {
		t.Errorf("expected to stay on Import, got %s", m.activeTab)
	}
}

func TestView(t *testing.T) {
	if got := New(setupTestServices(t)).View(); got != "Loading..." {
		t.Errorf("expected loading view before size, got %q", got)
	}

	m := sized(t)
	for tab, want := range map[string]string{
		"1": "Entries",
		"2": "Monthly Breakdown",
		"3": "Overall Summary",
		"4": "Import Time Log",
		"5": "Configuration",
	} {
		m, _ = update(t, m, keyRunes(tab))
		view := m.View()
		if !strings.Contains(view, want) {
			t.Errorf("tab %s: expected view to contain %q, got:\n%s", tab, want, view)
		}
		if !strings.Contains(view, "quit") {
			t.Errorf("tab %s: expected status bar help, got:\n%s", tab, view)
		}
	}
}

func TestRenderTabs(t *testing.T) {
	out := sized(t).renderTabs()
	for i, name := range tabNames {
		if !strings.Contains(out, name) {
			t.Errorf("expected tab bar to contain %q", name)
		}
		if !strings.Contains(out, string(rune('1'+i))) {
			t.Errorf("expected tab bar to number tab %d", i+1)
		}
	}
}

func TestUpdate_ThemeChange(t *testing.T) {
	services := setupTestServices(t)
	m, _ := update(t, New(services), tea.WindowSizeMsg{Width: 100, Height: 30})

	m, cmd := update(t, m, ui.ThemeChangeRequestMsg{ThemeName: "nord"})
	if m.themes.CurrentName() != "nord" {
		t.Fatalf("expected theme nord, got %q", m.themes.CurrentName())
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}

	// tea.Batch returns a BatchMsg; run every command to persist the theme.
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				c()
			}
		}
	}

	if got := services.Config.Get().UI.Theme; got != "nord" {
		t.Errorf("expected saved theme nord, got %q", got)
	}
	if !services.Config.Exists() {
		t.Error("expected config file to be written")
	}
}

func TestUpdate_UnknownTheme(t *testing.T) {
	m, cmd := update(t, New(setupTestServices(t)), ui.ThemeChangeRequestMsg{ThemeName: "nonexistent-theme-xyz"})

	if cmd != nil {
		t.Error("expected no command for an unknown theme")
	}
	if m.themes.CurrentName() != "dracula" {
		t.Errorf("expected theme to stay dracula, got %q", m.themes.CurrentName())
	}
}

func TestUpdate_StoreChangeReachesAllViews(t *testing.T) {
	m := sized(t)

	_, cmd := update(t, m, ui.StoreChangedMsg{Added: 1})
	if cmd == nil {
		t.Fatal("expected reload commands")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected BatchMsg, got %T", cmd())
	}
	if len(batch) < 4 {
		t.Errorf("expected entries, months, summary and config to reload, got %d commands", len(batch))
	}
}
