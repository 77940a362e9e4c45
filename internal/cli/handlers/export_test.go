package handlers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/service"
)

func TestExportEntries_Stdout(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)

	ExportEntries(deps, "", service.DateRangeSpec{Type: service.DateRangeAll}, nil)

	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d", *exitCode)
	}
	var entries []entry.Entry
	if err := json.Unmarshal(stdout.Bytes(), &entries); err != nil {
		t.Fatalf("expected JSON output: %v\n%s", err, stdout.String())
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 exported entries, got %d", len(entries))
	}
}

func TestExportEntries_File(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)
	path := filepath.Join(t.TempDir(), "entries.json")

	ExportEntries(deps, path, service.DateRangeSpec{Type: service.DateRangeAll}, nil)

	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d", *exitCode)
	}
	assertContains(t, stdout.String(), "Exported 3 entries to "+path)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected export file: %v", err)
	}
}

func TestExportEntries_BadPath(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	ExportEntries(deps, "/nonexistent/dir/entries.json", service.DateRangeSpec{Type: service.DateRangeAll}, nil)

	if *exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", *exitCode)
	}
	assertContains(t, stderr.String(), "Error: Failed to create")
}
