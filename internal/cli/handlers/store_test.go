package handlers

import (
	"strings"
	"testing"

	"github.com/xolan/chrono/internal/config"
)

func TestValidate_Healthy(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)

	Validate(deps)

	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d", *exitCode)
	}
	assertContains(t, stdout.String(), "(jsonl)", "Valid entries:     3", "Store is healthy")
}

func TestValidate_Corrupted(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)

	path := deps.Services.Store.Path()
	appendLine(t, path, "{not json")

	Validate(deps)

	if *exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", *exitCode)
	}
	assertContains(t, stdout.String(), "Corrupted entries: 1", "Problems (1):", "chrono restore")
}

func TestClear(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)

	Clear(deps, true)

	assertContains(t, stdout.String(), "Removed 3 entries", "chrono restore 1")
	if n, _ := deps.Services.Store.Count(); n != 0 {
		t.Errorf("expected empty store, got %d entries", n)
	}
}

func TestClear_Cancelled(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)
	deps.Stdin = strings.NewReader("no\n")

	Clear(deps, false)

	assertContains(t, stdout.String(), "Remove all 3 entries? [y/N]", "Cancelled")
	if n, _ := deps.Services.Store.Count(); n != 3 {
		t.Errorf("expected 3 entries to remain, got %d", n)
	}
}

func TestClear_Empty(t *testing.T) {
	deps, stdout, _, _ := setupTestDeps(t)

	Clear(deps, true)

	assertContains(t, stdout.String(), "Store is already empty")
}

func TestRestore(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps, stdout, stderr, exitCode)
	Clear(deps, true)
	stdout.Reset()

	Restore(deps, nil)
	assertContains(t, stdout.String(), "Available backups", "  1  ")

	stdout.Reset()
	Restore(deps, []string{"1"})

	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d: %s", *exitCode, stderr.String())
	}
	assertContains(t, stdout.String(), "Restored backup 1")
	if n, _ := deps.Services.Store.Count(); n != 3 {
		t.Errorf("expected 3 entries after restore, got %d", n)
	}
}

func TestRestore_NoBackups(t *testing.T) {
	deps, stdout, _, _ := setupTestDeps(t)

	Restore(deps, nil)

	assertContains(t, stdout.String(), "No backups available")
}

func TestRestore_InvalidNumber(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	Restore(deps, []string{"abc"})

	if *exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", *exitCode)
	}
	assertContains(t, stderr.String(), "Invalid backup number 'abc'")
}

func TestRestore_MissingBackup(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	Restore(deps, []string{"3"})

	if *exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", *exitCode)
	}
	assertContains(t, stderr.String(), "Failed to restore backup")
}

func TestValidate_SQLite(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = config.BackendSQLite
	deps, stdout, stderr, exitCode := setupTestDepsWithConfig(t, cfg)
	seed(t, deps, stdout, stderr, exitCode)

	Validate(deps)

	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d", *exitCode)
	}
	assertContains(t, stdout.String(), "(sqlite)", "Valid entries:     3")
}
