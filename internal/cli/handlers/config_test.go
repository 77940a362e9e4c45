package handlers

import (
	"os"
	"strings"
	"testing"
)

func TestShowConfig_Defaults(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ShowConfig(deps)

	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d", *exitCode)
	}
	assertContains(t, stdout.String(),
		"Configuration for chrono",
		"No config file (using defaults)",
		"C        -> Company",
		"Tolerance:       5 minutes",
		"Theme:           dracula",
		"chrono config init")
}

func TestInitConfig(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)

	InitConfig(deps)

	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d: %s", *exitCode, stderr.String())
	}
	path := deps.Services.Config.GetPath()
	assertContains(t, stdout.String(), "Created config file at "+path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	stdout.Reset()
	ShowConfig(deps)
	assertContains(t, stdout.String(), "File exists")

	InitConfig(deps)
	if *exitCode != 1 {
		t.Fatalf("expected exit code 1 for existing file, got %d", *exitCode)
	}
	assertContains(t, stderr.String(), "already exists", "chrono config reset")
}

func TestResetConfig(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	path := deps.Services.Config.GetPath()
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"nord\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deps.Stdin = strings.NewReader("n\n")
	ResetConfig(deps, false)
	assertContains(t, stdout.String(), "Cancelled")

	stdout.Reset()
	ResetConfig(deps, true)
	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d: %s", *exitCode, stderr.String())
	}
	assertContains(t, stdout.String(), "Config reset to defaults")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "nord") {
		t.Error("expected custom theme to be replaced")
	}
}
