package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/storage"
)

// sampleLog holds three entries: 3h Company and 4h Homeoffice on
// 30 June 2025, 1h30 Company on 1 July 2025.
const sampleLog = `30.6.25
9:00 - 12:00
C
Meeting
13:00 - 17:00
H
Work
1.7.25
8:00 - 9:30
C
Review`

// setupTestDeps creates test dependencies backed by a store in a temp dir
func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	return setupTestDepsWithConfig(t, config.DefaultConfig())
}

func setupTestDepsWithConfig(t *testing.T, cfg config.Config) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	dir := t.TempDir()
	name := storage.EntriesFile
	if cfg.Storage.Backend == config.BackendSQLite {
		name = storage.DatabaseFile
	}
	services := service.NewServicesWithPaths(filepath.Join(dir, name), filepath.Join(dir, "config.toml"), cfg)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := -1

	deps := cli.NewDeps(services, cfg)
	deps.Stdout = stdout
	deps.Stderr = stderr
	deps.Stdin = strings.NewReader("")
	deps.Exit = func(code int) { exitCode = code }
	return deps, stdout, stderr, &exitCode
}

// seed imports sampleLog and clears the output buffers.
func seed(t *testing.T, deps *cli.Deps, stdout, stderr *bytes.Buffer, exitCode *int) {
	t.Helper()
	Import(deps, nil, ImportOptions{Text: sampleLog, Yes: true})
	if *exitCode != -1 {
		t.Fatalf("seed import exited with %d: %s", *exitCode, stderr.String())
	}
	stdout.Reset()
	stderr.Reset()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, output)
		}
	}
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(line + "\n"); err != nil {
		t.Fatalf("failed to append to %s: %v", path, err)
	}
}
