package cmd

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

// setupTestDeps installs dependencies backed by a store in a temp dir
func setupTestDeps(t *testing.T) (*bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	services := service.NewServicesWithPaths(filepath.Join(dir, storage.EntriesFile), filepath.Join(dir, "config.toml"), cfg)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := -1

	deps := cli.NewDeps(services, cfg)
	deps.Stdout = stdout
	deps.Stderr = stderr
	deps.Stdin = strings.NewReader("")
	deps.Exit = func(code int) { exitCode = code }

	cli.SetDeps(deps)
	t.Cleanup(cli.ResetDeps)
	return stdout, stderr, &exitCode
}

// execute runs the root command with args. Flags keep their values
// between runs, so every flag a test relies on is passed explicitly.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	return rootCmd.Execute()
}

func TestImportListAndStats(t *testing.T) {
	stdout, stderr, exitCode := setupTestDeps(t)

	if err := execute(t, "import", "--text", sampleLog, "--dry-run=false", "--yes=false"); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d: %s", *exitCode, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Saved 3 new entries") {
		t.Errorf("expected saved entries, got:\n%s", stdout.String())
	}

	stdout.Reset()
	if err := execute(t, "list", "--month", "2025-06", "--period", "", "--last", "0", "--from", "", "--to", "", "--location", "", "--keyword", ""); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Entries for June 2025:") || strings.Contains(stdout.String(), "Review") {
		t.Errorf("expected June entries only, got:\n%s", stdout.String())
	}

	stdout.Reset()
	if err := execute(t, "months", "2025-07"); err != nil {
		t.Fatalf("months failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Statistics for July 2025:") {
		t.Errorf("expected July details, got:\n%s", stdout.String())
	}
}

func TestList_InvalidRange(t *testing.T) {
	_, stderr, exitCode := setupTestDeps(t)

	if err := execute(t, "list", "--month", "2025-06", "--last", "3", "--period", "", "--from", "", "--to", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Error: Invalid date range") {
		t.Errorf("unexpected stderr:\n%s", stderr.String())
	}
}

func TestValidate(t *testing.T) {
	stdout, _, exitCode := setupTestDeps(t)

	if err := execute(t, "validate"); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if *exitCode != -1 {
		t.Fatalf("expected no exit, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Store is healthy") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
}

func TestReport_Stdout(t *testing.T) {
	stdout, _, _ := setupTestDeps(t)

	if err := execute(t, "report", "-o", "-", "--month", "", "--period", "", "--last", "0", "--from", "", "--to", ""); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "<html") {
		t.Errorf("expected HTML on stdout, got:\n%s", stdout.String())
	}
}

func TestExport_File(t *testing.T) {
	stdout, _, _ := setupTestDeps(t)
	path := filepath.Join(t.TempDir(), "out.json")

	if err := execute(t, "export", "-o", path, "--month", "", "--period", "", "--last", "0", "--from", "", "--to", "", "--location", "", "--keyword", ""); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Exported 0 entries") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("expected empty JSON array, got %q", data)
	}
}

func TestConflicts_RequiresFile(t *testing.T) {
	setupTestDeps(t)

	if err := execute(t, "conflicts"); err == nil {
		t.Error("expected an argument error")
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _, exitCode := setupTestDeps(t)

			if err := execute(t, "completion", shell); err != nil {
				t.Fatalf("completion failed: %v", err)
			}
			if *exitCode != -1 {
				t.Fatalf("expected no exit, got %d", *exitCode)
			}
			if !strings.Contains(stdout.String(), "chrono") {
				t.Errorf("expected a %s script mentioning chrono", shell)
			}
		})
	}
}

func TestCompletion_InvalidShell(t *testing.T) {
	setupTestDeps(t)

	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	if rootCmd.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", rootCmd.Version)
	}
}

func TestRangeFlagsSet(t *testing.T) {
	setupTestDeps(t)
	statsCmd.ResetFlags()
	addRangeFlags(statsCmd)

	if rangeFlagsSet(statsCmd) {
		t.Error("expected no range flags set")
	}
	if err := statsCmd.Flags().Set("last", "7"); err != nil {
		t.Fatal(err)
	}
	if !rangeFlagsSet(statsCmd) {
		t.Error("expected --last to count as set")
	}
	statsCmd.ResetFlags()
	addRangeFlags(statsCmd)
}
