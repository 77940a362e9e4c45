package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/chrono/internal/config"
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

// fixedNow is Wednesday, 2 July 2025.
var fixedNow = time.Date(2025, time.July, 2, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

func testConfig(backend string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = backend
	return cfg
}

func newTestServicesWithConfig(t *testing.T, cfg config.Config) *Services {
	t.Helper()
	dir := t.TempDir()
	name := storage.EntriesFile
	if cfg.Storage.Backend == config.BackendSQLite {
		name = storage.DatabaseFile
	}
	s := NewServicesWithPaths(filepath.Join(dir, name), filepath.Join(dir, "config.toml"), cfg)
	s.Entry.now = fixedClock
	s.Stats.now = fixedClock
	s.Report.now = fixedClock
	return s
}

func newTestServices(t *testing.T) *Services {
	t.Helper()
	return newTestServicesWithConfig(t, testConfig(config.BackendJSONL))
}

// seed imports sampleLog and returns the applied plan.
func seed(t *testing.T, s *Services) *ImportPlan {
	t.Helper()
	plan, err := s.Import.Import(nil, strings.NewReader(sampleLog), false)
	if err != nil {
		t.Fatalf("seed import failed: %v", err)
	}
	if plan.Merge.Added != 3 {
		t.Fatalf("seed import added %d entries, expected 3", plan.Merge.Added)
	}
	return plan
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
