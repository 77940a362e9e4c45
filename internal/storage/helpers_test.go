package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/osutil"
)

// dirProvider resolves the user config dir to a fixed directory.
type dirProvider struct {
	dir string
}

func (p dirProvider) UserConfigDir() (string, error)               { return p.dir, nil }
func (p dirProvider) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

func useConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	osutil.SetProvider(dirProvider{dir: dir})
	t.Cleanup(osutil.ResetProvider)
	return dir
}

func sampleEntries() []entry.Entry {
	day := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	return []entry.Entry{
		{Start: day.Add(9 * time.Hour), End: day.Add(12 * time.Hour), Location: "Company", Description: "Meeting", Source: "june.txt", BatchID: "b1"},
		{Start: day.Add(13 * time.Hour), End: day.Add(17 * time.Hour), Location: "Company", Description: "Work"},
	}
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func assertEntries(t *testing.T, got, want []entry.Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if !g.Start.Equal(w.Start) || !g.End.Equal(w.End) || g.Location != w.Location ||
			g.Description != w.Description || g.Source != w.Source || g.BatchID != w.BatchID {
			t.Errorf("entry %d = %+v, want %+v", i, g, w)
		}
	}
}
