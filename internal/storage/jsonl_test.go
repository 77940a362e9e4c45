package storage

import (
	"os"
	"strings"
	"testing"

	"github.com/xolan/chrono/internal/entry"
)

func TestJSONLStore_SaveAndLoad(t *testing.T) {
	path := tempPath(t, "entries.jsonl")
	s := NewJSONLStore(path)

	if err := s.Save(sampleEntries()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	result, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	assertEntries(t, result.Entries, sampleEntries())

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestJSONLStore_LoadMissingFile(t *testing.T) {
	result, err := NewJSONLStore(tempPath(t, "none.jsonl")).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Entries) != 0 || len(result.Warnings) != 0 {
		t.Errorf("Load() = %+v, want empty", result)
	}
}

func TestReadEntriesWithWarnings_CorruptedLines(t *testing.T) {
	path := tempPath(t, "entries.jsonl")
	if err := WriteEntries(path, sampleEntries()[:1]); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	content := "{not json\n" + string(data) + "\n" + `{"start": 5}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := ReadEntriesWithWarnings(path)
	if err != nil {
		t.Fatalf("ReadEntriesWithWarnings() error = %v", err)
	}
	if len(result.Entries) != 1 {
		t.Errorf("got %d entries, want 1", len(result.Entries))
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %+v", len(result.Warnings), result.Warnings)
	}
	if result.Warnings[0].LineNumber != 1 || result.Warnings[0].Content != "{not json" {
		t.Errorf("first warning = %+v", result.Warnings[0])
	}
	if result.Warnings[1].LineNumber != 4 {
		t.Errorf("second warning line = %d, want 4", result.Warnings[1].LineNumber)
	}
}

func TestJSONLStore_Clear(t *testing.T) {
	s := NewJSONLStore(tempPath(t, "entries.jsonl"))
	if err := s.Save(sampleEntries()); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	result, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("got %d entries after Clear", len(result.Entries))
	}
}

func TestWriteEntries_ErrorLeavesFileIntact(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/missing/entries.jsonl"

	if err := WriteEntries(path, sampleEntries()); err == nil {
		t.Fatal("WriteEntries() into a missing directory should fail")
	}
}

func TestValidateStorage(t *testing.T) {
	path := tempPath(t, "entries.jsonl")
	entries := sampleEntries()
	broken := entries[1]
	broken.End = broken.Start
	if err := WriteEntries(path, []entry.Entry{entries[0], broken}); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("garbage\n")
	_ = f.Close()

	health, err := NewJSONLStore(path).Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if health.TotalLines != 3 {
		t.Errorf("TotalLines = %d, want 3", health.TotalLines)
	}
	if health.ValidEntries != 2 || health.CorruptedEntries != 1 || health.InvalidEntries != 1 {
		t.Errorf("health = %+v", health)
	}
	if len(health.Warnings) != 2 {
		t.Fatalf("warnings = %+v", health.Warnings)
	}
	if !strings.Contains(health.Warnings[1].Error, "invalid entry") {
		t.Errorf("second warning = %+v", health.Warnings[1])
	}
}

func TestValidateStorage_MissingFile(t *testing.T) {
	health, err := ValidateStorage(tempPath(t, "none.jsonl"))
	if err != nil {
		t.Fatalf("ValidateStorage() error = %v", err)
	}
	if health.TotalLines != 0 || len(health.Warnings) != 0 {
		t.Errorf("health = %+v", health)
	}
}
