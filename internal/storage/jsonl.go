package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/xolan/chrono/internal/entry"
)

// ParseWarning represents a warning about a corrupted or malformed entry
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed), or row id for SQLite
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// ReadResult contains the results of reading entries from storage,
// including both successfully parsed entries and any warnings about
// corrupted or malformed lines.
type ReadResult struct {
	Entries  []entry.Entry  // Successfully parsed entries
	Warnings []ParseWarning // Warnings about corrupted lines
}

// StorageHealth contains information about the health status of the store.
type StorageHealth struct {
	TotalLines       int            // Total number of lines (or rows) in the store
	ValidEntries     int            // Number of successfully parsed entries
	CorruptedEntries int            // Number of corrupted/malformed lines
	InvalidEntries   int            // Parsed entries that fail entry validation
	Warnings         []ParseWarning // Detailed information about each problem
}

// JSONLStore keeps one JSON encoded entry per line.
type JSONLStore struct {
	path string
}

// NewJSONLStore returns a store for the JSON Lines file at path.
// The file is created on the first Save.
func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// Path returns the storage file path.
func (s *JSONLStore) Path() string { return s.path }

// Load reads all entries. A missing file is an empty store.
func (s *JSONLStore) Load() (ReadResult, error) {
	return ReadEntriesWithWarnings(s.path)
}

// Save replaces the stored entries atomically.
func (s *JSONLStore) Save(entries []entry.Entry) error {
	return WriteEntries(s.path, entries)
}

// Clear removes every entry.
func (s *JSONLStore) Clear() error {
	return WriteEntries(s.path, nil)
}

// Validate reports the health of the storage file.
func (s *JSONLStore) Validate() (StorageHealth, error) {
	return ValidateStorage(s.path)
}

// Close is a no-op; the file is only open during a call.
func (s *JSONLStore) Close() error { return nil }

// ReadEntriesWithWarnings reads all entries from the JSON Lines storage file
// and returns both successfully parsed entries and warnings about any corrupted lines.
// Returns an empty ReadResult if the file doesn't exist.
func ReadEntriesWithWarnings(path string) (ReadResult, error) {
	result := ReadResult{
		Entries:  []entry.Entry{},
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineContent := scanner.Text()
		if lineContent == "" {
			continue
		}

		var e entry.Entry
		if err := json.Unmarshal([]byte(lineContent), &e); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    lineContent,
				Error:      err.Error(),
			})
			continue
		}
		result.Entries = append(result.Entries, e)
	}

	if err := scanner.Err(); err != nil {
		return result, err
	}

	if len(result.Warnings) > 0 {
		slog.Warn("skipped corrupted storage lines", "path", path, "count", len(result.Warnings))
	}
	return result, nil
}

// WriteEntries writes all entries to the JSON Lines storage file.
// The entries are written to a temporary file which then replaces the
// storage file, so readers never see a partial write.
func WriteEntries(path string, entries []entry.Entry) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if err := writeEntriesToTempFile(file, tmpFile, entries); err != nil {
		return err
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// ValidateStorage analyzes the storage file and returns health status information.
// Returns empty health status if the file doesn't exist.
func ValidateStorage(path string) (StorageHealth, error) {
	health := StorageHealth{
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return health, nil
		}
		return health, err
	}
	defer func() { _ = file.Close() }()

	if err := validateStorageScanAndRead(file, path, &health); err != nil {
		return health, err
	}
	return health, nil
}
