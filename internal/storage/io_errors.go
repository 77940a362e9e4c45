package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xolan/chrono/internal/entry"
)

func writeEntriesToTempFile(file *os.File, tmpFile string, entries []entry.Entry) error {
	w := bufio.NewWriter(file)
	for _, e := range entries {
		line, err := json.Marshal(e)
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}

	if err := w.Flush(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}

func validateStorageScanAndRead(file *os.File, path string, health *StorageHealth) error {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if scanner.Text() != "" {
			health.TotalLines++
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	result, err := ReadEntriesWithWarnings(path)
	if err != nil {
		return err
	}

	health.ValidEntries = len(result.Entries)
	health.CorruptedEntries = len(result.Warnings)
	health.Warnings = result.Warnings
	checkEntries(result.Entries, health)
	return nil
}

// checkEntries counts parsed entries that violate the entry invariants.
// Their warnings carry the 1-based position among the parsed entries.
func checkEntries(entries []entry.Entry, health *StorageHealth) {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			health.InvalidEntries++
			health.Warnings = append(health.Warnings, ParseWarning{
				LineNumber: i + 1,
				Content:    e.String(),
				Error:      fmt.Sprintf("invalid entry: %v", err),
			})
		}
	}
}
