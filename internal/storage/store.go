// Package storage persists the entry collection in a JSON Lines file or an
// SQLite database and keeps rotating file backups of it.
package storage

import (
	"fmt"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/osutil"
)

const (
	// EntriesFile is the name of the JSON Lines storage file
	EntriesFile = "entries.jsonl"
	// DatabaseFile is the name of the SQLite storage file
	DatabaseFile = "entries.db"
)

// Store holds the persisted entry collection. Save replaces the whole
// collection.
type Store interface {
	Load() (ReadResult, error)
	Save(entries []entry.Entry) error
	Clear() error
	Validate() (StorageHealth, error)
	Path() string
	Close() error
}

var (
	_ Store = (*JSONLStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// GetStoragePath returns the default storage file for backend inside the
// application config directory, creating the directory if needed.
func GetStoragePath(backend string) (string, error) {
	switch backend {
	case config.BackendSQLite:
		return osutil.AppFile(DatabaseFile)
	case config.BackendJSONL, "":
		return osutil.AppFile(EntriesFile)
	default:
		return "", fmt.Errorf("unknown storage backend %q", backend)
	}
}

// ResolvePath returns cfg.Path, or the default path of the backend.
func ResolvePath(cfg config.Storage) (string, error) {
	if cfg.Path != "" {
		return cfg.Path, nil
	}
	return GetStoragePath(cfg.Backend)
}

// Open opens the configured store.
func Open(cfg config.Storage) (Store, error) {
	path, err := ResolvePath(cfg)
	if err != nil {
		return nil, err
	}
	return OpenPath(cfg.Backend, path)
}

// OpenPath opens a store of the given backend at path.
func OpenPath(backend, path string) (Store, error) {
	switch backend {
	case config.BackendSQLite:
		return OpenSQLite(path)
	case config.BackendJSONL, "":
		return NewJSONLStore(path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
