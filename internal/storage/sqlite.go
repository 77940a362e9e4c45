package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/xolan/chrono/internal/entry"
)

const timeLayout = time.RFC3339Nano

// SQLiteStore keeps entries in an SQLite database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens (and if needed creates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	s := &SQLiteStore{path: path, db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database %s: %w", path, err)
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		batch_id TEXT NOT NULL DEFAULT ''
	)
	`
	_, err := s.db.Exec(query)
	return err
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load reads all entries in insertion order. Rows with unreadable
// timestamps become warnings.
func (s *SQLiteStore) Load() (ReadResult, error) {
	result := ReadResult{
		Entries:  []entry.Entry{},
		Warnings: []ParseWarning{},
	}

	rows, err := s.db.Query("SELECT id, start_at, end_at, location, description, source, batch_id FROM entries ORDER BY id")
	if err != nil {
		return result, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			id         int
			start, end string
			e          entry.Entry
		)
		if err := rows.Scan(&id, &start, &end, &e.Location, &e.Description, &e.Source, &e.BatchID); err != nil {
			return result, err
		}

		if e.Start, err = time.Parse(timeLayout, start); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{LineNumber: id, Content: start, Error: err.Error()})
			continue
		}
		if e.End, err = time.Parse(timeLayout, end); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{LineNumber: id, Content: end, Error: err.Error()})
			continue
		}
		result.Entries = append(result.Entries, e)
	}
	return result, rows.Err()
}

// Save replaces all rows in one transaction.
func (s *SQLiteStore) Save(entries []entry.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO entries (start_at, end_at, location, description, source, batch_id) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Start.Format(timeLayout), e.End.Format(timeLayout), e.Location, e.Description, e.Source, e.BatchID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Clear deletes all rows.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM entries")
	return err
}

// Validate reports row counts and entries that fail to load or validate.
func (s *SQLiteStore) Validate() (StorageHealth, error) {
	health := StorageHealth{Warnings: []ParseWarning{}}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&health.TotalLines); err != nil {
		return health, err
	}

	result, err := s.Load()
	if err != nil {
		return health, err
	}
	health.ValidEntries = len(result.Entries)
	health.CorruptedEntries = len(result.Warnings)
	health.Warnings = result.Warnings
	checkEntries(result.Entries, &health)
	return health, nil
}
