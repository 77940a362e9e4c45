package service

import (
	"fmt"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/entry"
	"github.com/xolan/chrono/internal/storage"
)

// StoreLocation identifies the entry store. Stores are opened per
// operation and closed again, so backups and restores never race an
// open database handle.
type StoreLocation struct {
	Backend string
	Path    string
}

func (l StoreLocation) open() (storage.Store, error) {
	st, err := storage.OpenPath(l.Backend, l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

// load reads every stored entry.
func (l StoreLocation) load() (storage.ReadResult, error) {
	st, err := l.open()
	if err != nil {
		return storage.ReadResult{}, err
	}
	defer func() { _ = st.Close() }()

	result, err := st.Load()
	if err != nil {
		return storage.ReadResult{}, fmt.Errorf("failed to read entries: %w", err)
	}
	return result, nil
}

// save replaces the stored entries, backing up the current store first
// when backup is set.
func (l StoreLocation) save(entries []entry.Entry, backup bool) error {
	if backup {
		if err := storage.CreateBackup(l.Path); err != nil {
			return err
		}
	}

	st, err := l.open()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Save(entries); err != nil {
		return fmt.Errorf("failed to save entries: %w", err)
	}
	return nil
}

// StoreService provides maintenance operations on the entry store
type StoreService struct {
	loc    StoreLocation
	config config.Config
}

// NewStoreService creates a new StoreService
func NewStoreService(loc StoreLocation, cfg config.Config) *StoreService {
	return &StoreService{
		loc:    loc,
		config: cfg,
	}
}

// Path returns the store location
func (s *StoreService) Path() string {
	return s.loc.Path
}

// Backend returns the store backend name
func (s *StoreService) Backend() string {
	if s.loc.Backend == "" {
		return config.BackendJSONL
	}
	return s.loc.Backend
}

// Status validates the store and lists its backups
func (s *StoreService) Status() (*StoreStatus, error) {
	st, err := s.loc.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()

	health, err := st.Validate()
	if err != nil {
		return nil, fmt.Errorf("failed to validate store: %w", err)
	}

	backups, err := storage.ListBackups(s.loc.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	return &StoreStatus{
		Backend: s.Backend(),
		Path:    s.loc.Path,
		Health:  health,
		Backups: backups,
	}, nil
}

// Count returns the number of readable entries in the store
func (s *StoreService) Count() (int, error) {
	result, err := s.loc.load()
	if err != nil {
		return 0, err
	}
	return len(result.Entries), nil
}

// Clear removes every entry. The store is backed up first when
// files.backup_on_save is set. It returns the number of removed entries.
func (s *StoreService) Clear() (int, error) {
	n, err := s.Count()
	if err != nil {
		return 0, err
	}

	if s.config.Files.BackupOnSave {
		if err := storage.CreateBackup(s.loc.Path); err != nil {
			return 0, err
		}
	}

	st, err := s.loc.open()
	if err != nil {
		return 0, err
	}
	defer func() { _ = st.Close() }()

	if err := st.Clear(); err != nil {
		return 0, fmt.Errorf("failed to clear store: %w", err)
	}
	return n, nil
}

// Backups lists the available backups, most recent first
func (s *StoreService) Backups() ([]storage.BackupInfo, error) {
	return storage.ListBackups(s.loc.Path)
}

// Restore replaces the store with backup n (1 is the most recent)
func (s *StoreService) Restore(n int) error {
	if err := storage.RestoreBackup(s.loc.Path, n); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}
