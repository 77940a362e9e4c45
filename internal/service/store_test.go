package service

import (
	"testing"

	"github.com/xolan/chrono/internal/config"
)

func TestStoreService_StatusClearRestore(t *testing.T) {
	for _, backend := range []string{config.BackendJSONL, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			s := newTestServicesWithConfig(t, testConfig(backend))
			seed(t, s)

			status, err := s.Store.Status()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if status.Backend != backend {
				t.Errorf("expected backend %q, got %q", backend, status.Backend)
			}
			if status.Health.ValidEntries != 3 || status.Health.CorruptedEntries != 0 {
				t.Errorf("expected 3 valid entries, got %+v", status.Health)
			}

			removed, err := s.Store.Clear()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if removed != 3 {
				t.Errorf("expected 3 removed entries, got %d", removed)
			}
			if count, _ := s.Store.Count(); count != 0 {
				t.Errorf("expected an empty store, got %d entries", count)
			}

			backups, err := s.Store.Backups()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// The most recent backup holds the state before Clear.
			if len(backups) == 0 || backups[0].Number != 1 {
				t.Fatalf("expected backup 1 to exist, got %v", backups)
			}

			if err := s.Store.Restore(1); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if count, _ := s.Store.Count(); count != 3 {
				t.Errorf("expected 3 entries after restore, got %d", count)
			}
		})
	}
}

func TestStoreService_RestoreMissingBackup(t *testing.T) {
	s := newTestServices(t)
	seed(t, s)

	if err := s.Store.Restore(2); err == nil {
		t.Error("expected an error for a missing backup")
	}
	if err := s.Store.Restore(9); err == nil {
		t.Error("expected an error for an invalid backup number")
	}
}

func TestStoreService_Backend(t *testing.T) {
	svc := NewStoreService(StoreLocation{Path: "/tmp/entries.jsonl"}, config.DefaultConfig())
	if svc.Backend() != config.BackendJSONL {
		t.Errorf("expected the jsonl backend by default, got %q", svc.Backend())
	}
	if svc.Path() != "/tmp/entries.jsonl" {
		t.Errorf("unexpected path %q", svc.Path())
	}
}
