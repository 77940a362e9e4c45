package storage

import (
	"os"
	"testing"
)

func writeString(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestGetBackupPath(t *testing.T) {
	if got := GetBackupPath("/data/entries.jsonl", 2); got != "/data/entries.jsonl.bak.2" {
		t.Errorf("GetBackupPath() = %q", got)
	}
}

func TestCreateBackup_NoStorageFile(t *testing.T) {
	path := tempPath(t, "entries.jsonl")
	if err := CreateBackup(path); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	backups, err := ListBackups(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups, want 0", len(backups))
	}
}

func TestCreateBackup_Rotation(t *testing.T) {
	path := tempPath(t, "entries.jsonl")

	for _, content := range []string{"v1", "v2", "v3", "v4", "v5"} {
		writeString(t, path, content)
		if err := CreateBackup(path); err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
	}

	backups, err := ListBackups(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != MaxBackupCount {
		t.Fatalf("got %d backups, want %d", len(backups), MaxBackupCount)
	}

	want := map[int]string{1: "v5", 2: "v4", 3: "v3"}
	for _, b := range backups {
		if got := readString(t, b.Path); got != want[b.Number] {
			t.Errorf("backup %d = %q, want %q", b.Number, got, want[b.Number])
		}
		if b.Size != 2 {
			t.Errorf("backup %d size = %d, want 2", b.Number, b.Size)
		}
	}
	if _, err := os.Stat(GetBackupPath(path, 4)); !os.IsNotExist(err) {
		t.Error("more than MaxBackupCount backups kept")
	}
}

func TestRestoreBackup(t *testing.T) {
	path := tempPath(t, "entries.jsonl")
	writeString(t, path, "old")
	if err := CreateBackup(path); err != nil {
		t.Fatal(err)
	}
	writeString(t, path, "new")

	if err := RestoreBackup(path, 1); err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}

	if got := readString(t, path); got != "old" {
		t.Errorf("storage = %q, want %q", got, "old")
	}
	// The replaced state is kept as the newest backup.
	if got := readString(t, GetBackupPath(path, 1)); got != "new" {
		t.Errorf("backup 1 = %q, want %q", got, "new")
	}
	if got := readString(t, GetBackupPath(path, 2)); got != "old" {
		t.Errorf("backup 2 = %q, want %q", got, "old")
	}
	if _, err := os.Stat(path + ".restore"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreBackup_Errors(t *testing.T) {
	path := tempPath(t, "entries.jsonl")

	tests := []struct {
		name string
		num  int
	}{
		{"zero", 0},
		{"too large", MaxBackupCount + 1},
		{"missing", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := RestoreBackup(path, tt.num); err == nil {
				t.Errorf("RestoreBackup(%d) error = nil", tt.num)
			}
		})
	}
}
