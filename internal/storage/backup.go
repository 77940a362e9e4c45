package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// GetBackupPath returns the path to a backup file with the given rotation number.
// Backup files are named <storage>.bak.N; lower numbers are more recent.
func GetBackupPath(storagePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storagePath, BackupSuffix, n)
}

// rotateBackups shifts existing backup files to make room for a new backup.
// It deletes the oldest backup and renames .bak.2 -> .bak.3, .bak.1 -> .bak.2.
// Missing files are skipped.
func rotateBackups(storagePath string) error {
	if err := os.Remove(GetBackupPath(storagePath, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(GetBackupPath(storagePath, i), GetBackupPath(storagePath, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// CreateBackup copies the storage file to .bak.1 after rotating the older
// backups. If the storage file doesn't exist, no backup is created.
func CreateBackup(storagePath string) error {
	if _, err := os.Stat(storagePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(storagePath); err != nil {
		return fmt.Errorf("failed to rotate backups: %w", err)
	}

	if err := copyFile(storagePath, GetBackupPath(storagePath, 1)); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	slog.Debug("created backup", "path", GetBackupPath(storagePath, 1))
	return nil
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number int    // The backup number (1, 2, or 3)
	Path   string // The full path to the backup file
	Size   int64
}

// ListBackups returns the existing backups of storagePath, most recent first.
func ListBackups(storagePath string) ([]BackupInfo, error) {
	var backups []BackupInfo

	for i := 1; i <= MaxBackupCount; i++ {
		backupPath := GetBackupPath(storagePath, i)
		info, err := os.Stat(backupPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		backups = append(backups, BackupInfo{Number: i, Path: backupPath, Size: info.Size()})
	}

	return backups, nil
}

// RestoreBackup replaces the storage file with backup backupNum (1 is most
// recent). The current state is backed up first, so a restore can itself
// be undone. The store must not be open while restoring.
func RestoreBackup(storagePath string, backupNum int) error {
	if backupNum < 1 || backupNum > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", backupNum, MaxBackupCount)
	}

	backupPath := GetBackupPath(storagePath, backupNum)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", backupNum)
		}
		return err
	}

	// Keep the chosen backup readable while the rotation renames it.
	tmp := storagePath + ".restore"
	if err := copyFile(backupPath, tmp); err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := CreateBackup(storagePath); err != nil {
		return err
	}

	return os.Rename(tmp, storagePath)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = sourceFile.Close() }()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}
	return destFile.Close()
}
