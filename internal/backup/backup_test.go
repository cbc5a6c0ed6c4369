package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setupStoreFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}
	return path
}

func TestCreateBackup_JSON(t *testing.T) {
	storePath := setupStoreFile(t, "habitual.json", `{"version":1}`)
	mgr := NewManager(storePath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(backupPath), BackupFilePrefix) {
		t.Errorf("unexpected backup name: %s", backupPath)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("expected backup to keep the store's extension, got %s", backupPath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("backup content mismatch: %s", data)
	}
}

func TestCreateBackup_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habitual.json"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected an error when the store file does not exist")
	}
}

func TestListBackups_SortedNewestFirst(t *testing.T) {
	storePath := setupStoreFile(t, "habitual.json", "{}")
	mgr := NewManager(storePath)
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}

	names := []string{
		BackupFilePrefix + "20250101-0900.json",
		BackupFilePrefix + "20250301-0900.json",
		BackupFilePrefix + "20250201-0900.json",
		"unrelated.txt",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Error("backups not sorted newest first")
		}
	}
	if backups[0].Timestamp.Month() != time.March {
		t.Errorf("expected March backup first, got %v", backups[0].Timestamp)
	}
}

func TestRotateBackups_KeepsMostRecent(t *testing.T) {
	storePath := setupStoreFile(t, "habitual.json", "{}")
	mgr := NewManager(storePath)
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < MaxBackups+5; i++ {
		name := BackupFilePrefix + base.AddDate(0, 0, i).Format("20060102-1504") + ".json"
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	if err := mgr.rotateBackups(); err != nil {
		t.Fatalf("rotateBackups failed: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", MaxBackups, len(backups))
	}
	// The oldest five should be the ones removed.
	for _, b := range backups {
		if b.Timestamp.Before(base.AddDate(0, 0, 5)) {
			t.Errorf("old backup survived rotation: %v", b.Timestamp)
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	storePath := setupStoreFile(t, "habitual.json", `{"state":"current"}`)
	mgr := NewManager(storePath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if err := os.WriteFile(storePath, []byte(`{"state":"changed"}`), 0600); err != nil {
		t.Fatal(err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"state":"current"}` {
		t.Errorf("restore did not bring back the backup content: %s", data)
	}

	// The pre-restore state must have been backed up too.
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected a safety backup before restore, found %d backups", len(backups))
	}
}

func TestRestoreBackup_MissingFile(t *testing.T) {
	storePath := setupStoreFile(t, "habitual.json", "{}")
	mgr := NewManager(storePath)

	if err := mgr.RestoreBackup(filepath.Join(mgr.GetBackupDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing backup file")
	}
}
