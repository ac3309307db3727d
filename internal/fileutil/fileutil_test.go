package fileutil

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"
	"time"

	"github.com/foxytanuki/ccnotify/internal/errs"
)

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() second call error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir created a non-directory")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !Exists(path) {
		t.Error("Exists() = false for existing file")
	}
	if Exists(filepath.Join(dir, "absent")) {
		t.Error("Exists() = true for missing file")
	}
}

func TestWriteTextCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "file.txt")

	if err := WriteText(path, "hello"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	got, err := ReadText(path)
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("ReadText() = %q, want hello", got)
	}
}

func TestReadTextMissingFile(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("ReadText() = nil error for missing file")
	}
	if errs.KindOf(err) != errs.KindFilePermission {
		t.Errorf("ReadText() kind = %v, want KindFilePermission", errs.KindOf(err))
	}
}

func TestWriteScriptMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on Windows")
	}

	path := filepath.Join(t.TempDir(), "scripts", "notify.sh")
	if err := WriteScript(path, "#!/bin/bash\nexit 0\n"); err != nil {
		t.Fatalf("WriteScript() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("script mode = %o, want 0755", info.Mode().Perm())
	}
}

func TestWriteScriptFixesExistingMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on Windows")
	}

	path := filepath.Join(t.TempDir(), "notify.sh")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteScript(path, "#!/bin/bash\nexit 0\n"); err != nil {
		t.Fatalf("WriteScript() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("rewritten script mode = %o, want 0755", info.Mode().Perm())
	}
}

func TestBackupTimestampFormat(t *testing.T) {
	instant := time.Date(2026, 8, 30, 14, 5, 9, 123_000_000, time.UTC)

	got := BackupTimestamp(instant)
	want := "2026-08-30T14-05-09-123Z"
	if got != want {
		t.Errorf("BackupTimestamp() = %q, want %q", got, want)
	}

	safe := regexp.MustCompile(`^[A-Za-z0-9T-]+Z$`)
	if !safe.MatchString(got) {
		t.Errorf("BackupTimestamp() = %q contains filesystem-unsafe characters", got)
	}
}

func TestCreateBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(`{"a":1}`), 0644); err != nil {
		t.Fatal(err)
	}

	instant := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	now = func() time.Time { return instant }
	defer func() { now = time.Now }()

	backupPath, err := CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	want := path + ".backup." + BackupTimestamp(instant)
	if backupPath != want {
		t.Errorf("CreateBackup() = %q, want %q", backupPath, want)
	}

	content, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != `{"a":1}` {
		t.Errorf("backup content = %s, want original content", content)
	}
}

func TestCreateBackupMissingSource(t *testing.T) {
	_, err := CreateBackup(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("CreateBackup() = nil error for missing source")
	}
	if errs.KindOf(err) != errs.KindFilePermission {
		t.Errorf("CreateBackup() kind = %v, want KindFilePermission", errs.KindOf(err))
	}
}

func TestPruneBackupsKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	names := []string{
		"settings.json.backup.2026-08-28T10-00-00-000Z",
		"settings.json.backup.2026-08-29T10-00-00-000Z",
		"settings.json.backup.2026-08-30T10-00-00-000Z",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	PruneBackups(path)

	for i, name := range names {
		exists := Exists(filepath.Join(dir, name))
		wantExists := i == len(names)-1
		if exists != wantExists {
			t.Errorf("backup %s exists = %v, want %v", name, exists, wantExists)
		}
	}
}

func TestPruneBackupsIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	unrelated := filepath.Join(dir, "other.json.backup.2026-08-28T10-00-00-000Z")
	if err := os.WriteFile(unrelated, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	PruneBackups(path)

	if !Exists(unrelated) {
		t.Error("PruneBackups removed a backup belonging to another file")
	}
	if !Exists(path) {
		t.Error("PruneBackups removed the original file")
	}
}

func TestPruneBackupsSingleBackupNoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	only := filepath.Join(dir, "settings.json.backup.2026-08-30T10-00-00-000Z")
	if err := os.WriteFile(only, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	PruneBackups(path)

	if !Exists(only) {
		t.Error("PruneBackups removed the only backup")
	}
}
