// Package fileutil provides the filesystem primitives for ccnotify:
// directory creation, whole-file text IO, and timestamped backups.
package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/foxytanuki/ccnotify/internal/constants"
	"github.com/foxytanuki/ccnotify/internal/errs"
	"github.com/foxytanuki/ccnotify/internal/logger"
)

// backupInfix separates the original file name from the backup timestamp.
const backupInfix = ".backup."

// now is swapped out in tests to pin backup timestamps.
var now = time.Now

// EnsureDir creates path and any missing parents. Idempotent.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, constants.DirMode); err != nil {
		return errs.Wrap(errs.KindDirectoryAccess, "create directory", path, err)
	}
	return nil
}

// Exists reports whether path can be stat-ed. Any access error is
// treated as "does not exist"; this function never fails.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadText reads the whole file as UTF-8 text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errs.Wrap(errs.KindFilePermission, "read file", path, err)
	}
	return string(data), nil
}

// WriteText writes content to path, creating parent directories first.
func WriteText(path, content string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), constants.FileMode); err != nil {
		return errs.Wrap(errs.KindFilePermission, "write file", path, err)
	}
	return nil
}

// WriteScript writes an executable script file, creating parent
// directories first. The execute bit matters on every platform but
// Windows, where the mode is ignored by the OS anyway.
func WriteScript(path, content string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), constants.ScriptMode); err != nil {
		return errs.Wrap(errs.KindScriptCreation, "write script", path, err)
	}
	if runtime.GOOS != "windows" {
		// WriteFile only applies the mode on create; an existing script
		// keeps its old permissions without this.
		if err := os.Chmod(path, constants.ScriptMode); err != nil {
			return errs.Wrap(errs.KindScriptCreation, "chmod script", path, err)
		}
	}
	return nil
}

// BackupTimestamp formats an instant as ISO-8601 with ':' and '.'
// replaced by '-' so the result is filesystem-safe.
func BackupTimestamp(t time.Time) string {
	s := t.UTC().Format("2006-01-02T15:04:05.000Z")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, ".", "-")
	return s
}

// CreateBackup copies path to a timestamped sibling
// (<path>.backup.<timestamp>) and returns the backup path.
// The source must exist.
func CreateBackup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errs.Wrap(errs.KindFilePermission, "create backup", path, err)
	}
	backupPath := path + backupInfix + BackupTimestamp(now())
	if err := os.WriteFile(backupPath, data, constants.FileMode); err != nil {
		return "", errs.Wrap(errs.KindConfigBackup, "create backup", backupPath, err)
	}
	logger.Debug("created backup", "path", backupPath)
	return backupPath, nil
}

// PruneBackups removes every backup of path except the most recent one.
// The timestamp format sorts lexicographically, so the newest backup is
// the largest sibling name. Failures are logged, never escalated:
// pruning is cleanup, not part of the write contract.
func PruneBackups(path string) {
	dir := filepath.Dir(path)
	prefix := filepath.Base(path) + backupInfix

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("failed to list backups", "dir", dir, "error", err)
		return
	}

	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			backups = append(backups, e.Name())
		}
	}
	if len(backups) <= 1 {
		return
	}

	sort.Strings(backups)
	for _, name := range backups[:len(backups)-1] {
		stale := filepath.Join(dir, name)
		if err := os.Remove(stale); err != nil {
			logger.Warn("failed to prune backup", "path", stale, "error", err)
		} else {
			logger.Debug("pruned backup", "path", stale)
		}
	}
}
