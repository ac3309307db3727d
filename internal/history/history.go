// Package history provides the install history log for ccnotify.
//
// Every successful hook install appends one JSONL entry. The log lives
// in the per-user data directory and is rotated by size; rotated
// segments are gzip-compressed and still readable by Tail.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/foxytanuki/ccnotify/internal/config"
	"github.com/foxytanuki/ccnotify/internal/constants"
	"github.com/foxytanuki/ccnotify/internal/fileutil"
	"github.com/foxytanuki/ccnotify/internal/logger"
	"github.com/klauspost/compress/gzip"
)

// Version is the entry format version.
const Version = 1

// TimestampFormat is the format used for history timestamps.
const TimestampFormat = time.RFC3339

// maxLogSize triggers rotation of the active log segment.
const maxLogSize = 1 << 20

// Entry records a single hook install.
type Entry struct {
	Version      int    `json:"version"`
	Timestamp    string `json:"timestamp"`
	Channel      string `json:"channel"`
	Matcher      string `json:"matcher"`
	Scope        string `json:"scope"`
	SettingsPath string `json:"settings_path"`
	ScriptPath   string `json:"script_path"`
}

// Log is an append-only JSONL history file.
type Log struct {
	Path string
}

// Default returns the history log in the per-user data directory.
func Default() (*Log, error) {
	dataDir, err := config.GetDataDir()
	if err != nil {
		return nil, err
	}
	return &Log{Path: filepath.Join(dataDir, constants.HistoryFileName)}, nil
}

// Append writes one entry, stamping it with the current instant.
// Rotation happens first when the active segment is oversized.
func (l *Log) Append(entry Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.Path), constants.DirMode); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	if info, err := os.Stat(l.Path); err == nil && info.Size() > maxLogSize {
		l.rotate()
	}

	entry.Version = Version
	entry.Timestamp = time.Now().UTC().Format(TimestampFormat)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FileMode)
	if err != nil {
		return fmt.Errorf("failed to open history log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}
	return nil
}

// rotate gzips the active segment to a timestamped sibling and
// truncates the log. Best effort: a failed rotation is logged and
// appending continues on the oversized segment.
func (l *Log) rotate() {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		logger.Warn("failed to read history log for rotation", "path", l.Path, "error", err)
		return
	}

	rotated := l.Path + "." + fileutil.BackupTimestamp(time.Now()) + ".gz"
	f, err := os.OpenFile(rotated, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FileMode)
	if err != nil {
		logger.Warn("failed to create rotated history segment", "path", rotated, "error", err)
		return
	}

	zw := gzip.NewWriter(f)
	_, werr := zw.Write(data)
	cerr := zw.Close()
	if err := f.Close(); werr != nil || cerr != nil || err != nil {
		logger.Warn("failed to compress rotated history segment", "path", rotated)
		os.Remove(rotated)
		return
	}

	if err := os.Truncate(l.Path, 0); err != nil {
		logger.Warn("failed to truncate history log after rotation", "path", l.Path, "error", err)
		os.Remove(rotated)
		return
	}
	logger.Debug("rotated history log", "segment", rotated)
}

// Tail returns the most recent n entries, newest last. Rotated
// segments are consulted, newest first, when the active segment holds
// fewer than n entries.
func (l *Log) Tail(n int) ([]Entry, error) {
	entries, err := readSegment(l.Path, false)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read history log: %w", err)
	}

	if len(entries) < n {
		for _, seg := range l.rotatedSegments() {
			older, err := readSegment(seg, true)
			if err != nil {
				logger.Warn("failed to read rotated history segment", "path", seg, "error", err)
				continue
			}
			entries = append(older, entries...)
			if len(entries) >= n {
				break
			}
		}
	}

	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// rotatedSegments lists gzip segments for this log, newest first.
func (l *Log) rotatedSegments() []string {
	dir := filepath.Dir(l.Path)
	prefix := filepath.Base(l.Path) + "."

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var segs []string
	for _, e := range dirEntries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".gz") {
			segs = append(segs, filepath.Join(dir, name))
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(segs)))
	return segs
}

// readSegment parses JSONL entries from a plain or gzip segment.
// Unparseable lines are skipped; a history log must never make the
// tool fail outright.
func readSegment(path string, compressed bool) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var scanner *bufio.Scanner
	if compressed {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		scanner = bufio.NewScanner(zr)
	} else {
		scanner = bufio.NewScanner(f)
	}

	var entries []Entry
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			logger.Debug("skipping malformed history line", "path", path, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}
