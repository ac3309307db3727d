package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/foxytanuki/ccnotify/internal/constants"
)

func testLog(t *testing.T) *Log {
	t.Helper()
	return &Log{Path: filepath.Join(t.TempDir(), constants.HistoryFileName)}
}

func TestAppendAndTail(t *testing.T) {
	l := testLog(t)

	channels := []string{"discord", "ntfy", "macos"}
	for _, ch := range channels {
		err := l.Append(Entry{
			Channel:      ch,
			Matcher:      ch + "-notification",
			Scope:        "local",
			SettingsPath: ".claude/settings.json",
			ScriptPath:   "/data/scripts/" + ch + "-notification.sh",
		})
		if err != nil {
			t.Fatalf("Append(%s) error = %v", ch, err)
		}
	}

	entries, err := l.Tail(10)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Tail() returned %d entries, want 3", len(entries))
	}

	// Newest last.
	if entries[len(entries)-1].Channel != "macos" {
		t.Errorf("last entry channel = %q, want macos", entries[len(entries)-1].Channel)
	}

	for _, e := range entries {
		if e.Version != Version {
			t.Errorf("entry version = %d, want %d", e.Version, Version)
		}
		if _, err := time.Parse(TimestampFormat, e.Timestamp); err != nil {
			t.Errorf("entry timestamp %q does not parse: %v", e.Timestamp, err)
		}
	}
}

func TestTailLimit(t *testing.T) {
	l := testLog(t)
	for i := 0; i < 5; i++ {
		if err := l.Append(Entry{Channel: "ntfy", Scope: "local"}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := l.Tail(2)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Tail(2) returned %d entries", len(entries))
	}
}

func TestTailMissingLog(t *testing.T) {
	l := testLog(t)

	entries, err := l.Tail(10)
	if err != nil {
		t.Fatalf("Tail() error = %v for missing log", err)
	}
	if len(entries) != 0 {
		t.Errorf("Tail() = %d entries for missing log, want 0", len(entries))
	}
}

func TestTailSkipsMalformedLines(t *testing.T) {
	l := testLog(t)
	content := `{"version":1,"timestamp":"2026-08-30T10:00:00Z","channel":"discord"}
this line is not json
{"version":1,"timestamp":"2026-08-30T11:00:00Z","channel":"ntfy"}
`
	if err := os.MkdirAll(filepath.Dir(l.Path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(l.Path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := l.Tail(10)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Tail() = %d entries, want 2 (malformed line skipped)", len(entries))
	}
}

func TestAppendRotatesOversizedLog(t *testing.T) {
	l := testLog(t)
	if err := os.MkdirAll(filepath.Dir(l.Path), 0755); err != nil {
		t.Fatal(err)
	}

	// One oversized segment full of valid entries.
	line := `{"version":1,"timestamp":"2026-08-30T10:00:00Z","channel":"discord","scope":"local"}` + "\n"
	bulk := strings.Repeat(line, maxLogSize/len(line)+2)
	if err := os.WriteFile(l.Path, []byte(bulk), 0644); err != nil {
		t.Fatal(err)
	}

	if err := l.Append(Entry{Channel: "ntfy", Scope: "global"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	segs := l.rotatedSegments()
	if len(segs) != 1 {
		t.Fatalf("found %d rotated segments, want 1", len(segs))
	}
	if !strings.HasSuffix(segs[0], ".gz") {
		t.Errorf("rotated segment %q is not gzip", segs[0])
	}

	info, err := os.Stat(l.Path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("active log still oversized after rotation: %d bytes", info.Size())
	}

	// Active segment holds only the new entry; Tail pulls the rest from
	// the rotated segment.
	entries, err := l.Tail(3)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Tail(3) = %d entries", len(entries))
	}
	if entries[2].Channel != "ntfy" {
		t.Errorf("newest entry channel = %q, want ntfy", entries[2].Channel)
	}
	if entries[0].Channel != "discord" {
		t.Errorf("older entry channel = %q, want discord (from rotated segment)", entries[0].Channel)
	}
}

func TestDefaultUsesDataDir(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv(constants.EnvDataDir, dataDir)

	l, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	want := filepath.Join(dataDir, constants.HistoryFileName)
	if l.Path != want {
		t.Errorf("Default().Path = %q, want %q", l.Path, want)
	}
}
