// Package settings implements the load/merge/save cycle for Claude Code's
// settings.json.
//
// The document is deliberately open-ended: ccnotify only understands the
// "hooks" substructure, and every unknown key must survive a
// load → merge → save cycle untouched. Only the Stop event's hook array
// is merged entry-by-entry (keyed on matcher, so reinstalling a channel
// replaces its entry instead of duplicating it); any other event name in
// an update replaces the existing value wholesale.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/foxytanuki/ccnotify/internal/constants"
	"github.com/foxytanuki/ccnotify/internal/errs"
	"github.com/foxytanuki/ccnotify/internal/fileutil"
	"github.com/foxytanuki/ccnotify/internal/logger"
)

// Document is a parsed settings.json: an open mapping that preserves
// keys ccnotify does not understand.
type Document map[string]any

// HookEntry is one recognized entry in an event's hook array.
type HookEntry struct {
	Matcher string        `json:"matcher"`
	Hooks   []ActionEntry `json:"hooks"`
}

// ActionEntry names a single shell command to execute.
type ActionEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// CommandEntry builds a HookEntry binding matcher to one shell command.
func CommandEntry(matcher, command string) HookEntry {
	return HookEntry{
		Matcher: matcher,
		Hooks:   []ActionEntry{{Type: "command", Command: command}},
	}
}

// StopUpdate wraps a HookEntry as a merge update for the Stop event.
func StopUpdate(entry HookEntry) Document {
	return Document{
		"hooks": map[string]any{
			constants.StopEvent: []any{
				map[string]any{
					"matcher": entry.Matcher,
					"hooks":   actionList(entry.Hooks),
				},
			},
		},
	}
}

func actionList(actions []ActionEntry) []any {
	out := make([]any, 0, len(actions))
	for _, a := range actions {
		out = append(out, map[string]any{"type": a.Type, "command": a.Command})
	}
	return out
}

// ConfigPath returns the settings.json path for the requested scope:
// .claude/settings.json under the working directory, or under the home
// directory when global is true.
func ConfigPath(global bool) (string, error) {
	if !global {
		return filepath.Join(constants.ClaudeConfigDir, constants.ClaudeSettingsFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errs.Wrap(errs.KindDirectoryAccess, "resolve settings path", "", err).
			WithSuggestion("set the HOME environment variable")
	}
	return filepath.Join(home, constants.ClaudeConfigDir, constants.ClaudeSettingsFile), nil
}

// Load reads and validates the settings document at path.
// A missing file is not an error; it loads as an empty document.
func Load(path string) (Document, error) {
	if !fileutil.Exists(path) {
		logger.Debug("no settings file, starting empty", "path", path)
		return Document{}, nil
	}

	text, err := fileutil.ReadText(path)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, errs.New(errs.KindJSONParse, "load settings",
			fmt.Sprintf("invalid JSON in %s: %v", path, err))
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, errs.New(errs.KindJSONParse, "load settings",
			fmt.Sprintf("%s must contain a JSON object", path))
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks the recognized hooks substructure. Unknown top-level
// keys are always acceptable; any shape violation inside "hooks" is a
// hard failure naming the offending field path.
func Validate(doc Document) error {
	rawHooks, ok := doc["hooks"]
	if !ok {
		return nil
	}

	hooks, ok := rawHooks.(map[string]any)
	if !ok {
		return shapeErr("hooks must be an object")
	}

	for event, rawEntries := range hooks {
		entries, ok := rawEntries.([]any)
		if !ok {
			return shapeErr(fmt.Sprintf("hooks.%s must be an array", event))
		}
		for i, rawEntry := range entries {
			entry, ok := rawEntry.(map[string]any)
			if !ok {
				return shapeErr(fmt.Sprintf("hooks.%s[%d] must be an object", event, i))
			}
			if _, ok := entry["matcher"].(string); !ok {
				return shapeErr(fmt.Sprintf("hooks.%s[%d] must have a string matcher", event, i))
			}
			rawActions, ok := entry["hooks"].([]any)
			if !ok {
				return shapeErr(fmt.Sprintf("hooks.%s[%d] must have an array of hooks", event, i))
			}
			for j, rawAction := range rawActions {
				action, ok := rawAction.(map[string]any)
				if !ok {
					return shapeErr(fmt.Sprintf("hooks.%s[%d].hooks[%d] must be an object", event, i, j))
				}
				if t, _ := action["type"].(string); t != "command" {
					return shapeErr(fmt.Sprintf("hooks.%s[%d].hooks[%d] must have type \"command\"", event, i, j))
				}
				if _, ok := action["command"].(string); !ok {
					return shapeErr(fmt.Sprintf("hooks.%s[%d].hooks[%d] must have a string command", event, i, j))
				}
			}
		}
	}
	return nil
}

func shapeErr(msg string) error {
	return errs.New(errs.KindJSONParse, "validate settings", msg)
}

// Merge returns a new document combining existing with updates.
// Neither input is mutated. Top-level update keys win, except "hooks":
// within it, the Stop event is merged entry-wise on matcher (replacing
// in place, appending when new) and every other event name is replaced
// wholesale.
func Merge(existing, updates Document) Document {
	merged := deepCopyMap(existing)

	for key, value := range updates {
		if key != "hooks" {
			merged[key] = deepCopyValue(value)
			continue
		}

		updHooks, ok := value.(map[string]any)
		if !ok {
			merged[key] = deepCopyValue(value)
			continue
		}

		baseHooks, ok := merged["hooks"].(map[string]any)
		if !ok {
			baseHooks = map[string]any{}
		}

		for event, rawEntries := range updHooks {
			updEntries, isArray := rawEntries.([]any)
			baseEntries, hasBase := baseHooks[event].([]any)
			if event == constants.StopEvent && isArray && hasBase {
				baseHooks[event] = mergeByMatcher(baseEntries, updEntries)
			} else {
				baseHooks[event] = deepCopyValue(rawEntries)
			}
		}
		merged["hooks"] = baseHooks
	}

	return merged
}

// mergeByMatcher replaces entries sharing a matcher in place and
// appends entries with an unseen matcher, preserving order.
func mergeByMatcher(base, updates []any) []any {
	out := make([]any, len(base))
	copy(out, base)

	for _, rawUpd := range updates {
		upd, ok := rawUpd.(map[string]any)
		if !ok {
			out = append(out, deepCopyValue(rawUpd))
			continue
		}
		matcher, _ := upd["matcher"].(string)

		replaced := false
		for i, rawExisting := range out {
			existing, ok := rawExisting.(map[string]any)
			if !ok {
				continue
			}
			if m, _ := existing["matcher"].(string); m == matcher {
				out[i] = deepCopyValue(rawUpd)
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, deepCopyValue(rawUpd))
		}
	}
	return out
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return val
	}
}

// Store persists settings documents with backup-before-write semantics.
type Store struct {
	// KeepAllBackups disables pruning of older timestamped backups.
	KeepAllBackups bool
}

// NewStore builds a Store with the given retention policy.
func NewStore(keepAllBackups bool) *Store {
	return &Store{KeepAllBackups: keepAllBackups}
}

// Save re-validates doc, backs up any existing file at path, then
// writes the document as 2-space-indented JSON. If the write fails the
// pre-write content is restored from the backup (best effort; a restore
// failure is logged but the write error is what comes back).
func (s *Store) Save(path string, doc Document) error {
	if err := Validate(doc); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errs.New(errs.KindJSONParse, "save settings",
			fmt.Sprintf("cannot encode settings: %v", err))
	}

	var backupPath string
	if fileutil.Exists(path) {
		backupPath, err = fileutil.CreateBackup(path)
		if err != nil {
			return err
		}
	}

	if err := fileutil.WriteText(path, string(data)+"\n"); err != nil {
		if backupPath != "" {
			restore(path, backupPath)
		}
		return err
	}

	if backupPath != "" && !s.KeepAllBackups {
		fileutil.PruneBackups(path)
	}
	logger.Debug("saved settings", "path", path)
	return nil
}

// restore copies a backup over path after a failed write. Best effort:
// failure here must not mask the original write error.
func restore(path, backupPath string) {
	content, err := fileutil.ReadText(backupPath)
	if err != nil {
		logger.Warn("failed to read backup for restore", "path", backupPath, "error", err)
		return
	}
	if err := os.WriteFile(path, []byte(content), constants.FileMode); err != nil {
		logger.Warn("failed to restore backup", "path", path, "error", err)
		return
	}
	logger.Info("restored settings from backup", "path", path, "backup", backupPath)
}
