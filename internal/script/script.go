// Package script generates the notification hook scripts and their
// settings.json hook descriptors.
//
// Each generator embeds the validated user value into a literal bash
// script. The script's runtime contract belongs to Claude Code: it
// receives the Stop hook JSON on stdin, follows transcript_path to the
// NDJSON transcript, and posts the latest assistant and user messages
// to the channel. ccnotify never executes these scripts; it only
// guarantees the text parses as bash before installing it.
package script

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/foxytanuki/ccnotify/internal/constants"
	"github.com/foxytanuki/ccnotify/internal/errs"
	"github.com/foxytanuki/ccnotify/internal/fileutil"
	"github.com/foxytanuki/ccnotify/internal/logger"
	"mvdan.cc/sh/v3/syntax"
)

// Matchers are the fixed per-channel identifiers used as merge keys in
// settings.json, making repeated installs idempotent per channel.
const (
	MatcherDiscord = "discord-notification"
	MatcherNtfy    = "ntfy-notification"
	MatcherMacOS   = "macos-notification"
)

// Truncation limits baked into the generated scripts, per channel field.
const (
	discordTitleLimit = 200
	discordDescLimit  = 1800
	ntfyTitleLimit    = 256
	ntfyBodyLimit     = 1000
	macosMessageLimit = 500
)

// Hook is a generated hook: the settings.json matcher, the script file
// name, and the literal script text.
type Hook struct {
	Matcher string
	Name    string
	Script  string
}

// Generator builds channel hooks from tool configuration.
type Generator struct {
	// NtfyServer is the base URL ntfy scripts publish to, no trailing slash.
	NtfyServer string
	// TimeoutSec is the curl --max-time baked into scripts.
	TimeoutSec int
	// DefaultTitle is the macOS notification title when none is given.
	DefaultTitle string
	// ScriptsDir is where Install writes script files.
	ScriptsDir string
}

// Discord generates the Discord webhook hook for a validated URL.
func (g *Generator) Discord(webhookURL string) Hook {
	script := fmt.Sprintf(`#!/bin/bash
# Generated by ccnotify. Posts a Claude Code completion notice to Discord.
set -u

%s
TITLE=$(printf '%%s' "$USER_MESSAGE" | head -c %d)
DESCRIPTION=$(printf '%%s' "$LATEST_MESSAGE" | head -c %d)

PAYLOAD=$(jq -n --arg title "$TITLE" --arg desc "$DESCRIPTION" \
  '{embeds: [{title: $title, description: $desc, color: 5793266}]}')

curl -s -X POST -H 'Content-Type: application/json' \
  -d "$PAYLOAD" --max-time %d \
  '%s' > /dev/null 2>&1

exit 0
`, transcriptSection(), discordTitleLimit, discordDescLimit, g.TimeoutSec, webhookURL)

	return Hook{Matcher: MatcherDiscord, Name: "discord-notification.sh", Script: script}
}

// Ntfy generates the ntfy publish hook for a validated topic.
func (g *Generator) Ntfy(topic string) Hook {
	script := fmt.Sprintf(`#!/bin/bash
# Generated by ccnotify. Publishes a Claude Code completion notice to ntfy.
set -u

%s
TITLE=$(printf '%%s' "$USER_MESSAGE" | head -c %d | tr '\n' ' ')
BODY=$(printf '%%s' "$LATEST_MESSAGE" | head -c %d)

curl -s -X POST --max-time %d \
  -H "Title: $TITLE" \
  -d "$BODY" \
  '%s/%s' > /dev/null 2>&1

exit 0
`, transcriptSection(), ntfyTitleLimit, ntfyBodyLimit, g.TimeoutSec, g.NtfyServer, topic)

	return Hook{Matcher: MatcherNtfy, Name: "ntfy-notification.sh", Script: script}
}

// MacOS generates the desktop notification hook. An empty title falls
// back to the configured default.
func (g *Generator) MacOS(title string) Hook {
	if title == "" {
		title = g.DefaultTitle
	}
	title = escapeOsascript(title)

	script := fmt.Sprintf(`#!/bin/bash
# Generated by ccnotify. Shows a Claude Code completion notice via osascript.
set -u

%s
MESSAGE=$(printf '%%s' "$LATEST_MESSAGE" | head -c %d)
MESSAGE=${MESSAGE//\\/\\\\}
MESSAGE=${MESSAGE//\"/\\\"}

osascript -e "display notification \"$MESSAGE\" with title \"%s\"" > /dev/null 2>&1

exit 0
`, transcriptSection(), macosMessageLimit, title)

	return Hook{Matcher: MatcherMacOS, Name: "macos-notification.sh", Script: script}
}

// transcriptSection is the shared preamble: read the hook JSON from
// stdin and pull the latest assistant and user messages out of the
// NDJSON transcript. Extraction is best effort; a notification still
// fires with fallback text when the transcript is unreadable.
func transcriptSection() string {
	return `INPUT=$(cat)
TRANSCRIPT_PATH=$(printf '%s' "$INPUT" | jq -r '.transcript_path // empty')

LATEST_MESSAGE=""
USER_MESSAGE=""
if [ -n "$TRANSCRIPT_PATH" ] && [ -f "$TRANSCRIPT_PATH" ]; then
  LATEST_MESSAGE=$(jq -rs '[.[] | select(.type == "assistant")] | last
    | .message.content // [] | map(select(.type == "text") | .text) | join("\n")' \
    "$TRANSCRIPT_PATH" 2> /dev/null)
  USER_MESSAGE=$(jq -rs '[.[] | select(.type == "user")] | last
    | .message.content
    | if type == "string" then . else (map(select(.type == "text") | .text) | join("\n")) end' \
    "$TRANSCRIPT_PATH" 2> /dev/null)
fi
[ -n "$LATEST_MESSAGE" ] || LATEST_MESSAGE="Task completed."
[ -n "$USER_MESSAGE" ] || USER_MESSAGE="Claude Code"
`
}

// escapeOsascript escapes a title for embedding in the generated
// script. The title lands inside an AppleScript string literal that is
// itself inside a bash double-quoted string, so it needs both layers:
// AppleScript escaping first, then bash escaping of that result. A
// plain double quote ends up as \\\" in the script source.
func escapeOsascript(s string) string {
	// AppleScript string literal layer.
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	// Bash double-quote layer. $ and backtick would otherwise expand
	// inside the osascript -e argument.
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `$`, `\$`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return s
}

// Check parses the script text as bash and rejects anything the shell
// would choke on. Catches template bugs before they reach disk.
func Check(h Hook) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(strings.NewReader(h.Script), h.Name); err != nil {
		return errs.New(errs.KindScriptCreation, "check script",
			fmt.Sprintf("generated %s does not parse as bash: %v", h.Name, err))
	}
	return nil
}

// Install syntax-checks the hook, writes its script executable under
// ScriptsDir, and returns the absolute command path for settings.json.
func (g *Generator) Install(h Hook) (string, error) {
	if err := Check(h); err != nil {
		return "", err
	}

	if err := fileutil.EnsureDir(g.ScriptsDir); err != nil {
		return "", err
	}

	path := filepath.Join(g.ScriptsDir, h.Name)
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errs.Wrap(errs.KindScriptCreation, "resolve script path", path, err)
	}

	if err := fileutil.WriteScript(abs, h.Script); err != nil {
		return "", err
	}

	logger.Debug("installed script", "path", abs, "matcher", h.Matcher)
	return abs, nil
}

// DefaultScriptsDir resolves the scripts directory from the configured
// override, falling back to <data dir>/scripts.
func DefaultScriptsDir(configured string, dataDir string) string {
	if configured != "" {
		return configured
	}
	return filepath.Join(dataDir, constants.ScriptsSubdir)
}
