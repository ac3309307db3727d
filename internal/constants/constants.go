// Package constants defines shared constants used across the ccnotify codebase.
package constants

import "os"

// File permissions
const (
	DirMode    os.FileMode = 0755
	FileMode   os.FileMode = 0644
	ScriptMode os.FileMode = 0755
)

// Environment variables
const (
	EnvConfigDir = "CCNOTIFY_CONFIG"
	EnvDataDir   = "CCNOTIFY_DATA"
)

// Application paths
const (
	AppName            = "ccnotify"
	XDGConfigSubdir    = ".config"
	ClaudeConfigDir    = ".claude"
	ClaudeSettingsFile = "settings.json"
	ConfigFileName     = "config.toml"
	HistoryFileName    = "history.log"
	ScriptsSubdir      = "scripts"
)

// StopEvent is the Claude Code hook event ccnotify registers under.
// Only this event's array gets merge-by-matcher treatment; any other
// event name in an update replaces the existing value wholesale.
const StopEvent = "Stop"
