// Package cmd implements the CLI commands for ccnotify.
package cmd

import (
	"github.com/foxytanuki/ccnotify/internal/config"
	"github.com/foxytanuki/ccnotify/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	global  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ccnotify",
	Short: "Install completion notification hooks for Claude Code",
	Long: `ccnotify registers Stop hooks in Claude Code's settings.json that fire
a notification when Claude finishes responding.

Supported channels:
  discord   post to a Discord webhook
  ntfy      publish to an ntfy topic
  macos     show a native macOS notification

Each command generates a small bash script embedding your value, writes
it to the ccnotify data directory, and merges a hook entry into
.claude/settings.json (or ~/.claude/settings.json with --global). The
settings file is backed up before every write, and reinstalling a
channel updates its entry instead of duplicating it.`,
	// Errors are formatted with exit-code mapping in main
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize before running any command
	cobra.OnInitialize(initApp)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVarP(&global, "global", "g", false, "Target ~/.claude/settings.json instead of ./.claude/settings.json")
}

// initApp initializes the application (logger, config)
func initApp() {
	logger.Init(logger.Options{Verbose: verbose})
	config.Init()
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

// IsGlobal returns whether the global scope flag is set
func IsGlobal() bool {
	return global
}
