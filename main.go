// ccnotify - completion notification hooks for Claude Code
//
// ccnotify installs Stop hooks that notify you when Claude Code
// finishes responding, over one of three channels:
//
//	ccnotify discord https://discord.com/api/webhooks/<id>/<token>
//	ccnotify ntfy my-topic
//	ccnotify macos "Claude Code"
//
// Each command writes a generated bash script to the data directory
// and registers it in .claude/settings.json (use --global for
// ~/.claude/settings.json). The settings file is backed up before
// every write.
package main

import (
	"fmt"
	"os"

	"github.com/foxytanuki/ccnotify/cmd"
	"github.com/foxytanuki/ccnotify/internal/errs"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errs.Format(err))
		os.Exit(errs.ExitCode(err))
	}
}
