package cmd

import (
	"github.com/foxytanuki/ccnotify/internal/config"
	"github.com/foxytanuki/ccnotify/internal/history"
	"github.com/foxytanuki/ccnotify/internal/logger"
	"github.com/foxytanuki/ccnotify/internal/script"
	"github.com/foxytanuki/ccnotify/internal/settings"
	"github.com/spf13/cobra"
)

// newGenerator builds the script generator from tool configuration.
func newGenerator() (*script.Generator, error) {
	cfg := config.Get()
	dataDir, err := config.GetDataDir()
	if err != nil {
		return nil, err
	}
	return &script.Generator{
		NtfyServer:   cfg.Ntfy.Server,
		TimeoutSec:   cfg.Notify.TimeoutSec,
		DefaultTitle: cfg.MacOS.DefaultTitle,
		ScriptsDir:   script.DefaultScriptsDir(cfg.Scripts.Dir, dataDir),
	}, nil
}

// installHook runs the shared pipeline for every channel command:
// write the generated script, then load → merge → backup → save the
// settings document, then record the install in the history log.
func installHook(cmd *cobra.Command, gen *script.Generator, channel string, h script.Hook) error {
	scriptPath, err := gen.Install(h)
	if err != nil {
		return err
	}

	settingsPath, err := settings.ConfigPath(global)
	if err != nil {
		return err
	}

	doc, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}

	update := settings.StopUpdate(settings.CommandEntry(h.Matcher, scriptPath))
	merged := settings.Merge(doc, update)

	store := settings.NewStore(config.Get().Backup.KeepAll)
	if err := store.Save(settingsPath, merged); err != nil {
		return err
	}

	recordInstall(channel, h.Matcher, settingsPath, scriptPath)

	scope := "local"
	if global {
		scope = "global"
	}
	cmd.Printf("Installed %s hook (%s)\n", channel, scope)
	cmd.Printf("  script:   %s\n", scriptPath)
	cmd.Printf("  settings: %s\n", settingsPath)
	return nil
}

// recordInstall appends to the history log. Best effort: a history
// failure never fails an install that already succeeded.
func recordInstall(channel, matcher, settingsPath, scriptPath string) {
	log, err := history.Default()
	if err != nil {
		logger.Warn("failed to resolve history log", "error", err)
		return
	}

	scope := "local"
	if global {
		scope = "global"
	}
	entry := history.Entry{
		Channel:      channel,
		Matcher:      matcher,
		Scope:        scope,
		SettingsPath: settingsPath,
		ScriptPath:   scriptPath,
	}
	if err := log.Append(entry); err != nil {
		logger.Warn("failed to record install history", "error", err)
	}
}
