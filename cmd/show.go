package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/foxytanuki/ccnotify/internal/settings"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current Claude Code settings",
	Long: `Show displays the settings.json document ccnotify would modify,
for the scope selected by --global.

This is useful for:
- Checking which notification hooks are currently installed
- Verifying that a settings file parses and validates
- Seeing the exact file a channel command will write to`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	path, err := settings.ConfigPath(global)
	if err != nil {
		return err
	}

	doc, err := settings.Load(path)
	if err != nil {
		return err
	}

	cmd.Printf("Settings file: %s\n", path)
	if len(doc) == 0 {
		cmd.Println("(no settings file yet)")
		return nil
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
