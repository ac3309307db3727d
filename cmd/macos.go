package cmd

import (
	"github.com/foxytanuki/ccnotify/internal/validate"
	"github.com/spf13/cobra"
)

var macosCmd = &cobra.Command{
	Use:   "macos [title]",
	Short: "Install a macOS desktop notification hook",
	Long: `Install a Stop hook that shows a native macOS notification via
osascript when Claude finishes responding.

The optional title argument sets the notification title; when omitted,
the default_title from config.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMacOS,
}

func init() {
	rootCmd.AddCommand(macosCmd)
}

func runMacOS(cmd *cobra.Command, args []string) error {
	var title string
	if len(args) > 0 {
		title = validate.Sanitize(args[0])
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}

	return installHook(cmd, gen, "macos", gen.MacOS(title))
}
