package cmd

import (
	"github.com/foxytanuki/ccnotify/internal/history"
	"github.com/spf13/cobra"
)

var logsLimit int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent hook install history",
	Long: `Logs prints the most recent entries from the install history log
(~/.local/share/ccnotify/history.log), newest last.

Rotated gzip segments are read transparently when the active log holds
fewer entries than requested.`,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 20, "Maximum number of entries to show")
}

func runLogs(cmd *cobra.Command, args []string) error {
	log, err := history.Default()
	if err != nil {
		return err
	}

	entries, err := log.Tail(logsLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		cmd.Println("No installs recorded yet.")
		return nil
	}

	for _, e := range entries {
		cmd.Printf("%s  %-8s %-7s %s\n", e.Timestamp, e.Channel, e.Scope, e.SettingsPath)
	}
	return nil
}
