package cmd

import (
	"github.com/foxytanuki/ccnotify/internal/validate"
	"github.com/spf13/cobra"
)

var ntfyCmd = &cobra.Command{
	Use:   "ntfy <topic>",
	Short: "Install an ntfy notification hook",
	Long: `Install a Stop hook that publishes a completion notice to an ntfy topic.

Topic names are 1-64 characters of letters, digits, '-' or '_', and
may not start or end with a separator. The ntfy server defaults to
https://ntfy.sh and can be changed in config.toml.`,
	Args: cobra.ExactArgs(1),
	RunE: runNtfy,
}

func init() {
	rootCmd.AddCommand(ntfyCmd)
}

func runNtfy(cmd *cobra.Command, args []string) error {
	topic, err := validate.TopicName(args[0])
	if err != nil {
		return err
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}

	return installHook(cmd, gen, "ntfy", gen.Ntfy(topic))
}
