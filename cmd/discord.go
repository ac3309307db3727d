package cmd

import (
	"github.com/foxytanuki/ccnotify/internal/validate"
	"github.com/spf13/cobra"
)

var discordCmd = &cobra.Command{
	Use:   "discord <webhook-url>",
	Short: "Install a Discord notification hook",
	Long: `Install a Stop hook that posts a completion notice to a Discord webhook.

The webhook URL must be a plain Discord webhook
(https://discord.com/api/webhooks/<id>/<token>) with no extra path
segments or query string. Running the command again with a different
URL updates the existing hook in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscord,
}

func init() {
	rootCmd.AddCommand(discordCmd)
}

func runDiscord(cmd *cobra.Command, args []string) error {
	url, err := validate.WebhookURL(args[0])
	if err != nil {
		return err
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}

	return installHook(cmd, gen, "discord", gen.Discord(url))
}
