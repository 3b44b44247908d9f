package cli

import (
	"fmt"

	"github.com/alexanderramin/tidsplan/internal/cli/formatter"
	"github.com/alexanderramin/tidsplan/internal/notify"
	"github.com/spf13/cobra"
)

func newDigestCmd(a *App) *cobra.Command {
	var send bool

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Show today's deadline digest, optionally posting it to Slack",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user := a.Ctx.User()
			tasks, err := a.Ctx.Tasks.List(ctx, user)
			if err != nil {
				return err
			}
			d := notify.BuildDigest(user, tasks, a.Ctx.Today(), a.Ctx.Config.WarningDays)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDigest(d))
			if !send {
				return nil
			}

			n, err := notify.NewSlackNotifier(a.Ctx.Config.SlackWebhookURL, a.Ctx.Logger)
			if err != nil {
				return fmt.Errorf("--send needs slack_webhook_url: %w", err)
			}
			sent, err := n.SendDigest(ctx, d)
			if err != nil {
				return err
			}
			if sent {
				fmt.Fprintln(cmd.OutOrStdout(), "Posted to Slack.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&send, "send", false, "Post the digest to the configured Slack webhook")
	return cmd
}
