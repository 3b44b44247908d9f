package cli

import (
	"time"

	"github.com/alexanderramin/tidsplan/internal/jobs"
	"github.com/alexanderramin/tidsplan/internal/notify"
	"github.com/alexanderramin/tidsplan/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *App) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := buildScheduler(a)
			if err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			return server.Start(cmd.Context(), server.StartOpts{
				App:  a.Ctx,
				Port: port,
				Out:  cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	return cmd
}

// buildScheduler registers the trash purge and, when a webhook is
// configured, the daily deadline digest.
func buildScheduler(a *App) (*jobs.Scheduler, error) {
	cfg := a.Ctx.Config
	sched := jobs.NewScheduler(a.Ctx.Logger)

	purge := jobs.PurgeTrash{
		Tasks:     a.Ctx.Tasks,
		Retention: time.Duration(cfg.TrashRetentionDays) * 24 * time.Hour,
		Log:       a.Ctx.Logger,
	}
	if err := sched.Add(jobs.PurgeSchedule, purge); err != nil {
		return nil, err
	}

	if cfg.SlackWebhookURL == "" {
		return sched, nil
	}
	n, err := notify.NewSlackNotifier(cfg.SlackWebhookURL, a.Ctx.Logger)
	if err != nil {
		return nil, err
	}
	digest := jobs.Digest{
		Tasks:       a.Ctx.Tasks,
		Notifier:    n,
		Owners:      []string{a.Ctx.User()},
		WarningDays: cfg.WarningDays,
		Clock:       a.Ctx.Clock,
	}
	if err := sched.Add(cfg.DigestSchedule, digest); err != nil {
		return nil, err
	}
	return sched, nil
}
