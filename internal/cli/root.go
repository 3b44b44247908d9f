package cli

import (
	"fmt"

	"github.com/alexanderramin/tidsplan/internal/app"
	"github.com/spf13/cobra"
)

// App is what every command runs against.
type App struct {
	Ctx *app.Context
	// IsInteractive reports whether stdin is a terminal. Prompts and the
	// board TUI only run when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "tidsplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tidsplan",
		Short:         "Gantt planning for tasks, checklists and workload",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.Ctx.StartupNotices(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			for _, t := range a.Ctx.Toasts.Drain() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", t.Level, t.Message)
			}
		},
	}

	root.AddCommand(
		newTaskCmd(a),
		newSubtaskCmd(a),
		newCommentCmd(a),
		newBoardCmd(a),
		newDashboardCmd(a),
		newWorkloadCmd(a),
		newTimelineCmd(a),
		newViewCmd(a),
		newQuickCmd(a),
		newSettingsCmd(a),
		newDigestCmd(a),
		newServeCmd(a),
	)

	return root
}
