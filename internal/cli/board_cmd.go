package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/app"
	"github.com/alexanderramin/tidsplan/internal/calendar"
	"github.com/alexanderramin/tidsplan/internal/cli/formatter"
	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// roleList is a repeatable --role flag that accepts role keys or labels.
type roleList []domain.Role

var _ pflag.Value = (*roleList)(nil)

func (r *roleList) String() string {
	parts := make([]string, len(*r))
	for i, role := range *r {
		parts[i] = string(role)
	}
	return strings.Join(parts, ",")
}

func (r *roleList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		role, ok := domain.ParseRole(strings.TrimSpace(part))
		if !ok {
			return fmt.Errorf("unknown role %q", part)
		}
		*r = append(*r, role)
	}
	return nil
}

func (r *roleList) Type() string { return "role" }

// boardFlags are the filter, sort and zoom flags shared by every command
// that shows the board.
type boardFlags struct {
	view     string
	search   string
	client   string
	phase    string
	status   string
	roles    roleList
	tags     []string
	sort     string
	zoom     string
	mine     bool
	warnDays int
}

func (f *boardFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.view, "view", "", "Start from a saved view")
	fs.StringVarP(&f.search, "search", "s", "", "Free-text search")
	fs.StringVar(&f.client, "client", "", "Only this client")
	fs.StringVar(&f.phase, "phase", "", "Only this phase")
	fs.StringVar(&f.status, "status", "", "Only this status (overdue included)")
	fs.Var(&f.roles, "role", "Only tasks with this role filled (repeatable)")
	fs.StringSliceVar(&f.tags, "tag", nil, "Only tasks with any of these tags")
	fs.StringVar(&f.sort, "sort", "", "Sort by startDate, endDate or title")
	fs.StringVar(&f.zoom, "zoom", "", "Timeline zoom: day, week or month")
	fs.BoolVar(&f.mine, "mine", false, "Only tasks assigned to me")
	fs.IntVar(&f.warnDays, "warning-days", 0, "Deadline warning window in days")
}

// state folds the flags into board state the same way the interactive
// board applies key presses. Flags the user left alone keep the saved
// view's values.
func (f *boardFlags) state(cmd *cobra.Command, a *App) (app.State, error) {
	s := app.DefaultState()
	s = app.Reduce(s, app.SetThreshold{Days: a.Ctx.Config.WarningDays})

	if f.view != "" {
		v, err := a.Ctx.Views.Get(cmd.Context(), a.Ctx.User(), f.view)
		if err != nil {
			return s, fmt.Errorf("view %q: %w", f.view, err)
		}
		s = app.Reduce(s, app.ApplyView{View: v})
	}

	changed := cmd.Flags().Changed
	var intents []app.Intent
	if changed("search") {
		intents = append(intents, app.SetSearch{Term: f.search})
	}
	if changed("client") {
		intents = append(intents, app.SetClient{Client: f.client})
	}
	if changed("phase") {
		intents = append(intents, app.SetPhase{Phase: f.phase})
	}
	if changed("status") {
		intents = append(intents, app.SetStatus{Status: domain.Status(f.status)})
	}
	for _, r := range f.roles {
		intents = append(intents, app.ToggleRole{Role: r})
	}
	for _, t := range f.tags {
		intents = append(intents, app.ToggleTag{Tag: t})
	}
	if changed("sort") {
		intents = append(intents, app.SetSort{Key: domain.SortKey(f.sort)})
	}
	if changed("zoom") {
		intents = append(intents, app.SetZoom{Zoom: domain.Zoom(f.zoom)})
	}
	if changed("mine") {
		intents = append(intents, app.SetOnlyMine{On: f.mine})
	}
	if changed("warning-days") {
		intents = append(intents, app.SetThreshold{Days: f.warnDays})
	}
	for _, in := range intents {
		s = app.Reduce(s, in)
	}
	return s, nil
}

func runBoard(cmd *cobra.Command, a *App, f *boardFlags) error {
	s, err := f.state(cmd, a)
	if err != nil {
		return err
	}
	today := a.Ctx.Today()
	b, err := a.Ctx.Board.Board(cmd.Context(), a.Ctx.User(), s.Options(a.Ctx.Config.Tokens(), today))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if n := s.Filters.ActiveCount(); n > 0 || s.Filters.Search != "" || s.OnlyMine {
		fmt.Fprintln(out, formatter.Dim("Filter: "+formatter.FilterSummary(s.Filters, s.OnlyMine)))
	}
	fmt.Fprint(out, formatter.FormatBoard(b.Groups, b.Total, b.Shown, s.WarningDays, today))
	return nil
}

func newBoardCmd(a *App) *cobra.Command {
	var flags boardFlags
	var interactive bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the filtered task board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !a.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				s, err := flags.state(cmd, a)
				if err != nil {
					return err
				}
				return runBoardTUI(cmd.Context(), a, s)
			}
			return runBoard(cmd, a, &flags)
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the live board")
	return cmd
}

func newDashboardCmd(a *App) *cobra.Command {
	var warnDays int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline counts and upcoming deadlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("warning-days") {
				warnDays = a.Ctx.Config.WarningDays
			}
			sum, err := a.Ctx.Board.Dashboard(cmd.Context(), a.Ctx.User(), warnDays)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(sum))
			return nil
		},
	}

	cmd.Flags().IntVar(&warnDays, "warning-days", 0, "Deadline warning window in days")
	return cmd
}

func newWorkloadCmd(a *App) *cobra.Command {
	var roles roleList
	var person string
	var all bool

	cmd := &cobra.Command{
		Use:   "workload",
		Short: "Show per-person load for each role",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if person != "" {
				d, err := a.Ctx.Board.Drilldown(ctx, a.Ctx.User(), person)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatDrilldown(d.Person, d.Rows, d.Priority))
				return nil
			}
			var reports []metrics.WorkloadReport
			if all {
				rs, err := a.Ctx.Board.Workloads(ctx, a.Ctx.User(), a.Ctx.Config.WarningDays)
				if err != nil {
					return err
				}
				reports = rs
			} else {
				if len(roles) == 0 {
					roles = roleList{domain.RoleExecutor}
				}
				for _, r := range roles {
					report, err := a.Ctx.Board.Workload(ctx, a.Ctx.User(), r, a.Ctx.Config.WarningDays)
					if err != nil {
						return err
					}
					reports = append(reports, *report)
				}
			}
			for i, report := range reports {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, formatter.FormatWorkload(&report))
			}
			return nil
		},
	}

	cmd.Flags().Var(&roles, "role", "Role to report (repeatable, default executor)")
	cmd.Flags().StringVar(&person, "person", "", "List one person's active checklist items")
	cmd.Flags().BoolVar(&all, "all", false, "Report every role")
	cmd.MarkFlagsMutuallyExclusive("all", "role")
	return cmd
}

func newTimelineCmd(a *App) *cobra.Command {
	var flags boardFlags
	var from, to string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Draw the Gantt timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.state(cmd, a)
			if err != nil {
				return err
			}
			var start, end time.Time
			if from != "" || to != "" {
				var ok bool
				if start, ok = calendar.ParseISO(from); !ok {
					return fmt.Errorf("invalid --from %q", from)
				}
				if end, ok = calendar.ParseISO(to); !ok {
					return fmt.Errorf("invalid --to %q", to)
				}
			}
			chart, err := a.Ctx.Board.Timeline(cmd.Context(), a.Ctx.User(),
				s.Options(a.Ctx.Config.Tokens(), a.Ctx.Today()), s.Zoom, start, end)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(chart))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD), with --to")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD), with --from")
	return cmd
}
