package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/tidsplan/internal/cli/formatter"
	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/pipeline"
	"github.com/spf13/cobra"
)

func newTaskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskListCmd(a),
		newTaskShowCmd(a),
		newTaskUpdateCmd(a),
		newTaskDoneCmd(a),
		newTaskShiftCmd(a),
		newTaskRemoveCmd(a),
		newTaskTrashCmd(a),
		newTaskRestoreCmd(a),
		newTaskPurgeCmd(a),
	)

	return cmd
}

// taskFields are the editable task flags shared by add and update.
type taskFields struct {
	title, client, phase string
	start, end, status   string
	tags                 []string
	roles                map[domain.Role]*string
}

func bindTaskFields(cmd *cobra.Command, f *taskFields) {
	cmd.Flags().StringVar(&f.title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.client, "client", "", "Client name")
	cmd.Flags().StringVar(&f.phase, "phase", "", "Phase the task belongs to")
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.status, "status", "", "Status: planned, in-progress or done")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable or comma-separated)")

	f.roles = make(map[domain.Role]*string, len(domain.TaskFieldRoles))
	for _, r := range domain.TaskFieldRoles {
		f.roles[r] = new(string)
		cmd.Flags().StringVar(f.roles[r], string(r), "", r.Label())
	}
}

func (f *taskFields) apply(t *domain.Task) {
	t.Title, t.Client, t.Phase = f.title, f.client, f.phase
	t.StartDate, t.EndDate = f.start, f.end
	t.Status = domain.Status(f.status)
	t.Tags = f.tags
	t.Assignee = *f.roles[domain.RoleAssignee]
	t.CAD = *f.roles[domain.RoleCAD]
	t.Reviewer = *f.roles[domain.RoleReviewer]
	t.Agent = *f.roles[domain.RoleAgent]
	t.BE = *f.roles[domain.RoleBE]
	t.PL = *f.roles[domain.RolePL]
}

// patch holds only the flags the user set.
func (f *taskFields) patch(cmd *cobra.Command) domain.TaskPatch {
	var p domain.TaskPatch
	set := func(name string, v string, dst **string) {
		if cmd.Flags().Changed(name) {
			*dst = domain.Ptr(v)
		}
	}
	set("title", f.title, &p.Title)
	set("client", f.client, &p.Client)
	set("phase", f.phase, &p.Phase)
	set("start", f.start, &p.StartDate)
	set("end", f.end, &p.EndDate)
	set(string(domain.RoleAssignee), *f.roles[domain.RoleAssignee], &p.Assignee)
	set(string(domain.RoleCAD), *f.roles[domain.RoleCAD], &p.CAD)
	set(string(domain.RoleReviewer), *f.roles[domain.RoleReviewer], &p.Reviewer)
	set(string(domain.RoleAgent), *f.roles[domain.RoleAgent], &p.Agent)
	set(string(domain.RoleBE), *f.roles[domain.RoleBE], &p.BE)
	set(string(domain.RolePL), *f.roles[domain.RolePL], &p.PL)
	if cmd.Flags().Changed("status") {
		p.Status = domain.Ptr(domain.Status(f.status))
	}
	if cmd.Flags().Changed("tag") {
		p.Tags = domain.Ptr(f.tags)
	}
	return p
}

func newTaskAddCmd(a *App) *cobra.Command {
	var f taskFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var t domain.Task
			f.apply(&t)

			if t.Title == "" {
				if !a.interactive() {
					return fmt.Errorf("--title is required")
				}
				tasks, err := a.Ctx.Tasks.List(ctx, a.Ctx.User())
				if err != nil {
					return err
				}
				facets := pipeline.CollectFacets(tasks)
				d := taskDraft{Client: f.client, Phase: f.phase, Start: f.start, End: f.end, Status: f.status}
				if err := taskForm(&d, facets.Clients, facets.Phases).RunWithContext(ctx); err != nil {
					return err
				}
				roles := t
				t = d.task()
				t.Assignee, t.CAD, t.Reviewer = roles.Assignee, roles.CAD, roles.Reviewer
				t.Agent, t.BE, t.PL = roles.Agent, roles.BE, roles.PL
				if len(f.tags) > 0 {
					t.Tags = f.tags
				}
			}

			created, err := a.Ctx.Tasks.Create(ctx, a.Ctx.User(), t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s [%s]\n", created.Title, formatter.ShortID(created.ID))
			return nil
		},
	}

	bindTaskFields(cmd, &f)
	return cmd
}

func newTaskListCmd(a *App) *cobra.Command {
	var flags boardFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks grouped by phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, a, &flags)
		},
	}

	flags.bind(cmd)
	return cmd
}

func newTaskShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task with its checklist and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, a, args[0], false)
			if err != nil {
				return err
			}
			t, err := a.Ctx.Tasks.Get(ctx, a.Ctx.User(), id)
			if err != nil {
				return err
			}
			md, err := formatter.NewMarkdown(markdownStyle(cmd, a), 80)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskDetail(t, a.Ctx.Config.WarningDays, a.Ctx.Today(), md))
			return nil
		},
	}
}

// markdownStyle follows the saved theme on a terminal and stays plain
// otherwise.
func markdownStyle(cmd *cobra.Command, a *App) string {
	if !a.interactive() {
		return "notty"
	}
	prefs, err := a.Ctx.Settings.Preferences(cmd.Context(), a.Ctx.User())
	if err != nil || prefs.Theme == "" {
		return "dark"
	}
	return prefs.Theme
}

func newTaskUpdateCmd(a *App) *cobra.Command {
	var f taskFields

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, a, args[0], false)
			if err != nil {
				return err
			}
			p := f.patch(cmd)
			if p.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}
			t, err := a.Ctx.Tasks.Update(ctx, a.Ctx.User(), id, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s [%s]\n", t.Title, formatter.ShortID(t.ID))
			return nil
		},
	}

	bindTaskFields(cmd, &f)
	return cmd
}

func newTaskDoneCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, a, args[0], false)
			if err != nil {
				return err
			}
			t, err := a.Ctx.Tasks.Update(ctx, a.Ctx.User(), id, domain.TaskPatch{Status: domain.Ptr(domain.StatusDone)})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", t.Title)
			return nil
		},
	}
}

func newTaskShiftCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shift <id> <days>",
		Short: "Move a task's dates by a number of days",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			days, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid day count %q", args[1])
			}
			id, err := resolveTaskID(ctx, a, args[0], false)
			if err != nil {
				return err
			}
			t, err := a.Ctx.Tasks.Shift(ctx, a.Ctx.User(), id, days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", t.Title, formatter.DateRange(t.StartDate, t.EndDate))
			return nil
		},
	}
}

func newTaskRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Move a task to the trash",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, a, args[0], false)
			if err != nil {
				return err
			}
			if err := a.Ctx.Tasks.Delete(ctx, a.Ctx.User(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to trash\n", formatter.ShortID(id))
			return nil
		},
	}
}

func newTaskTrashCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trash",
		Short: "List tasks in the trash",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.Ctx.Tasks.Trash(cmd.Context(), a.Ctx.User())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrash(tasks))
			return nil
		},
	}
}

func newTaskRestoreCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Bring a task back from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, a, args[0], true)
			if err != nil {
				return err
			}
			if err := a.Ctx.Tasks.Restore(ctx, a.Ctx.User(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", formatter.ShortID(id))
			return nil
		},
	}
}

func newTaskPurgeCmd(a *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "purge <id>",
		Short: "Permanently delete a task from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, a, args[0], true)
			if err != nil {
				return err
			}
			if !force {
				if !a.interactive() {
					return fmt.Errorf("refusing to purge without --force")
				}
				var ok bool
				if err := confirmForm("Radera uppgiften för alltid?", &ok).RunWithContext(ctx); err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			if err := a.Ctx.Tasks.Purge(ctx, a.Ctx.User(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %s\n", formatter.ShortID(id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return cmd
}
