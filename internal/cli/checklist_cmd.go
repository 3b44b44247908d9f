package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/cli/formatter"
	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/spf13/cobra"
)

func newSubtaskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sub",
		Aliases: []string{"checklist"},
		Short:   "Manage a task's checklist",
	}

	cmd.AddCommand(
		newSubtaskAddCmd(a),
		newSubtaskEditCmd(a, "done", "Toggle a checklist item done", "Toggled",
			func(ctx context.Context, owner, task, sub string) (domain.Task, error) {
				return a.Ctx.Tasks.ToggleSubtask(ctx, owner, task, sub)
			}),
		newSubtaskEditCmd(a, "archive", "Archive a checklist item", "Archived",
			func(ctx context.Context, owner, task, sub string) (domain.Task, error) {
				return a.Ctx.Tasks.ArchiveSubtask(ctx, owner, task, sub)
			}),
		newSubtaskEditCmd(a, "rm", "Remove a checklist item", "Removed",
			func(ctx context.Context, owner, task, sub string) (domain.Task, error) {
				return a.Ctx.Tasks.RemoveSubtask(ctx, owner, task, sub)
			}),
	)

	return cmd
}

func newSubtaskAddCmd(a *App) *cobra.Command {
	var s domain.Subtask
	var priority string

	cmd := &cobra.Command{
		Use:   "add <task> <text...>",
		Short: "Add a checklist item to a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, a, args[0], false)
			if err != nil {
				return err
			}
			s.Text = strings.Join(args[1:], " ")
			s.Priority = domain.Priority(priority)
			t, err := a.Ctx.Tasks.AddSubtask(ctx, a.Ctx.User(), id, s)
			if err != nil {
				return err
			}
			added := t.Checklist[len(t.Checklist)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q [%s] to %s\n", added.Text, formatter.ShortID(added.ID), t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&s.Executor, "executor", "", "Who handles the item")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: high, normal or low")
	cmd.Flags().StringVar(&s.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&s.EndDate, "end", "", "End date (YYYY-MM-DD)")
	return cmd
}

type subtaskEdit func(ctx context.Context, owner, taskID, subtaskID string) (domain.Task, error)

func newSubtaskEditCmd(a *App, use, short, verb string, edit subtaskEdit) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task> <item>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTask(ctx, a, args[0])
			if err != nil {
				return err
			}
			sid, err := resolveSubtaskID(t, args[1])
			if err != nil {
				return err
			}
			if _, err := edit(ctx, a.Ctx.User(), t.ID, sid); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", verb, formatter.ShortID(sid), t.Title)
			return nil
		},
	}
}

func resolveTask(ctx context.Context, a *App, input string) (domain.Task, error) {
	id, err := resolveTaskID(ctx, a, input, false)
	if err != nil {
		return domain.Task{}, err
	}
	return a.Ctx.Tasks.Get(ctx, a.Ctx.User(), id)
}

func newCommentCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment on tasks",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <task> <text...>",
			Short: "Add a comment (markdown)",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				id, err := resolveTaskID(ctx, a, args[0], false)
				if err != nil {
					return err
				}
				user := a.Ctx.User()
				t, err := a.Ctx.Tasks.AddComment(ctx, user, id, user, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				c := t.Comments[len(t.Comments)-1]
				fmt.Fprintf(cmd.OutOrStdout(), "Commented on %s [%s]\n", t.Title, formatter.ShortID(c.ID))
				return nil
			},
		},
		&cobra.Command{
			Use:   "edit <task> <comment> <text...>",
			Short: "Replace the text of a comment",
			Args:  cobra.MinimumNArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				t, err := resolveTask(ctx, a, args[0])
				if err != nil {
					return err
				}
				cid, err := resolveCommentID(t, args[1])
				if err != nil {
					return err
				}
				if _, err := a.Ctx.Tasks.EditComment(ctx, a.Ctx.User(), t.ID, cid, strings.Join(args[2:], " ")); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Edited comment %s\n", formatter.ShortID(cid))
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <task> <comment>",
			Short: "Delete a comment",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				t, err := resolveTask(ctx, a, args[0])
				if err != nil {
					return err
				}
				cid, err := resolveCommentID(t, args[1])
				if err != nil {
					return err
				}
				if _, err := a.Ctx.Tasks.DeleteComment(ctx, a.Ctx.User(), t.ID, cid); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %s\n", formatter.ShortID(cid))
				return nil
			},
		},
	)

	return cmd
}
