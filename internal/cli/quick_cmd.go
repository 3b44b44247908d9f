package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newQuickCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quick",
		Aliases: []string{"q"},
		Short:   "Scratchpad of quick to-dos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printQuick(cmd, a)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <text...>",
			Short: "Add an item",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				item, err := a.Ctx.Quick.Add(cmd.Context(), a.Ctx.User(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added [%s] %s\n", formatter.ShortID(item.ID), item.Text)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List items",
			RunE: func(cmd *cobra.Command, args []string) error {
				return printQuick(cmd, a)
			},
		},
		&cobra.Command{
			Use:   "done <id>",
			Short: "Toggle an item done",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := resolveQuickID(cmd, a, args[0])
				if err != nil {
					return err
				}
				item, err := a.Ctx.Quick.Toggle(cmd.Context(), a.Ctx.User(), id)
				if err != nil {
					return err
				}
				state := "open"
				if item.Done {
					state = "done"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", item.Text, state)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Remove an item",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := resolveQuickID(cmd, a, args[0])
				if err != nil {
					return err
				}
				if err := a.Ctx.Quick.Remove(cmd.Context(), a.Ctx.User(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", formatter.ShortID(id))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every done item",
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := a.Ctx.Quick.ClearDone(cmd.Context(), a.Ctx.User())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d item(s)\n", n)
				return nil
			},
		},
	)

	return cmd
}

func printQuick(cmd *cobra.Command, a *App) error {
	items, err := a.Ctx.Quick.List(cmd.Context(), a.Ctx.User())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuickList(items))
	return nil
}

func resolveQuickID(cmd *cobra.Command, a *App, input string) (string, error) {
	items, err := a.Ctx.Quick.List(cmd.Context(), a.Ctx.User())
	if err != nil {
		return "", err
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	id, err := matchID(ids, input)
	if err != nil {
		return "", fmt.Errorf("quick item %w", err)
	}
	return id, nil
}

