package cli

import (
	"fmt"

	"github.com/alexanderramin/tidsplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newViewCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Manage saved board views",
	}

	cmd.AddCommand(
		newViewSaveCmd(a),
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List saved views",
			RunE: func(cmd *cobra.Command, args []string) error {
				views, err := a.Ctx.Views.List(cmd.Context(), a.Ctx.User())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatViews(views))
				return nil
			},
		},
		newViewApplyCmd(a),
		&cobra.Command{
			Use:   "rm <name>",
			Short: "Delete a saved view",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.Ctx.Views.Delete(cmd.Context(), a.Ctx.User(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted view %q\n", args[0])
				return nil
			},
		},
	)

	return cmd
}

func newViewSaveCmd(a *App) *cobra.Command {
	var flags boardFlags

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the given filters as a named view",
		Long:  "Save the given filters as a named view. Saving under an existing name replaces that view.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.state(cmd, a)
			if err != nil {
				return err
			}
			v, err := a.Ctx.Views.Save(cmd.Context(), a.Ctx.User(), s.View(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved view %q\n", v.Name)
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}

func newViewApplyCmd(a *App) *cobra.Command {
	var flags boardFlags

	cmd := &cobra.Command{
		Use:   "apply <name>",
		Short: "Show the board through a saved view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.view = args[0]
			return runBoard(cmd, a, &flags)
		},
	}

	flags.bind(cmd)
	return cmd
}
