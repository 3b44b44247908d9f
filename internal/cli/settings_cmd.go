package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/cli/formatter"
	"github.com/alexanderramin/tidsplan/internal/service"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change your preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.Ctx.Settings.Preferences(cmd.Context(), a.Ctx.User())
			if err != nil {
				return err
			}
			cfg := a.Ctx.Config
			rows := [][]string{
				{"user", a.Ctx.User()},
				{"store", cfg.Store},
				{"theme", p.Theme},
				{"dashboard", onOff(p.DashboardOpen)},
				{"warning days", fmt.Sprint(cfg.WarningDays)},
				{"dismissed", formatter.OrDash(strings.Join(p.DismissedWarnings, ", "))},
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"SETTING", "VALUE"}, rows))
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:       "theme <name>",
			Short:     "Choose the color theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: service.Themes,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.Ctx.Settings.SetTheme(cmd.Context(), a.Ctx.User(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:       "dashboard <on|off>",
			Short:     "Open or collapse the dashboard panel",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"on", "off"},
			RunE: func(cmd *cobra.Command, args []string) error {
				var open bool
				switch args[0] {
				case "on":
					open = true
				case "off":
				default:
					return fmt.Errorf("expected on or off, got %q", args[0])
				}
				if err := a.Ctx.Settings.SetDashboardOpen(cmd.Context(), a.Ctx.User(), open); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dashboard %s\n", onOff(open))
				return nil
			},
		},
		&cobra.Command{
			Use:   "dismiss <warning>",
			Short: "Stop showing a startup notice",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.Ctx.Settings.DismissWarning(cmd.Context(), a.Ctx.User(), args[0])
			},
		},
		&cobra.Command{
			Use:   "reset-warnings",
			Short: "Show every dismissed notice again",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.Ctx.Settings.ResetWarnings(cmd.Context(), a.Ctx.User())
			},
		},
	)

	return cmd
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
