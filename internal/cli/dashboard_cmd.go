package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/aionboard/internal/cli/formatter"
)

func newDashboardCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show progress through your current plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Progress.Dashboard(cmd.Context(), app.UserID, app.now())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(d))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the dashboard as JSON")
	return cmd
}
