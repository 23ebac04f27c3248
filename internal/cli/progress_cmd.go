package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/aionboard/internal/cli/formatter"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Record progress on plan activities",
	}

	cmd.AddCommand(
		newProgressDoneCmd(app),
		newProgressUndoCmd(app),
	)

	return cmd
}

func newProgressDoneCmd(app *App) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "done <activity-id>",
		Short: "Mark an activity complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Progress.Complete(cmd.Context(), app.UserID, args[0], note); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔ Completed"), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Reflection on how it went")
	return cmd
}

func newProgressUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <activity-id>",
		Short: "Clear an activity's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Progress.Undo(cmd.Context(), app.UserID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", args[0])
			return nil
		},
	}
}
