package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/aionboard/internal/cli/formatter"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "View and manage your 90-day plan",
	}

	cmd.AddCommand(
		newPlanShowCmd(app),
		newPlanGenerateCmd(app),
		newPlanRegenerateCmd(app),
		newPlanHistoryCmd(app),
		newPlanBrowseCmd(app),
	)

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your current plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec, err := app.Plans.Current(ctx, app.UserID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanRecord(rec, completedIDs(ctx, app)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")
	return cmd
}

func newPlanGenerateCmd(app *App) *cobra.Command {
	var in planInputFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Preview a plan for any persona without saving it",
		Example: `  aionboard plan generate --persona efficiency-seeker --work-type technical \
    --frequency daily --time-waster email --time-waster research`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := in.input()
			if err != nil {
				return err
			}
			plan, err := app.Plans.Preview(cmd.Context(), input)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), plan)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(plan, nil))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(in.flagSet())
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")
	_ = cmd.MarkFlagRequired("persona")
	return cmd
}

func newPlanRegenerateCmd(app *App) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Build a fresh plan from your saved survey answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseStartFlag(start)
			if err != nil {
				return err
			}
			rec, err := app.Plans.Regenerate(cmd.Context(), app.UserID, startDate)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated plan %s\n\n", formatter.TruncID(rec.ID))
			fmt.Fprint(out, formatter.FormatPlanRecord(rec, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Plan start date (YYYY-MM-DD, default today)")
	return cmd
}

func newPlanHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List every plan you have generated",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := app.Plans.History(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanHistory(recs, app.now()))
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
