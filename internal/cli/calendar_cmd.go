package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/aionboard/internal/cli/formatter"
	"github.com/alexanderramin/aionboard/internal/planner"
)

func newCalendarCmd(app *App) *cobra.Command {
	var month string
	var days int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show scheduled activities by week",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := calendarRange(app.now(), month, days)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			entries, err := app.Plans.Calendar(ctx, app.UserID, from, to)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", formatter.Header(fmt.Sprintf("%s – %s", formatter.ShortDate(from), formatter.ShortDate(to.AddDate(0, 0, -1)))))
			fmt.Fprint(out, formatter.FormatCalendar(entries, completedIDs(ctx, app), app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Calendar month (YYYY-MM)")
	cmd.Flags().IntVar(&days, "days", 30, "Days to show from today when --month is not set")
	return cmd
}

// calendarRange resolves the half-open [from, to) window for the calendar.
func calendarRange(now time.Time, month string, days int) (time.Time, time.Time, error) {
	if month != "" {
		m, err := time.ParseInLocation("2006-01", month, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
		}
		return m, m.AddDate(0, 1, 0), nil
	}
	if days < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("--days must be positive")
	}
	from := planner.StartOfDay(now)
	return from, from.AddDate(0, 0, days), nil
}

func newTimelineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show your plan as a timeline of phases",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec, err := app.Plans.Current(ctx, app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(rec, completedIDs(ctx, app), app.now()))
			return nil
		},
	}
}
