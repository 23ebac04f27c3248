package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/aionboard/internal/cli/formatter"
	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/service"
	"github.com/alexanderramin/aionboard/internal/survey"
)

func newSurveyCmd(app *App) *cobra.Command {
	var answersPath, start string
	var restart bool

	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Take the onboarding survey and generate your 90-day plan",
		Long: `Walks through the onboarding survey, then saves your persona and plan.

Progress is saved after every answer; running the command again resumes
where you left off. Use --answers to onboard from a YAML file instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			startDate, err := parseStartFlag(start)
			if err != nil {
				return err
			}

			if answersPath != "" {
				answers, err := readAnswersFile(answersPath)
				if err != nil {
					return err
				}
				res, err := app.Onboarding.Complete(ctx, service.OnboardingRequest{
					UserID:    app.UserID,
					Email:     app.Email,
					Answers:   answers,
					StartDate: startDate,
				})
				if err != nil {
					return err
				}
				printOnboarding(out, res, app.now())
				return nil
			}

			if !app.interactive() {
				return fmt.Errorf("stdin is not a terminal; pass --answers <file> to onboard non-interactively")
			}

			asker := app.Asker
			if asker == nil {
				asker = huhAsker{}
			}
			if err := runSurvey(ctx, app, out, asker, restart); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(out, formatter.Dim("Survey saved. Run `aionboard survey` to pick up where you left off."))
					return nil
				}
				return err
			}

			res, err := app.Onboarding.CompleteDraft(ctx, app.UserID, app.Email, startDate)
			if err != nil {
				return err
			}
			printOnboarding(out, res, app.now())
			return nil
		},
	}

	cmd.Flags().StringVar(&answersPath, "answers", "", "YAML file of question → option answers")
	cmd.Flags().StringVar(&start, "start", "", "Plan start date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&restart, "restart", false, "Discard saved progress and start over")

	cmd.AddCommand(newSurveyStatusCmd(app))
	return cmd
}

func newSurveyStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show saved survey progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			state, err := app.Surveys.Current(cmd.Context(), app.UserID)
			if errors.Is(err, service.ErrNoSurvey) {
				fmt.Fprintln(out, formatter.Dim("No survey in progress."))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, formatter.Header("Survey"))
			if state.Done {
				fmt.Fprintf(out, "%s %s\n", formatter.StyleGreen.Render("Finished."), formatter.Dim("Run `aionboard survey` to save your plan."))
			} else {
				fmt.Fprintf(out, "%s %s\n", formatter.Dim("Current question:"), formatter.Bold(state.Question.Prompt))
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatAnswers(state.Answers, app.Catalog.OptionLabel))
			return nil
		},
	}
}

// runSurvey drives the survey service until the survey is finished, asking
// each question through asker.
func runSurvey(ctx context.Context, app *App, out io.Writer, asker questionAsker, restart bool) error {
	begin := app.Surveys.Begin
	if restart {
		begin = app.Surveys.Restart
	}
	state, err := begin(ctx, app.UserID)
	if err != nil {
		return err
	}

	for !state.Done {
		q := state.Question
		canGoBack := state.Answers.Len() > 0

		var next *service.SurveyState
		switch q.Type {
		case domain.QuestionIntro:
			if err := asker.Intro(q); err != nil {
				return err
			}
			next, err = app.Surveys.Start(ctx, app.UserID)

		case domain.QuestionSingleChoice:
			choice, askErr := asker.Single(q, canGoBack)
			switch {
			case errors.Is(askErr, errGoBack):
				next, err = app.Surveys.Back(ctx, app.UserID)
			case askErr != nil:
				return askErr
			default:
				next, err = app.Surveys.Answer(ctx, app.UserID, choice)
			}

		case domain.QuestionMultiChoice:
			chosen, askErr := asker.Multi(q, state.Pending, canGoBack)
			switch {
			case errors.Is(askErr, errGoBack):
				next, err = app.Surveys.Back(ctx, app.UserID)
			case askErr != nil:
				return askErr
			default:
				next, err = submitSelection(ctx, app, state, chosen)
			}
			if errors.Is(err, survey.ErrEmptySelection) {
				fmt.Fprintln(out, formatter.StyleYellow.Render(err.Error()))
				next, err = app.Surveys.Current(ctx, app.UserID)
			}

		default:
			return fmt.Errorf("question %q: unexpected type %q", q.ID, q.Type)
		}

		if err != nil {
			return err
		}
		state = next
	}
	return nil
}

// submitSelection toggles the pending selection until it matches chosen,
// then continues.
func submitSelection(ctx context.Context, app *App, state *service.SurveyState, chosen []string) (*service.SurveyState, error) {
	var toggle []string
	for _, id := range state.Pending {
		if !slices.Contains(chosen, id) {
			toggle = append(toggle, id)
		}
	}
	for _, id := range chosen {
		if !slices.Contains(state.Pending, id) {
			toggle = append(toggle, id)
		}
	}
	for _, id := range toggle {
		if _, err := app.Surveys.Toggle(ctx, app.UserID, id); err != nil {
			return nil, err
		}
	}
	return app.Surveys.Continue(ctx, app.UserID)
}

func printOnboarding(out io.Writer, res *service.OnboardingResult, now time.Time) {
	fmt.Fprintln(out, formatter.FormatPersona(res.PersonaProfile))
	fmt.Fprintln(out)
	fmt.Fprint(out, formatter.FormatPlanRecord(res.Plan, nil))
	fmt.Fprintf(out, "\n%s %s\n", formatter.Dim("Plan starts"), formatter.RelativeDateFrom(res.Plan.StartDate, now))
}
