package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/aionboard/internal/cli/formatter"
	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/service"
	"github.com/alexanderramin/aionboard/internal/survey"
)

func newPersonaCmd(app *App) *cobra.Command {
	var answersPath string
	var all bool

	cmd := &cobra.Command{
		Use:   "persona",
		Short: "Show your persona, or compute one from an answers file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if all {
				fmt.Fprint(out, formatter.FormatPersonaList(domain.AllPersonas))
				return nil
			}

			if answersPath != "" {
				answers, err := readAnswersFile(answersPath)
				if err != nil {
					return err
				}
				if err := service.ValidateAnswers(app.Catalog, answers); err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatPersona(domain.ProfileFor(survey.CalculatePersona(answers))))
				return nil
			}

			profile, err := app.Onboarding.Profile(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatPersona(domain.ProfileFor(profile.Persona)))
			return nil
		},
	}

	cmd.Flags().StringVar(&answersPath, "answers", "", "Compute the persona for a YAML answers file without saving")
	cmd.Flags().BoolVar(&all, "all", false, "List every persona")

	return cmd
}
