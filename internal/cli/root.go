package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/aionboard/internal/auth"
	"github.com/alexanderramin/aionboard/internal/catalog"
	"github.com/alexanderramin/aionboard/internal/config"
	"github.com/alexanderramin/aionboard/internal/logger"
	"github.com/alexanderramin/aionboard/internal/observability"
	"github.com/alexanderramin/aionboard/internal/service"
)

// App holds references to all services and runtime settings used by CLI commands.
type App struct {
	Catalog    *catalog.Catalog
	Surveys    service.SurveyService
	Onboarding service.OnboardingService
	Plans      service.PlanService
	Progress   service.ProgressService

	// Serve-only dependencies. Tokens is nil when no JWT secret is configured.
	Tokens   *auth.TokenManager
	Log      *logger.Logger
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	HTTP     config.HTTPConfig

	// UserID and Email identify the local user; --user overrides UserID.
	UserID string
	Email  string

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Asker overrides the huh survey prompts; nil uses the terminal wizard.
	Asker questionAsker
	// RunProgram overrides how bubbletea models are run; nil uses tea.NewProgram.
	RunProgram programRunner
	// Now overrides the clock; nil uses time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "aionboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "aionboard",
		Short:         "AI adoption onboarding: survey, persona and a 90-day plan",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.UserID, "user", app.UserID, "User ID to act as")

	root.AddCommand(
		newSurveyCmd(app),
		newPersonaCmd(app),
		newPlanCmd(app),
		newCalendarCmd(app),
		newTimelineCmd(app),
		newProgressCmd(app),
		newDashboardCmd(app),
		newServeCmd(app),
		newTokenCmd(app),
	)

	return root
}

// completedIDs returns the activities the user has completed in their
// current plan, or an empty set when there is no plan yet.
func completedIDs(ctx context.Context, app *App) map[string]bool {
	d, err := app.Progress.Dashboard(ctx, app.UserID, app.now())
	if err != nil {
		return map[string]bool{}
	}
	return d.CompletedIDs
}
