package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/alexanderramin/aionboard/internal/auth"
	"github.com/alexanderramin/aionboard/internal/catalog"
	"github.com/alexanderramin/aionboard/internal/cli"
	"github.com/alexanderramin/aionboard/internal/config"
	"github.com/alexanderramin/aionboard/internal/db"
	"github.com/alexanderramin/aionboard/internal/logger"
	"github.com/alexanderramin/aionboard/internal/observability"
	"github.com/alexanderramin/aionboard/internal/planner"
	"github.com/alexanderramin/aionboard/internal/repository"
	"github.com/alexanderramin/aionboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config file: AIONBOARD_CONFIG, else aionboard.yaml in ~/.aionboard or .
	cfg, err := config.Load(os.Getenv("AIONBOARD_CONFIG"))
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	cat, err := catalog.LoadFiles(cfg.Catalog.Questions, cfg.Catalog.Activities)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(observability.DefaultNamespace, registry)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	observer := service.MultiUseCaseObserver(service.NewLogUseCaseObserver(log), metrics)

	// Wire repositories
	profileRepo := repository.NewSQLiteProfileRepo(database)
	draftRepo := repository.NewSQLiteDraftRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)

	// Wire unit of work, retried on SQLITE_BUSY
	uow := db.NewRetryingUnitOfWork(
		db.NewSQLiteUnitOfWork(database),
		db.RetryPolicy{
			MaxAttempts:     cfg.Retry.MaxAttempts,
			InitialInterval: cfg.Retry.InitialInterval,
			Multiplier:      2,
		},
		func(attempt int, err error, next time.Duration) {
			log.Warn("retrying transaction", "attempt", attempt, "error", err, "backoff", next)
			metrics.RecordRetry(attempt, err, next)
		},
	)

	gen, err := planner.NewCachedGenerator(planner.New(cat.Activities), cfg.Cache.Size,
		planner.WithLookupHook(metrics.RecordCacheLookup))
	if err != nil {
		return fmt.Errorf("creating plan cache: %w", err)
	}

	app := &cli.App{
		Catalog:    cat,
		Surveys:    service.NewSurveyService(cat, draftRepo, observer),
		Onboarding: service.NewOnboardingService(cat, gen, profileRepo, draftRepo, uow, observer),
		Plans:      service.NewPlanService(gen, profileRepo, planRepo, uow, observer),
		Progress:   service.NewProgressService(profileRepo, planRepo, progressRepo, observer),

		Log:      log,
		Metrics:  metrics,
		Gatherer: registry,
		HTTP:     cfg.HTTP,

		UserID: cfg.User.ID,
		Email:  cfg.User.Email,
	}
	if cfg.Auth.JWTSecret != "" {
		app.Tokens = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	}

	// Detect interactive terminal for the survey wizard and plan browser.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
