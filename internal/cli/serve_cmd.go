package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/aionboard/internal/httpapi"
	"github.com/alexanderramin/aionboard/internal/logger"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Tokens == nil {
				return fmt.Errorf("auth.jwt_secret must be set to serve the API (AIONBOARD_AUTH_JWT_SECRET)")
			}
			if addr == "" {
				addr = app.HTTP.Addr
			}
			log := app.Log
			if log == nil {
				log = logger.Nop()
			}

			router := httpapi.NewRouter(httpapi.RouterConfig{
				Handler:     httpapi.NewHandler(app.Catalog, app.Surveys, app.Onboarding, app.Plans, app.Progress),
				Tokens:      app.Tokens,
				Log:         log,
				Metrics:     app.Metrics,
				Gatherer:    app.Gatherer,
				CORSOrigins: app.HTTP.CORSOrigins,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("http server listening", "addr", addr)
			if err := httpapi.NewServer(addr, router).Run(ctx); err != nil {
				return err
			}
			log.Info("http server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from http.addr)")
	return cmd
}
