package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpadapter "github.com/raulserranomena/QuakeReport/internal/adapter/http"
	"github.com/raulserranomena/QuakeReport/internal/observability"
	"github.com/raulserranomena/QuakeReport/internal/screen"
)

// redirectOpener leaves opening to the HTTP client, which follows the
// 302 issued by the row endpoint.
type redirectOpener struct{}

func (redirectOpener) Open(string) error { return nil }

var _ screen.Opener = redirectOpener{}

func serveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the earthquake list over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := e.logger
			metrics := observability.NewMetrics()

			a, err := e.newApp(metrics, redirectOpener{})
			if err != nil {
				return err
			}

			srv := httpadapter.NewServer(e.cfg.HTTPAddr, a.screen, a.store, a.loader, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Start HTTP server.
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server error", "error", err)
					stop()
				}
			}()

			a.screen.Create(ctx)

			<-ctx.Done()
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), e.cfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
			a.screen.Teardown()
			a.loader.Close()

			logger.Info("shutdown complete")
			return nil
		},
	}
}
