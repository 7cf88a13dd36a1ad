// Package commands implements the quakereport command line.
package commands

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/raulserranomena/QuakeReport/internal/config"
	"github.com/raulserranomena/QuakeReport/internal/observability"
)

// env carries state built by the root command for its subcommands.
type env struct {
	home   string
	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:          "quakereport",
		Short:        "Recent earthquakes from the USGS feed",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			dotenvErr := godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if e.home != "" {
				cfg.Home = e.home
			}
			e.cfg = cfg
			e.logger = observability.NewLogger(cfg)

			if dotenvErr != nil && !errors.Is(dotenvErr, fs.ErrNotExist) {
				e.logger.Warn("failed to load .env", "error", dotenvErr)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&e.home, "home", "", "settings dir (default $QUAKEREPORT_HOME or ~/.quakereport)")

	root.AddCommand(serveCmd(e), listCmd(e), openCmd(e), settingsCmd(e))
	return root
}
