package commands

import (
	"github.com/spf13/cobra"

	"github.com/raulserranomena/QuakeReport/internal/observability"
	"github.com/raulserranomena/QuakeReport/internal/screen"
)

func listCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Fetch and print recent earthquakes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.newApp(observability.NewUnregisteredMetrics(), screen.BrowserOpener{})
			if err != nil {
				return err
			}
			defer a.loader.Close()

			return screen.RenderText(cmd.OutOrStdout(), a.loadOnce(cmd.Context()))
		},
	}
}
