package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raulserranomena/QuakeReport/internal/observability"
	"github.com/raulserranomena/QuakeReport/internal/screen"
)

func openCmd(e *env) *cobra.Command {
	return openCmdWith(e, screen.BrowserOpener{})
}

func openCmdWith(e *env, opener screen.Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "open <row>",
		Short: "Open the detail page of a listed earthquake in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("row must be an integer: %q", args[0])
			}

			a, err := e.newApp(observability.NewUnregisteredMetrics(), opener)
			if err != nil {
				return err
			}
			defer a.loader.Close()

			v := a.loadOnce(cmd.Context())
			if len(v.Rows) == 0 {
				return screen.RenderText(cmd.OutOrStdout(), v)
			}

			url, err := a.screen.Open(row)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", url)
			return nil
		},
	}
}
