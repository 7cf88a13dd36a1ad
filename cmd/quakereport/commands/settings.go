package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func settingsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}
	cmd.AddCommand(settingsGetCmd(e), settingsSetCmd(e))
	return cmd
}

func settingsGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "min_magnitude: %g\n", store.MinMagnitude())
			return nil
		},
	}
}

func settingsSetCmd(e *env) *cobra.Command {
	var minMag float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore()
			if err != nil {
				return err
			}
			if err := store.SetMinMagnitude(minMag); err != nil {
				return err
			}
			e.logger.Info("minimum magnitude updated", "min_magnitude", minMag, "path", store.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "min_magnitude: %g\n", minMag)
			return nil
		},
	}

	cmd.Flags().Float64Var(&minMag, "min-magnitude", 0, "minimum magnitude to list (0-10)")
	_ = cmd.MarkFlagRequired("min-magnitude")
	return cmd
}
