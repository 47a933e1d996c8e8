package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthops/intake/pkg/constants"
	"github.com/hearthops/intake/pkg/logging"
	"github.com/hearthops/intake/pkg/syncer"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(a Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Audit record store completeness without writing",
		Long: `Verify reads every client record and reports how many carry a completed
onboarding form, per-field fill rates, per-client completeness, and any
records missing critical fields. It never modifies the store.`,
		RunE: func(c *cobra.Command, _ []string) error {
			engine, err := a.NewSyncer(false)
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(c.Context(), a.Logger())
			ctx, cancel := context.WithTimeout(ctx, constants.RunTimeout)
			defer cancel()

			report, err := engine.Run(ctx, syncer.ModeVerify)
			if report != nil {
				fmt.Fprint(c.OutOrStdout(), report.Summary())
			}
			return err
		},
	}
}
