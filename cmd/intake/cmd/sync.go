package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthops/intake/pkg/constants"
	"github.com/hearthops/intake/pkg/logging"
	"github.com/hearthops/intake/pkg/syncer"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand(a Interface) *cobra.Command {
	var dryRun bool

	c := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile survey submissions into the record store",
		Long: `Sync fetches every survey submission, keeps the latest per respondent,
matches each respondent to a client record by name, and updates record
fields under the configured write policies. Unmatched and ambiguous
respondents are reported and skipped.`,
		Example: `  intake sync             # full reconciliation run
  intake sync --dry-run   # plan and report writes without applying them`,
		RunE: func(c *cobra.Command, _ []string) error {
			engine, err := a.NewSyncer(dryRun)
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(c.Context(), a.Logger())
			ctx, cancel := context.WithTimeout(ctx, constants.RunTimeout)
			defer cancel()

			report, err := engine.Run(ctx, syncer.ModeSync)
			if report != nil {
				fmt.Fprint(c.OutOrStdout(), report.Summary())
			}
			return err
		},
	}

	c.Flags().BoolVar(&dryRun, "dry-run", false, "plan writes without applying them")
	return c
}
