package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocab-backend/internal/app"
)

func newEnrichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich placeholder words from the dictionary and translation providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				res, err := a.Maintenance.EnrichBatch(ctx, limit)
				fmt.Fprintf(cmd.OutOrStdout(), "processed %d, enriched %d, failed %d, deactivated %d, errors %d\n",
					res.Processed, res.Enriched, res.Failed, res.Deactivated, res.Errors)
				return err
			})
		},
	}
	cmd.Flags().Int("limit", 0, "maximum words to process (default: enrichment.batch_size)")
	return cmd
}
