package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocab-backend/internal/app"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Print word store statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				stats, err := a.Maintenance.Verify(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "total:      %d\n", stats.Total)
				fmt.Fprintf(out, "enriched:   %d\n", stats.Enriched)
				fmt.Fprintf(out, "pending:    %d\n", stats.Pending)
				fmt.Fprintf(out, "inactive:   %d\n", stats.Inactive)
				fmt.Fprintf(out, "completion: %.1f%%\n", stats.CompletionPercent())
				return nil
			})
		},
	}
}
