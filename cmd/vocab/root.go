package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocab-backend/internal/app"
	"github.com/heartmarshall/vocab-backend/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vocab",
		Short:         "Vocabulary word service",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "path to YAML config (default: $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newPreloadCmd(),
		newEnrichCmd(),
		newVerifyCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger for a subcommand.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

// withApp runs fn with fully wired services and logs a failure before
// returning it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("start", slog.String("error", err.Error()))
		return err
	}
	defer a.Close()

	if err := fn(ctx, a); err != nil {
		logger.Error(fmt.Sprintf("%s failed", cmd.Name()), slog.String("error", err.Error()))
		return err
	}
	return nil
}
