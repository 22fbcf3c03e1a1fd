package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swc/app"
	"swc/config"
	"swc/logging"
	"swc/pkg/seed"
	"swc/pkg/telemetry"
)

func main() {
	var fixture, dbPath string

	cmd := &cobra.Command{
		Use:           "swc-seed",
		Short:         "Reset the database and load sample data",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.DB.Path = dbPath
			}
			if fixture == "" {
				fixture = cfg.SeedFixture
			}
			log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := run(cmd.Context(), cfg, fixture, log); err != nil {
				log.Error("seed failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixture, "fixture", "", "YAML fixture file (default: built-in sample data)")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "SQLite file (overrides DB_PATH)")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.AppConfig, fixture string, log *zap.Logger) error {
	fx, err := seed.LoadFixture(fixture)
	if err != nil {
		return err
	}
	db, err := app.OpenDB(cfg.DB, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	m := telemetry.New()
	a := app.Build(db, cfg, m, nil)
	_, err = seed.New(db, a.Services, log, m).Run(ctx, fx)
	return err
}
