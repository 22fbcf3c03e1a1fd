package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swc/app"
	"swc/config"
	"swc/logging"
	"swc/pkg/telemetry"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var port, dbPath string

	load := func() (config.AppConfig, *zap.Logger, error) {
		cfg, err := config.Load()
		if err != nil {
			return cfg, nil, err
		}
		if port != "" {
			cfg.Port = port
		}
		if dbPath != "" {
			cfg.DB.Path = dbPath
		}
		log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
		return cfg, log, err
	}

	root := &cobra.Command{
		Use:           "swc-server",
		Short:         "Soil and water conservation planning API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer log.Sync()
			if err := serve(cmd.Context(), cfg, log); err != nil {
				log.Error("server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	root.PersistentFlags().StringVar(&dbPath, "db-path", "", "SQLite file (overrides DB_PATH)")

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer log.Sync()
			if _, err := app.OpenDB(cfg.DB, log); err != nil {
				log.Error("migrate failed", zap.Error(err))
				return err
			}
			log.Info("schema up to date", zap.String("driver", cfg.DB.Driver))
			return nil
		},
	})
	return root
}

func serve(parent context.Context, cfg config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := app.OpenDB(cfg.DB, log)
	if err != nil {
		return err
	}
	m := telemetry.New()
	a := app.Build(db, cfg, m, nil)
	e := a.Echo(cfg, log, m)

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
