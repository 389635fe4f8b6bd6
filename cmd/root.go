package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/hermes/internal/config"
	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/repository"
	"github.com/UnknownOlympus/hermes/internal/sensors"
	"github.com/UnknownOlympus/hermes/internal/server"
	"github.com/UnknownOlympus/hermes/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hermes",
		Short: "Traffic-aware route estimation service",
		Long: `hermes keeps a live traffic snapshot from roadside sensors and estimates
routes, travel times and congestion over HTTP.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(newEstimateCmd())

	return root
}

// runServe starts the snapshot refresher and the API server and blocks until
// SIGINT or SIGTERM is received or one of them fails.
func runServe(cmd *cobra.Command, _ []string) error {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env, os.Stdout)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	provider, pool, err := openProvider(cfg, logger)
	if err != nil {
		return err
	}

	var db server.Pinger
	if pool != nil {
		defer pool.Close()
		db = pool
	}

	logger.InfoContext(ctx, "Snapshot provider initialized", "type", cfg.ProviderType)

	snapshots := service.NewSnapshotService(logger, provider, appMetrics, cfg.RefreshInterval)
	api := server.New(logger, snapshots, appMetrics, reg, db)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		snapshots.Run(gctx)
		return nil
	})
	group.Go(func() error {
		return api.Run(gctx, cfg.Port)
	})

	if err = group.Wait(); err != nil {
		logger.ErrorContext(ctx, "Application stopped with error", "error", err)
		return err
	}

	logger.InfoContext(ctx, "Application stopped gracefully.")

	return nil
}

// openProvider creates the configured snapshot provider. The returned pool is
// non-nil only for the postgres provider and must be closed by the caller.
func openProvider(cfg *config.Config, logger *slog.Logger) (sensors.Provider, *pgxpool.Pool, error) {
	providerConfig := sensors.ProviderConfig{
		Type:      sensors.ProviderType(cfg.ProviderType),
		Sensors:   cfg.Sensors,
		Seed:      cfg.Seed,
		FeedURL:   cfg.FeedURL,
		RateLimit: cfg.FeedRateLimit,
		FilePath:  cfg.SnapshotFile,
		Logger:    logger,
	}

	var pool *pgxpool.Pool
	if cfg.UsesDatabase() {
		var err error
		pool, err = repository.NewDatabase(
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		providerConfig.Repo = repository.NewRepository(pool, logger)
	}

	provider, err := sensors.NewProvider(providerConfig)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, nil, fmt.Errorf("failed to create snapshot provider: %w", err)
	}

	return provider, pool, nil
}
