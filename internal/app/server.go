package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"farm-advisory/internal/config"
	"farm-advisory/internal/database"
	"farm-advisory/internal/middleware"
	"farm-advisory/internal/router"
	"farm-advisory/internal/rules"
	"farm-advisory/internal/service"
	"farm-advisory/internal/storage"

	"github.com/gin-gonic/gin"
)

// Options are the command-line switches of the server
type Options struct {
	// Seed replaces the stored data with the demo dataset before serving
	Seed bool
	// SeedRoute exposes POST /v1/seed
	SeedRoute bool
}

// Run opens the configured store, serves the API and blocks until ctx is
// cancelled, then shuts the HTTP server down gracefully.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) error {
	logger.Info("starting application",
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("log_level", cfg.Log.Level),
	)

	crops, err := rules.LoadCropRules(cfg.Rules.CropsPath)
	if err != nil {
		return err
	}
	water, err := rules.LoadWaterRules(cfg.Rules.WaterPath)
	if err != nil {
		return err
	}

	backend, err := database.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	records := service.NewRecordManager(storage.NewStore(backend.Repo, logger), logger)
	seeder := service.NewSeeder(records, crops, water)
	if opts.Seed {
		stats, err := seeder.Seed()
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		logger.Info("demo data seeded", slog.Int("water_records", stats.TotalWaterRecords))
	}
	if !opts.SeedRoute {
		seeder = nil
	}

	gin.SetMode(cfg.Server.Mode)
	engine, err := router.New(router.Deps{
		Records:      records,
		Crops:        crops,
		Water:        water,
		Seeder:       seeder,
		Metrics:      middleware.NewMetrics(),
		Logger:       logger,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	logger.Info("server shut down successfully")
	return nil
}
