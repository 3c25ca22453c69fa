// Command server serves the farm advisory record store over HTTP.
//
// Flags:
//
//	--seed        replace stored data with the demo dataset before serving
//	--seed-route  expose POST /v1/seed
//
// Configuration is read from CONFIG_PATH (YAML) and the environment; see
// internal/config.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"farm-advisory/internal/app"
	"farm-advisory/internal/config"
)

func main() {
	seedFlag := flag.Bool("seed", false, "replace stored data with the demo dataset before serving")
	seedRouteFlag := flag.Bool("seed-route", false, "expose POST /v1/seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger, app.Options{Seed: *seedFlag, SeedRoute: *seedRouteFlag}); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}
