// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/shelfwise/internal/api"
	"github.com/tomtom215/shelfwise/internal/config"
	"github.com/tomtom215/shelfwise/internal/logging"
	"github.com/tomtom215/shelfwise/internal/metrics"
	"github.com/tomtom215/shelfwise/internal/recommend"
	"github.com/tomtom215/shelfwise/internal/supervisor"
	"github.com/tomtom215/shelfwise/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	logging.Init(cfg.ToLoggingConfig())
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("catalog_path", cfg.Catalog.Path).
		Str("interactions_path", cfg.Catalog.InteractionsPath).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Shelfwise with supervisor tree")

	catalogSrc, interactionSrc, err := newSources(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to configure catalog sources")
		return 1
	}

	engine, err := recommend.NewEngine(cfg.ToRecommendConfig(), logging.WithComponent("recommend"))
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create recommendation engine")
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	responseCache, closeCache, err := newResponseCache(ctx, cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create response cache")
		return 1
	}
	defer closeCache()

	handler := api.NewHandler(engine, responseCache, api.HandlerConfig{
		Version:        version,
		RequestTimeout: cfg.Server.Timeout,
	})
	chiMiddleware := api.NewChiMiddlewareFromConfig(
		cfg.API.CORSOrigins,
		cfg.API.RateLimitReqs,
		cfg.API.RateLimitWindow,
		cfg.API.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMiddleware)
	router.SetSlowRequestThreshold(cfg.API.SlowRequestThreshold)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return 1
	}

	tree.AddDataService(services.NewCatalogService(engine, catalogSrc, interactionSrc, services.CatalogServiceConfig{
		Schema: cfg.ToSchema(),
	}, logging.WithComponent("catalog")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	err = tree.Serve(ctx)

	exitCode := 0
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logging.Info().Msg("Shutdown signal received")
	case errors.Is(err, suture.ErrTerminateSupervisorTree):
		logging.Error().Err(err).Msg("Supervisor tree terminated")
		exitCode = 1
	default:
		logging.Error().Err(err).Msg("Supervisor tree error")
		exitCode = 1
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Int("exit_code", exitCode).Msg("Application stopped")
	return exitCode
}
