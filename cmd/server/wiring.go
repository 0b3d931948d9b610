// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/shelfwise/internal/cache"
	"github.com/tomtom215/shelfwise/internal/config"
	"github.com/tomtom215/shelfwise/internal/loader"
	"github.com/tomtom215/shelfwise/internal/logging"
)

// newSources builds the breaker-wrapped catalog source and, when
// INTERACTIONS_PATH is set, the interaction source. The returned
// interaction source is nil otherwise.
func newSources(cfg *config.Config) (catalogSrc, interactionSrc loader.Source, err error) {
	format, err := loader.ParseFormat(cfg.Catalog.Format)
	if err != nil {
		return nil, nil, err
	}

	breakerCfg := cfg.ToBreakerConfig()
	logger := logging.WithComponent("loader")

	products, err := loader.NewDuckDBSource(cfg.Catalog.Path, format)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog source: %w", err)
	}
	catalogSrc = loader.NewBreakerSource(products, breakerCfg, logger)

	if cfg.Catalog.InteractionsPath == "" {
		return catalogSrc, nil, nil
	}

	events, err := loader.NewDuckDBSource(cfg.Catalog.InteractionsPath, format)
	if err != nil {
		return nil, nil, fmt.Errorf("interaction source: %w", err)
	}
	breakerCfg.Name = "interaction-loader"
	return catalogSrc, loader.NewBreakerSource(events, breakerCfg, logger), nil
}

// newResponseCache returns the API response cache, or a no-op cache when
// RESPONSE_CACHE_ENABLED is false. The returned func releases it.
func newResponseCache(ctx context.Context, cfg *config.Config) (cache.Cacher, func(), error) {
	if !cfg.API.CacheEnabled {
		logging.Info().Msg("Response cache disabled")
		return cache.Noop{}, func() {}, nil
	}

	c, err := cache.New(ctx, cache.Config{
		TTL:   cfg.API.CacheTTL,
		MaxMB: cfg.API.CacheMaxMB,
	})
	if err != nil {
		return nil, nil, err
	}

	logging.Info().
		Dur("ttl", cfg.API.CacheTTL).
		Int("max_mb", cfg.API.CacheMaxMB).
		Msg("Response cache enabled")

	return c, func() {
		if err := c.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing response cache")
		}
	}, nil
}
