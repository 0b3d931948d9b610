// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package api

import (
	"context"
	"time"

	"github.com/tomtom215/shelfwise/internal/cache"
	"github.com/tomtom215/shelfwise/internal/recommend"
)

// Recommender is the engine surface the handlers use. *recommend.Engine
// implements it.
type Recommender interface {
	Ready() bool
	Snapshot() (*recommend.Snapshot, error)
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// HandlerConfig holds handler settings that do not come from the engine.
type HandlerConfig struct {
	// Version is reported by the health endpoints.
	Version string

	// RequestTimeout bounds a single recommendation call.
	RequestTimeout time.Duration
}

// DefaultHandlerConfig returns handler defaults.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		Version:        "dev",
		RequestTimeout: 10 * time.Second,
	}
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response envelope, parameter parsing, caching
//   - handlers_health.go: liveness and readiness probes
//   - handlers_recommend.go: recommendation endpoints
//   - handlers_catalog.go: snapshot status
type Handler struct {
	engine    Recommender
	cache     cache.Cacher
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a new API handler. A nil cache disables response
// caching.
func NewHandler(engine Recommender, responseCache cache.Cacher, cfg HandlerConfig) *Handler {
	if responseCache == nil {
		responseCache = cache.Noop{}
	}
	defaults := DefaultHandlerConfig()
	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}

	return &Handler{
		engine:    engine,
		cache:     responseCache,
		config:    cfg,
		startTime: time.Now(),
	}
}
