// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package recommend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shelfwise/internal/catalog"
)

// Note: This package depends only on the catalog package. Loading raw
// data and serving HTTP live in other packages so the engine can be
// exercised with synthetic catalogs.

// Engine holds the published snapshot and serves requests against it.
// It is safe for concurrent use: the snapshot pointer is stored once and
// read without locking.
type Engine struct {
	config *Config
	logger zerolog.Logger

	current atomic.Pointer[Snapshot]

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Build constructs a snapshot with the engine configuration. It does not
// publish it.
func (e *Engine) Build(ctx context.Context, cat *catalog.Catalog, interactions []catalog.Interaction) (*Snapshot, error) {
	e.logger.Info().
		Int("items", cat.Len()).
		Int("interactions", len(interactions)).
		Msg("building recommendation snapshot")

	s, err := Build(ctx, cat, interactions, e.config)
	if err != nil {
		return nil, err
	}

	st := s.Stats()
	e.logger.Info().
		Str("snapshot_id", st.ID).
		Int("items", st.Items).
		Int("users", st.Users).
		Int("vocabulary", st.Vocabulary).
		Int("skipped_interactions", st.SkippedInteractions).
		Dur("duration", st.BuildDuration).
		Msg("recommendation snapshot built")

	return s, nil
}

// Publish makes s visible to readers. A snapshot can be published once
// per engine; later calls return ErrAlreadyPublished.
func (e *Engine) Publish(s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("publish: nil snapshot")
	}
	if !e.current.CompareAndSwap(nil, s) {
		return ErrAlreadyPublished
	}
	e.logger.Info().Str("snapshot_id", s.ID()).Msg("recommendation snapshot published")
	return nil
}

// Ready reports whether a snapshot has been published.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// Snapshot returns the published snapshot or ErrNotReady.
func (e *Engine) Snapshot() (*Snapshot, error) {
	s := e.current.Load()
	if s == nil {
		return nil, ErrNotReady
	}
	return s, nil
}

// Recommend runs the hybrid orchestrator against the published snapshot.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = generateRequestID()
	}
	logger := e.createRequestLogger(req)

	s, err := e.Snapshot()
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	resp, err := s.Recommend(ctx, req)
	if err != nil {
		e.errorCount.Add(1)
		logger.Debug().Err(err).Msg("recommendation failed")
		return nil, err
	}

	logger.Debug().
		Str("strategy", string(resp.Strategy)).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// Metrics returns engine-level counters.
func (e *Engine) Metrics() EngineMetrics {
	return EngineMetrics{
		Requests:  e.requestCount.Load(),
		Errors:    e.errorCount.Load(),
		Published: e.Ready(),
	}
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Bool("has_query", req.Query != "").
		Time("received_at", time.Now()).
		Logger()
}

// generateRequestID creates a short request identifier.
func generateRequestID() string {
	return uuid.New().String()[:8]
}
