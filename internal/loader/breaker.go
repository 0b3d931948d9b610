// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package loader

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/shelfwise/internal/catalog"
	"github.com/tomtom215/shelfwise/internal/metrics"
)

// BreakerConfig configures the circuit breaker around a Source.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultBreakerConfig returns settings suited to a local file source.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "catalog-loader",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// BreakerSource guards a Source with a circuit breaker. While open, Load
// fails fast with gobreaker.ErrOpenState.
type BreakerSource struct {
	inner  Source
	name   string
	cb     *gobreaker.CircuitBreaker[catalog.RawTable]
	logger zerolog.Logger
}

// NewBreakerSource wraps inner.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerSource(inner Source, cfg BreakerConfig, logger zerolog.Logger) *BreakerSource {
	if cfg.Name == "" {
		cfg.Name = DefaultBreakerConfig().Name
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	b := &BreakerSource{
		inner:  inner,
		name:   cfg.Name,
		logger: logger.With().Str("component", "loader").Str("breaker", cfg.Name).Logger(),
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isContextError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Catalog loader circuit breaker state changed")
			metrics.RecordBreakerTransition(name, from.String(), to.String(), stateValue(to))
		},
	}
	b.cb = gobreaker.NewCircuitBreaker[catalog.RawTable](settings)
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(metrics.BreakerClosed)

	return b
}

// Load calls the wrapped source through the breaker.
// Context cancellation is not counted as a source failure.
func (b *BreakerSource) Load(ctx context.Context) (catalog.RawTable, error) {
	table, err := b.cb.Execute(func() (catalog.RawTable, error) {
		return b.inner.Load(ctx)
	})

	switch {
	case err == nil:
		metrics.RecordBreakerRequest(b.name, "success")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBreakerRequest(b.name, "rejected")
	case isContextError(err):
	default:
		metrics.RecordBreakerRequest(b.name, "failure")
	}
	return table, err
}

// State reports the breaker state.
func (b *BreakerSource) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerSource) String() string {
	return b.inner.String()
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func stateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return metrics.BreakerHalfOpen
	case gobreaker.StateOpen:
		return metrics.BreakerOpen
	default:
		return metrics.BreakerClosed
	}
}
