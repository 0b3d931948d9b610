// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/shelfwise/internal/catalog"
	"github.com/tomtom215/shelfwise/internal/loader"
	"github.com/tomtom215/shelfwise/internal/metrics"
	"github.com/tomtom215/shelfwise/internal/recommend"
)

// CatalogEngine is the part of *recommend.Engine the catalog service drives.
type CatalogEngine interface {
	Ready() bool
	Build(ctx context.Context, cat *catalog.Catalog, interactions []catalog.Interaction) (*recommend.Snapshot, error)
	Publish(s *recommend.Snapshot) error
}

// CatalogServiceConfig holds catalog service settings.
type CatalogServiceConfig struct {
	// Schema maps table columns to item fields.
	Schema catalog.Schema

	// LoadTimeout bounds load, normalize and build together.
	// Default: 5m
	LoadTimeout time.Duration
}

// CatalogService loads the catalog once, builds the recommendation
// snapshot, publishes it, and then idles until shutdown. Restarts after
// a successful publish go straight to idling.
type CatalogService struct {
	engine       CatalogEngine
	catalogSrc   loader.Source
	interactions loader.Source
	config       CatalogServiceConfig
	logger       zerolog.Logger
}

// NewCatalogService creates the service. interactions may be nil, in
// which case interactions are read from the catalog table itself.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogService(engine CatalogEngine, catalogSrc, interactions loader.Source, cfg CatalogServiceConfig, logger zerolog.Logger) *CatalogService {
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 5 * time.Minute
	}
	return &CatalogService{
		engine:       engine,
		catalogSrc:   catalogSrc,
		interactions: interactions,
		config:       cfg,
		logger:       logger.With().Str("service", "catalog").Logger(),
	}
}

// Serve implements suture.Service.
//
// Schema errors are returned wrapped in suture.ErrTerminateSupervisorTree
// so a structurally bad file stops the process. Other failures are
// returned plainly and suture restarts the service with backoff.
func (s *CatalogService) Serve(ctx context.Context) error {
	if s.engine.Ready() {
		s.logger.Debug().Msg("snapshot already published, idling")
	} else if err := s.loadAndPublish(ctx); err != nil {
		if errors.Is(err, catalog.ErrSchema) {
			s.logger.Error().Err(err).Msg("catalog schema invalid, terminating")
			return fmt.Errorf("%w: %w", suture.ErrTerminateSupervisorTree, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn().Err(err).Msg("catalog load failed, will retry")
		return err
	}

	<-ctx.Done()
	return ctx.Err()
}

func (s *CatalogService) loadAndPublish(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, s.config.LoadTimeout)
	defer cancel()

	start := time.Now()
	s.logger.Info().Str("source", s.catalogSrc.String()).Msg("loading catalog")

	table, err := s.catalogSrc.Load(ctx)
	if err != nil {
		metrics.RecordBuildError("load")
		return fmt.Errorf("load catalog: %w", err)
	}

	cat, err := catalog.Normalize(table, s.config.Schema)
	if err != nil {
		metrics.RecordBuildError("normalize")
		return fmt.Errorf("normalize catalog: %w", err)
	}
	s.logNormalization(cat.Stats())

	interactions, err := s.loadInteractions(ctx, table)
	if err != nil {
		return err
	}

	snap, err := s.engine.Build(ctx, cat, interactions)
	if err != nil {
		metrics.RecordBuildError("build")
		return fmt.Errorf("build snapshot: %w", err)
	}

	if err := s.engine.Publish(snap); err != nil {
		if errors.Is(err, recommend.ErrAlreadyPublished) {
			s.logger.Warn().Msg("snapshot published concurrently, discarding this build")
			return nil
		}
		metrics.RecordBuildError("publish")
		return fmt.Errorf("publish snapshot: %w", err)
	}

	st := snap.Stats()
	metrics.RecordSnapshotPublished(metrics.SnapshotGauges{
		Items:      st.Items,
		Users:      st.Users,
		Vocabulary: st.Vocabulary,
	}, st.BuildDuration)
	metrics.RecordRowsSkipped("unknown_item", st.SkippedInteractions)

	s.logger.Info().
		Str("snapshot_id", st.ID).
		Int("items", st.Items).
		Int("users", st.Users).
		Dur("total_duration", time.Since(start)).
		Msg("catalog ready")

	return nil
}

// loadInteractions reads the separate interaction source when configured.
// Otherwise the catalog table is used, and a catalog without a user
// column simply has no interactions.
func (s *CatalogService) loadInteractions(ctx context.Context, catalogTable catalog.RawTable) ([]catalog.Interaction, error) {
	if s.interactions == nil {
		interactions, err := catalog.ExtractInteractions(catalogTable, s.config.Schema)
		if errors.Is(err, catalog.ErrSchema) {
			s.logger.Warn().Err(err).Msg("catalog has no user column, collaborative filtering disabled")
			return nil, nil
		}
		if err != nil {
			metrics.RecordBuildError("interactions")
			return nil, fmt.Errorf("extract interactions: %w", err)
		}
		return interactions, nil
	}

	s.logger.Info().Str("source", s.interactions.String()).Msg("loading interactions")
	table, err := s.interactions.Load(ctx)
	if err != nil {
		metrics.RecordBuildError("load")
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	interactions, err := catalog.ExtractInteractions(table, s.config.Schema)
	if err != nil {
		metrics.RecordBuildError("interactions")
		return nil, fmt.Errorf("extract interactions: %w", err)
	}
	return interactions, nil
}

//nolint:gocritic // hugeParam: Stats is a small value summary
func (s *CatalogService) logNormalization(st catalog.Stats) {
	metrics.RecordRowsSkipped("empty_name", st.RowsSkipped)
	metrics.RecordRowsSkipped("duplicate", st.Duplicates)

	event := s.logger.Info()
	if st.InvalidRatings > 0 || st.InvalidReviewCounts > 0 {
		event = s.logger.Warn()
	}
	event.
		Int("rows_read", st.RowsRead).
		Int("rows_skipped", st.RowsSkipped).
		Int("duplicates", st.Duplicates).
		Int("invalid_ratings", st.InvalidRatings).
		Int("invalid_review_counts", st.InvalidReviewCounts).
		Msg("catalog normalized")
}

// String identifies the service in supervisor events.
func (s *CatalogService) String() string {
	return "catalog-service"
}
