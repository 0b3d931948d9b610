// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/shelfwise/internal/catalog"
	"github.com/tomtom215/shelfwise/internal/recommend/algorithms"
)

// Snapshot is an immutable, fully built recommendation model: the catalog,
// its precomputed rating order, the content index and the collaborative
// model. It is safe for concurrent use and never changes after Build.
type Snapshot struct {
	id      string
	config  *Config
	catalog *catalog.Catalog

	ratingOrder []catalog.Item
	content     *algorithms.ContentIndex
	collab      *algorithms.CollaborativeModel

	interactions  int
	builtAt       time.Time
	buildDuration time.Duration
}

// Build constructs a snapshot. The content index and collaborative model
// are independent and built concurrently; cancellation of ctx aborts
// both. A nil cfg uses DefaultConfig.
func Build(ctx context.Context, cat *catalog.Catalog, interactions []catalog.Interaction, cfg *Config) (*Snapshot, error) {
	start := time.Now()

	if cat == nil {
		return nil, errors.New("build snapshot: catalog is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	s := &Snapshot{
		id:           uuid.New().String(),
		config:       cfg,
		catalog:      cat,
		interactions: len(interactions),
	}

	items := cat.Items()
	s.ratingOrder = algorithms.NewRatingRanker(cfg.Rating).Rank(items, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		idx, err := algorithms.BuildContentIndex(gctx, cat, cfg.Content)
		if err != nil {
			return fmt.Errorf("content index: %w", err)
		}
		s.content = idx
		return nil
	})
	g.Go(func() error {
		m, err := algorithms.BuildCollaborativeModel(gctx, cat, interactions, cfg.Collaborative)
		if err != nil {
			return fmt.Errorf("collaborative model: %w", err)
		}
		s.collab = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	s.builtAt = time.Now()
	s.buildDuration = s.builtAt.Sub(start)
	return s, nil
}

// ID returns the unique snapshot identifier.
func (s *Snapshot) ID() string {
	return s.id
}

// Catalog returns the catalog the snapshot was built from.
func (s *Snapshot) Catalog() *catalog.Catalog {
	return s.catalog
}

// Stats describes the snapshot.
func (s *Snapshot) Stats() SnapshotStats {
	return SnapshotStats{
		ID:                  s.id,
		BuiltAt:             s.builtAt,
		BuildDuration:       s.buildDuration,
		Items:               s.catalog.Len(),
		Users:               s.collab.UserCount(),
		Interactions:        s.interactions,
		SkippedInteractions: s.collab.SkippedInteractions(),
		Vocabulary:          s.content.VocabularySize(),
		Catalog:             s.catalog.Stats(),
	}
}

// ResolveN applies the default and maximum result sizes.
func (s *Snapshot) ResolveN(n int) int {
	if n <= 0 {
		n = s.config.Limits.DefaultN
	}
	if n > s.config.Limits.MaxN {
		n = s.config.Limits.MaxN
	}
	return n
}

// TopRated returns the n highest scoring items by rating.
func (s *Snapshot) TopRated(n int) []Record {
	n = s.ResolveN(n)
	if n > len(s.ratingOrder) {
		n = len(s.ratingOrder)
	}
	return toRecords(s.ratingOrder[:n], SourceRating)
}

// Similar answers a comma-separated content query. Each query part
// contributes its top n; the result is capped at 2n.
func (s *Snapshot) Similar(query string, n int) []Record {
	return toRecords(s.content.SimilarMulti(query, s.ResolveN(n)), SourceContent)
}

// Resolve returns the anchor item a single query resolves to.
func (s *Snapshot) Resolve(query string) (catalog.Item, bool) {
	return s.content.Resolve(query)
}

// ForUser returns collaborative recommendations only. Users without
// history get an empty slice.
func (s *Snapshot) ForUser(userID, n int) []Record {
	return toRecords(s.collab.Recommend(userID, s.ResolveN(n)), SourceCollaborative)
}

// HasHistory reports whether the user has interaction history.
func (s *Snapshot) HasHistory(userID int) bool {
	return s.collab.HasHistory(userID)
}

// Recommend runs the hybrid orchestrator:
//
//	query  user             result
//	-----  ---------------  -------------------------------------------
//	no     0                rating top-N
//	no     with history     collaborative top-N, rating when empty
//	no     without history  rating top-N
//	yes    any              content top-N, then collaborative top-K
//	                        appended for users with history
//
// The merged list is deduplicated by name in priority order and capped
// at N. A query that resolves to nothing yields content results of zero
// length, not an error.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (s *Snapshot) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	if req.UserID < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidUserID, req.UserID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := s.ResolveN(req.N)
	query := strings.TrimSpace(req.Query)

	var (
		strategy Strategy
		records  []Record
	)

	switch {
	case query == "" && req.UserID == 0:
		strategy = StrategyRating
		records = s.TopRated(n)

	case query == "":
		records = s.ForUser(req.UserID, n)
		strategy = StrategyCollaborative
		if len(records) == 0 {
			strategy = StrategyRatingFallback
			records = s.TopRated(n)
		}

	default:
		strategy = StrategyContent
		records = s.Similar(query, n)
		if s.HasHistory(req.UserID) {
			strategy = StrategyHybrid
			records = append(records, s.ForUser(req.UserID, s.supplementalK(n))...)
		}
	}

	return &Response{
		Items:    mergeRecords(records, n),
		Strategy: strategy,
		Metadata: ResponseMetadata{
			RequestID:  req.RequestID,
			UserID:     req.UserID,
			Query:      query,
			N:          n,
			SnapshotID: s.id,
			LatencyMS:  time.Since(start).Milliseconds(),
			Timestamp:  time.Now(),
		},
	}, nil
}

func (s *Snapshot) supplementalK(n int) int {
	if k := s.config.Limits.SupplementalK; k > 0 {
		return k
	}
	return n
}

// mergeRecords deduplicates by name keeping the first (highest priority)
// occurrence and caps the result at n.
func mergeRecords(records []Record, n int) []Record {
	out := make([]Record, 0, min(n, len(records)))
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		if len(out) == n {
			break
		}
		if _, dup := seen[records[i].Name]; dup {
			continue
		}
		seen[records[i].Name] = struct{}{}
		out = append(out, records[i])
	}
	return out
}

func toRecords(items []catalog.Item, source Source) []Record {
	out := make([]Record, len(items))
	for i := range items {
		out[i] = NewRecord(items[i], source)
	}
	return out
}
