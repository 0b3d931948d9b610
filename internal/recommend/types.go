// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package recommend

import (
	"errors"
	"math"
	"time"

	"github.com/tomtom215/shelfwise/internal/catalog"
)

// Errors returned by the engine.
var (
	// ErrNotReady is returned before a snapshot has been published.
	ErrNotReady = errors.New("recommendation snapshot not ready")

	// ErrAlreadyPublished is returned when publishing a second snapshot.
	ErrAlreadyPublished = errors.New("recommendation snapshot already published")

	// ErrInvalidUserID is returned for negative user ids.
	ErrInvalidUserID = errors.New("user id must be non-negative")
)

// Strategy names the branch the orchestrator took for a request.
type Strategy string

// Orchestrator strategies.
const (
	// StrategyRating is used for anonymous requests without a query.
	StrategyRating Strategy = "rating"

	// StrategyCollaborative is used for known users without a query.
	StrategyCollaborative Strategy = "collaborative"

	// StrategyRatingFallback is used when a user was given but
	// collaborative filtering produced nothing.
	StrategyRatingFallback Strategy = "rating_fallback"

	// StrategyContent is used for queries from users without history.
	StrategyContent Strategy = "content"

	// StrategyHybrid is content results supplemented by collaborative
	// results for a known user.
	StrategyHybrid Strategy = "hybrid"
)

// Source names the ranker that produced a record.
type Source string

// Record sources.
const (
	SourceRating        Source = "rating"
	SourceContent       Source = "content"
	SourceCollaborative Source = "collaborative"
)

// Request represents a recommendation request.
type Request struct {
	// UserID identifies the user; 0 means anonymous.
	UserID int `json:"user_id"`

	// Query is optional comma-separated product-name query text.
	Query string `json:"query,omitempty"`

	// N is the number of records to return; 0 uses the default.
	N int `json:"n"`

	// RequestID for tracing (generated if empty).
	RequestID string `json:"request_id,omitempty"`
}

// Record is one recommended item as presented to callers.
type Record struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	ImageRefs   []string `json:"image_refs"`
	Source      Source   `json:"source"`
}

// NewRecord converts a catalog item, rounding the rating to 2 decimals.
//
//nolint:gocritic // hugeParam: Item passed by value for a pure function
func NewRecord(item catalog.Item, source Source) Record {
	refs := item.ImageRefs
	if refs == nil {
		refs = []string{}
	}
	return Record{
		Name:        item.Name,
		Brand:       item.Brand,
		Rating:      math.Round(item.Rating*100) / 100,
		ReviewCount: item.ReviewCount,
		ImageRefs:   refs,
		Source:      source,
	}
}

// Response contains recommendation results.
type Response struct {
	// Items are the ordered records; never nil, never duplicated by name.
	Items []Record `json:"items"`

	// Strategy is the orchestrator branch taken.
	Strategy Strategy `json:"strategy"`

	// Metadata contains request processing information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about the recommendation process.
type ResponseMetadata struct {
	RequestID  string    `json:"request_id"`
	UserID     int       `json:"user_id"`
	Query      string    `json:"query,omitempty"`
	N          int       `json:"n"`
	SnapshotID string    `json:"snapshot_id"`
	LatencyMS  int64     `json:"latency_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// SnapshotStats describes a built snapshot.
type SnapshotStats struct {
	ID                  string        `json:"id"`
	BuiltAt             time.Time     `json:"built_at"`
	BuildDuration       time.Duration `json:"build_duration_ns"`
	Items               int           `json:"items"`
	Users               int           `json:"users"`
	Interactions        int           `json:"interactions"`
	SkippedInteractions int           `json:"skipped_interactions"`
	Vocabulary          int           `json:"vocabulary"`
	Catalog             catalog.Stats `json:"catalog"`
}

// EngineMetrics contains engine-level counters.
type EngineMetrics struct {
	Requests  int64 `json:"requests"`
	Errors    int64 `json:"errors"`
	Published bool  `json:"published"`
}
