// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package recommend

import (
	"fmt"

	"github.com/tomtom215/shelfwise/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains result-size limits.
	Limits LimitsConfig `json:"limits"`

	// Rating contains the popularity score weights.
	Rating algorithms.RatingWeights `json:"rating"`

	// Content contains parameters for the content similarity index.
	Content algorithms.ContentConfig `json:"content"`

	// Collaborative contains parameters for user-based collaborative
	// filtering.
	Collaborative algorithms.CollaborativeConfig `json:"collaborative"`
}

// LimitsConfig contains result-size limits.
type LimitsConfig struct {
	// DefaultN is used when a request does not specify a result size.
	DefaultN int `json:"default_n"`

	// MaxN caps any requested result size.
	MaxN int `json:"max_n"`

	// SupplementalK is how many collaborative items are appended to
	// content results for a known user. Zero means "same as n".
	SupplementalK int `json:"supplemental_k"`
}

// DefaultConfig returns production-ready default configuration.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultN:      10,
			MaxN:          100,
			SupplementalK: 0,
		},
		Rating:        algorithms.DefaultRatingWeights(),
		Content:       algorithms.DefaultContentConfig(),
		Collaborative: algorithms.DefaultCollaborativeConfig(),
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Limits.DefaultN < 1 {
		return fmt.Errorf("limits.default_n must be positive, got %d", c.Limits.DefaultN)
	}
	if c.Limits.MaxN < c.Limits.DefaultN {
		return fmt.Errorf("limits.max_n must be >= limits.default_n, got %d < %d", c.Limits.MaxN, c.Limits.DefaultN)
	}
	if c.Limits.SupplementalK < 0 {
		return fmt.Errorf("limits.supplemental_k must be non-negative, got %d", c.Limits.SupplementalK)
	}

	if c.Rating.RatingWeight < 0 {
		return fmt.Errorf("rating.rating_weight must be non-negative, got %f", c.Rating.RatingWeight)
	}
	if c.Rating.ReviewWeight < 0 {
		return fmt.Errorf("rating.review_weight must be non-negative, got %f", c.Rating.ReviewWeight)
	}
	if c.Rating.ReviewCap < 1 {
		return fmt.Errorf("rating.review_cap must be positive, got %d", c.Rating.ReviewCap)
	}

	if c.Content.MinTokenLength < 1 {
		return fmt.Errorf("content.min_token_length must be positive, got %d", c.Content.MinTokenLength)
	}

	if c.Collaborative.K < 1 {
		return fmt.Errorf("collaborative.k must be positive, got %d", c.Collaborative.K)
	}
	if c.Collaborative.MinSimilarity < 0 || c.Collaborative.MinSimilarity >= 1 {
		return fmt.Errorf("collaborative.min_similarity must be in [0, 1), got %f", c.Collaborative.MinSimilarity)
	}
	if c.Collaborative.Shrinkage < 0 {
		return fmt.Errorf("collaborative.shrinkage must be non-negative, got %f", c.Collaborative.Shrinkage)
	}
	if c.Collaborative.MinCommonItems < 1 {
		return fmt.Errorf("collaborative.min_common_items must be positive, got %d", c.Collaborative.MinCommonItems)
	}
	if c.Collaborative.NumWorkers < 1 {
		return fmt.Errorf("collaborative.num_workers must be positive, got %d", c.Collaborative.NumWorkers)
	}
	switch c.Collaborative.SimilarityMetric {
	case algorithms.MetricCosine, algorithms.MetricJaccard:
	default:
		return fmt.Errorf("collaborative.similarity_metric must be %q or %q, got %q",
			algorithms.MetricCosine, algorithms.MetricJaccard, c.Collaborative.SimilarityMetric)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	if c.Content.StopWords != nil {
		out.Content.StopWords = append([]string(nil), c.Content.StopWords...)
	}
	return &out
}
