// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package config

import (
	"time"

	"github.com/tomtom215/shelfwise/internal/catalog"
	"github.com/tomtom215/shelfwise/internal/loader"
	"github.com/tomtom215/shelfwise/internal/logging"
	"github.com/tomtom215/shelfwise/internal/recommend"
	"github.com/tomtom215/shelfwise/internal/recommend/algorithms"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	engine, err := recommend.NewEngine(cfg.ToRecommendConfig(), logger)
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// APIConfig holds HTTP API behavior: CORS, rate limiting, the response
// cache and access logging.
type APIConfig struct {
	CORSOrigins          []string      `koanf:"cors_origins"`
	RateLimitReqs        int           `koanf:"rate_limit_reqs"`
	RateLimitWindow      time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled    bool          `koanf:"rate_limit_disabled"`
	CacheEnabled         bool          `koanf:"cache_enabled"`
	CacheTTL             time.Duration `koanf:"cache_ttl"`
	CacheMaxMB           int           `koanf:"cache_max_mb"`
	SlowRequestThreshold time.Duration `koanf:"slow_request_threshold"` // 0 disables slow-request warnings
}

// CatalogConfig locates the product table and names its columns.
//
// Environment Variables:
//   - CATALOG_PATH: catalog file (required)
//   - INTERACTIONS_PATH: separate interaction file; when empty, interactions
//     are read from the catalog table itself
//   - CATALOG_FORMAT: auto, csv, tsv, parquet (default: auto)
type CatalogConfig struct {
	Path             string        `koanf:"path"`
	InteractionsPath string        `koanf:"interactions_path"`
	Format           string        `koanf:"format"`
	Columns          ColumnsConfig `koanf:"columns"`
	Breaker          BreakerConfig `koanf:"breaker"`
}

// ColumnsConfig maps catalog columns to item fields.
type ColumnsConfig struct {
	Name        string   `koanf:"name"`
	Brand       string   `koanf:"brand"`
	Rating      string   `koanf:"rating"`
	ReviewCount string   `koanf:"review_count"`
	Image       string   `koanf:"image"`
	ItemID      string   `koanf:"item_id"`
	UserID      string   `koanf:"user_id"`
	Text        []string `koanf:"text"`
}

// BreakerConfig holds loader circuit breaker settings.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// RecommendConfig holds engine limits and algorithm parameters.
type RecommendConfig struct {
	DefaultN      int                 `koanf:"default_n"`
	MaxN          int                 `koanf:"max_n"`
	SupplementalK int                 `koanf:"supplemental_k"`
	Rating        RatingConfig        `koanf:"rating"`
	Content       ContentConfig       `koanf:"content"`
	Collaborative CollaborativeConfig `koanf:"collaborative"`
}

// RatingConfig holds the rating ranker weights.
type RatingConfig struct {
	RatingWeight float64 `koanf:"rating_weight"`
	ReviewWeight float64 `koanf:"review_weight"`
	ReviewCap    int     `koanf:"review_cap"`
}

// ContentConfig holds tokenizer settings for the TF-IDF index.
type ContentConfig struct {
	MinTokenLength int      `koanf:"min_token_length"`
	SublinearTF    bool     `koanf:"sublinear_tf"`
	StopWords      []string `koanf:"stop_words"`
}

// CollaborativeConfig holds user-kNN settings.
type CollaborativeConfig struct {
	K                int     `koanf:"k"`
	MinSimilarity    float64 `koanf:"min_similarity"`
	SimilarityMetric string  `koanf:"similarity_metric"`
	Shrinkage        float64 `koanf:"shrinkage"`
	MinCommonItems   int     `koanf:"min_common_items"`
	NumWorkers       int     `koanf:"num_workers"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration with the following precedence (highest to lowest):
//  1. Environment variables
//  2. Config file (CONFIG_PATH, config.yaml, /etc/shelfwise/config.yaml)
//  3. Built-in defaults
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// ToRecommendConfig converts the recommend section to an engine config.
func (c *Config) ToRecommendConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultN:      r.DefaultN,
			MaxN:          r.MaxN,
			SupplementalK: r.SupplementalK,
		},
		Rating: algorithms.RatingWeights{
			RatingWeight: r.Rating.RatingWeight,
			ReviewWeight: r.Rating.ReviewWeight,
			ReviewCap:    r.Rating.ReviewCap,
		},
		Content: algorithms.ContentConfig{
			MinTokenLength: r.Content.MinTokenLength,
			SublinearTF:    r.Content.SublinearTF,
			StopWords:      append([]string(nil), r.Content.StopWords...),
		},
		Collaborative: algorithms.CollaborativeConfig{
			K:                r.Collaborative.K,
			MinSimilarity:    r.Collaborative.MinSimilarity,
			SimilarityMetric: r.Collaborative.SimilarityMetric,
			Shrinkage:        r.Collaborative.Shrinkage,
			MinCommonItems:   r.Collaborative.MinCommonItems,
			NumWorkers:       r.Collaborative.NumWorkers,
		},
	}
}

// ToSchema converts the column mapping to a catalog schema. Empty names
// fall back to the catalog defaults.
func (c *Config) ToSchema() catalog.Schema {
	cols := c.Catalog.Columns
	return catalog.Schema{
		NameColumn:        cols.Name,
		BrandColumn:       cols.Brand,
		RatingColumn:      cols.Rating,
		ReviewCountColumn: cols.ReviewCount,
		ImageColumn:       cols.Image,
		ItemIDColumn:      cols.ItemID,
		UserIDColumn:      cols.UserID,
		TextColumns:       append([]string(nil), cols.Text...),
	}
}

// ToBreakerConfig converts loader breaker settings.
func (c *Config) ToBreakerConfig() loader.BreakerConfig {
	b := c.Catalog.Breaker
	return loader.BreakerConfig{
		Name:             "catalog-loader",
		MaxRequests:      b.MaxRequests,
		Interval:         b.Interval,
		Timeout:          b.Timeout,
		FailureThreshold: b.FailureThreshold,
	}
}

// ToLoggingConfig converts the logging section. Output defaults to stderr.
func (c *Config) ToLoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}
