// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/shelfwise/internal/catalog"
	"github.com/tomtom215/shelfwise/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/shelfwise/config.yaml",
	"/etc/shelfwise/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	schema := catalog.DefaultSchema()
	engine := recommend.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		API: APIConfig{
			CORSOrigins:          []string{"*"},
			RateLimitReqs:        100,
			RateLimitWindow:      time.Minute,
			RateLimitDisabled:    false,
			CacheEnabled:         true,
			CacheTTL:             5 * time.Minute,
			CacheMaxMB:           64,
			SlowRequestThreshold: 500 * time.Millisecond,
		},
		Catalog: CatalogConfig{
			Path:             "",
			InteractionsPath: "",
			Format:           "auto",
			Columns: ColumnsConfig{
				Name:        schema.NameColumn,
				Brand:       schema.BrandColumn,
				Rating:      schema.RatingColumn,
				ReviewCount: schema.ReviewCountColumn,
				Image:       schema.ImageColumn,
				ItemID:      schema.ItemIDColumn,
				UserID:      schema.UserIDColumn,
				Text:        schema.TextColumns,
			},
			Breaker: BreakerConfig{
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 3,
			},
		},
		Recommend: RecommendConfig{
			DefaultN:      engine.Limits.DefaultN,
			MaxN:          engine.Limits.MaxN,
			SupplementalK: engine.Limits.SupplementalK,
			Rating: RatingConfig{
				RatingWeight: engine.Rating.RatingWeight,
				ReviewWeight: engine.Rating.ReviewWeight,
				ReviewCap:    engine.Rating.ReviewCap,
			},
			Content: ContentConfig{
				MinTokenLength: engine.Content.MinTokenLength,
				SublinearTF:    engine.Content.SublinearTF,
				StopWords:      []string{},
			},
			Collaborative: CollaborativeConfig{
				K:                engine.Collaborative.K,
				MinSimilarity:    engine.Collaborative.MinSimilarity,
				SimilarityMetric: engine.Collaborative.SimilarityMetric,
				Shrinkage:        engine.Collaborative.Shrinkage,
				MinCommonItems:   engine.Collaborative.MinCommonItems,
				NumWorkers:       engine.Collaborative.NumWorkers,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Environment variables (highest priority)
	// CATALOG_PATH -> catalog.path, KNN_NEIGHBORS -> recommend.collaborative.k
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"api.cors_origins",
	"catalog.columns.text",
	"recommend.content.stop_words",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"server_timeout":   "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// API
	"cors_origins":           "api.cors_origins",
	"rate_limit_requests":    "api.rate_limit_reqs",
	"rate_limit_window":      "api.rate_limit_window",
	"disable_rate_limit":     "api.rate_limit_disabled",
	"response_cache_enabled": "api.cache_enabled",
	"response_cache_ttl":     "api.cache_ttl",
	"response_cache_max_mb":  "api.cache_max_mb",
	"slow_request_threshold": "api.slow_request_threshold",

	// Catalog
	"catalog_path":                     "catalog.path",
	"interactions_path":                "catalog.interactions_path",
	"catalog_format":                   "catalog.format",
	"catalog_column_name":              "catalog.columns.name",
	"catalog_column_brand":             "catalog.columns.brand",
	"catalog_column_rating":            "catalog.columns.rating",
	"catalog_column_review_count":      "catalog.columns.review_count",
	"catalog_column_image":             "catalog.columns.image",
	"catalog_column_item_id":           "catalog.columns.item_id",
	"catalog_column_user_id":           "catalog.columns.user_id",
	"catalog_text_columns":             "catalog.columns.text",
	"loader_breaker_max_requests":      "catalog.breaker.max_requests",
	"loader_breaker_interval":          "catalog.breaker.interval",
	"loader_breaker_timeout":           "catalog.breaker.timeout",
	"loader_breaker_failure_threshold": "catalog.breaker.failure_threshold",

	// Recommend
	"recommend_default_n":      "recommend.default_n",
	"recommend_max_n":          "recommend.max_n",
	"recommend_supplemental_k": "recommend.supplemental_k",
	"rating_weight":            "recommend.rating.rating_weight",
	"review_weight":            "recommend.rating.review_weight",
	"review_cap":               "recommend.rating.review_cap",
	"content_min_token_length": "recommend.content.min_token_length",
	"content_sublinear_tf":     "recommend.content.sublinear_tf",
	"content_stop_words":       "recommend.content.stop_words",
	"knn_neighbors":            "recommend.collaborative.k",
	"knn_min_similarity":       "recommend.collaborative.min_similarity",
	"knn_similarity_metric":    "recommend.collaborative.similarity_metric",
	"knn_shrinkage":            "recommend.collaborative.shrinkage",
	"knn_min_common_items":     "recommend.collaborative.min_common_items",
	"knn_workers":              "recommend.collaborative.num_workers",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - CATALOG_PATH -> catalog.path
//   - KNN_NEIGHBORS -> recommend.collaborative.k
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
