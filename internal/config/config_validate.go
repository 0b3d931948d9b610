// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/shelfwise/internal/loader"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.ToRecommendConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateAPI() error {
	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < minRateLimitRequests || c.API.RateLimitReqs > maxRateLimitRequests {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
		}
		if c.API.RateLimitWindow < minRateLimitWindow || c.API.RateLimitWindow > maxRateLimitWindow {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
		}
	}
	if c.IsProduction() && c.API.RateLimitDisabled {
		return fmt.Errorf("DISABLE_RATE_LIMIT=true is not allowed when ENVIRONMENT=production")
	}
	if c.API.SlowRequestThreshold < 0 {
		return fmt.Errorf("SLOW_REQUEST_THRESHOLD must not be negative, got %v", c.API.SlowRequestThreshold)
	}
	if c.API.CacheEnabled {
		if c.API.CacheTTL <= 0 {
			return fmt.Errorf("RESPONSE_CACHE_TTL must be positive when the cache is enabled, got %v", c.API.CacheTTL)
		}
		if c.API.CacheMaxMB < 1 {
			return fmt.Errorf("RESPONSE_CACHE_MAX_MB must be positive when the cache is enabled, got %d", c.API.CacheMaxMB)
		}
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	format, err := loader.ParseFormat(c.Catalog.Format)
	if err != nil {
		return fmt.Errorf("CATALOG_FORMAT: %w", err)
	}
	if _, err := loader.DetectFormat(c.Catalog.Path, format); err != nil {
		return fmt.Errorf("CATALOG_PATH: %w", err)
	}
	if c.Catalog.InteractionsPath != "" {
		if _, err := loader.DetectFormat(c.Catalog.InteractionsPath, format); err != nil {
			return fmt.Errorf("INTERACTIONS_PATH: %w", err)
		}
	}
	if c.Catalog.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("LOADER_BREAKER_FAILURE_THRESHOLD must be positive")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT names production.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Server.Environment))
	return env == "production" || env == "prod"
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}
