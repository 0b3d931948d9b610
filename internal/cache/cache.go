// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/goccy/go-json"
)

// Config holds response cache settings.
type Config struct {
	// TTL applies to every entry; bigcache has no per-entry expiry.
	TTL time.Duration

	// MaxMB is the hard memory limit across all shards.
	MaxMB int

	// Shards must be a power of two.
	Shards int

	// CleanWindow is how often expired entries are evicted. Zero uses TTL.
	CleanWindow time.Duration
}

// DefaultConfig returns the settings used when the API cache is enabled.
func DefaultConfig() Config {
	return Config{
		TTL:    5 * time.Minute,
		MaxMB:  64,
		Shards: 64,
	}
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits       int64
	Misses     int64
	Collisions int64
	Entries    int
	Capacity   int
}

// Cache is a byte-oriented TTL cache backed by allegro/bigcache. Values
// are stored pre-serialized so a hit can be written to the client
// without re-encoding.
//
// Example:
//
//	c, err := cache.New(ctx, cache.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//	c.Set(key, body)
//	if body, ok := c.Get(key); ok {
//	    // serve body
//	}
type Cache struct {
	store *bigcache.BigCache
	ttl   time.Duration
}

// New creates a cache. The context bounds the background cleanup
// goroutine; Close stops it as well.
func New(ctx context.Context, cfg Config) (*Cache, error) {
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %v", cfg.TTL)
	}
	if cfg.MaxMB < 1 {
		return nil, fmt.Errorf("cache size must be at least 1 MB, got %d", cfg.MaxMB)
	}
	if cfg.Shards <= 0 {
		cfg.Shards = DefaultConfig().Shards
	}
	if cfg.CleanWindow <= 0 {
		cfg.CleanWindow = cfg.TTL
	}

	bc := bigcache.DefaultConfig(cfg.TTL)
	bc.Shards = cfg.Shards
	bc.CleanWindow = cfg.CleanWindow
	bc.HardMaxCacheSize = cfg.MaxMB
	bc.MaxEntriesInWindow = 10_000
	bc.MaxEntrySize = 2048
	bc.Verbose = false

	store, err := bigcache.New(ctx, bc)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	return &Cache{store: store, ttl: cfg.TTL}, nil
}

// TTL returns the entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a value by key. Expired entries may still be returned
// until the next clean window runs.
func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := c.store.Get(key)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a value. Entries larger than a shard are rejected with an
// error and the caller should simply serve uncached.
func (c *Cache) Set(key string, value []byte) error {
	if err := c.store.Set(key, value); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes a specific cache entry by key. Missing keys are not an error.
func (c *Cache) Delete(key string) error {
	if err := c.store.Delete(key); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

// Clear removes all entries.
func (c *Cache) Clear() error {
	return c.store.Reset()
}

// GetStats returns a snapshot of current cache performance statistics.
func (c *Cache) GetStats() Stats {
	s := c.store.Stats()
	return Stats{
		Hits:       s.Hits,
		Misses:     s.Misses,
		Collisions: s.Collisions,
		Entries:    c.store.Len(),
		Capacity:   c.store.Capacity(),
	}
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Close stops the cleanup goroutine and releases memory.
func (c *Cache) Close() error {
	return c.store.Close()
}

// GenerateKey creates a cache key from a namespace and parameters.
// Parameters are serialized to JSON, so map keys are ordered and two
// equal parameter sets produce the same key.
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}
