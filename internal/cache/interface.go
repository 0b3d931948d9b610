// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package cache

// Cacher defines the interface the API layer depends on. Cache
// implements it; Noop is used when response caching is disabled.
type Cacher interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Clear() error
	GetStats() Stats
}

// Noop never stores anything.
type Noop struct{}

// Get always misses.
func (Noop) Get(string) ([]byte, bool) { return nil, false }

// Set discards the value.
func (Noop) Set(string, []byte) error { return nil }

// Clear does nothing.
func (Noop) Clear() error { return nil }

// GetStats returns zero stats.
func (Noop) GetStats() Stats { return Stats{} }

// Verify interface implementations at compile time
var (
	_ Cacher = (*Cache)(nil)
	_ Cacher = Noop{}
)
