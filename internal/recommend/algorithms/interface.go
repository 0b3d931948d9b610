// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package algorithms

import (
	"context"
	"math"
	"sort"

	"github.com/tomtom215/shelfwise/internal/catalog"
)

// scored pairs a catalog position with a score.
type scored struct {
	index int
	score float64
}

// rankScored sorts by score descending. Equal scores keep catalog order,
// which makes every ranking in this package deterministic.
func rankScored(s []scored) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].score != s[j].score {
			return s[i].score > s[j].score
		}
		return s[i].index < s[j].index
	})
}

// takeItems maps the first n ranked positions to catalog items.
func takeItems(cat *catalog.Catalog, ranked []scored, n int) []catalog.Item {
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]catalog.Item, 0, n)
	for _, s := range ranked[:n] {
		out = append(out, cat.Item(s.index))
	}
	return out
}

// l2Norm returns the Euclidean norm of a sparse vector.
func l2Norm(v map[int]float64) float64 {
	var sum float64
	for _, k := range sortedKeys(v) {
		sum += v[k] * v[k]
	}
	return math.Sqrt(sum)
}

// sortedKeys returns the keys of v in ascending order so floating-point
// sums over v do not depend on map iteration order.
func sortedKeys(v map[int]float64) []int {
	keys := make([]int, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
