// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package algorithms

import (
	"sort"

	"github.com/tomtom215/shelfwise/internal/catalog"
)

// RatingWeights configures the popularity score.
type RatingWeights struct {
	// RatingWeight multiplies the item rating.
	RatingWeight float64

	// ReviewWeight multiplies the capped review count.
	ReviewWeight float64

	// ReviewCap bounds the review count contribution.
	ReviewCap int
}

// DefaultRatingWeights returns the standard popularity weights.
func DefaultRatingWeights() RatingWeights {
	return RatingWeights{
		RatingWeight: 0.7,
		ReviewWeight: 0.3,
		ReviewCap:    1000,
	}
}

// RatingRanker implements a rating-based popularity ranking. It needs no
// training and is the fallback for anonymous and cold-start users.
//
// The popularity score is computed as:
//
//	score(item) = RatingWeight * rating + ReviewWeight * min(reviewCount, ReviewCap)
type RatingRanker struct {
	weights RatingWeights
}

// NewRatingRanker creates a rating ranker. A zero ReviewCap uses the
// default cap and all-zero weights use the default weights.
func NewRatingRanker(w RatingWeights) *RatingRanker {
	d := DefaultRatingWeights()
	if w.RatingWeight == 0 && w.ReviewWeight == 0 {
		w.RatingWeight = d.RatingWeight
		w.ReviewWeight = d.ReviewWeight
	}
	if w.ReviewCap <= 0 {
		w.ReviewCap = d.ReviewCap
	}
	return &RatingRanker{weights: w}
}

// Score returns the popularity score of one item.
//
//nolint:gocritic // hugeParam: Item passed by value for a pure function
func (r *RatingRanker) Score(item catalog.Item) float64 {
	reviews := item.ReviewCount
	if reviews > r.weights.ReviewCap {
		reviews = r.weights.ReviewCap
	}
	return r.weights.RatingWeight*item.Rating + r.weights.ReviewWeight*float64(reviews)
}

// Rank orders items by descending score and returns at most n of them.
//
// The sort is stable, so equal scores keep input order. Names are
// deduplicated in ranked order before truncating, so the result never
// holds fewer than min(n, distinct names) items. n <= 0 yields an empty
// slice.
func (r *RatingRanker) Rank(items []catalog.Item, n int) []catalog.Item {
	if n <= 0 || len(items) == 0 {
		return []catalog.Item{}
	}

	ranked := make([]scored, len(items))
	for i := range items {
		ranked[i] = scored{index: i, score: r.Score(items[i])}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]catalog.Item, 0, min(n, len(items)))
	seen := make(map[string]struct{}, len(items))
	for _, s := range ranked {
		item := items[s.index]
		if _, dup := seen[item.Name]; dup {
			continue
		}
		seen[item.Name] = struct{}{}
		out = append(out, item)
		if len(out) == n {
			break
		}
	}
	return out
}

// TopRated ranks items with the default weights.
func TopRated(items []catalog.Item, n int) []catalog.Item {
	return NewRatingRanker(DefaultRatingWeights()).Rank(items, n)
}
