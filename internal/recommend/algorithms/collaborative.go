// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package algorithms

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/tomtom215/shelfwise/internal/catalog"
)

// Similarity metrics supported by the collaborative model.
const (
	MetricCosine  = "cosine"
	MetricJaccard = "jaccard"
)

// CollaborativeConfig contains configuration for user-based collaborative
// filtering.
type CollaborativeConfig struct {
	// K is the number of neighbors kept per user.
	// Typical range: 20-100.
	K int

	// MinSimilarity is an exclusive lower bound: a neighbor must be
	// strictly more similar than this.
	MinSimilarity float64

	// SimilarityMetric specifies which similarity function to use.
	// Options: "cosine", "jaccard".
	SimilarityMetric string

	// Shrinkage adds a penalty for pairs with few co-interactions.
	// Regularizes similarity: sim = raw_sim * n / (n + shrinkage)
	Shrinkage float64

	// MinCommonItems is the minimum number of co-interacted items
	// required for a valid similarity computation.
	MinCommonItems int

	// NumWorkers is the number of parallel workers.
	NumWorkers int
}

// DefaultCollaborativeConfig returns default collaborative configuration.
func DefaultCollaborativeConfig() CollaborativeConfig {
	return CollaborativeConfig{
		K:                50,
		MinSimilarity:    0,
		SimilarityMetric: MetricCosine,
		Shrinkage:        0,
		MinCommonItems:   1,
		NumWorkers:       4,
	}
}

// neighbor represents a similar user with their similarity score.
type neighbor struct {
	ID         int
	Similarity float64
}

// CollaborativeModel implements user-based collaborative filtering.
// It recommends items that similar users have interacted with.
//
// For a target user u and an item i that u has not seen:
//
//	score(u, i) = sum_{v in N(u)} sim(u, v) * w(v, i)
//
// where N(u) is the set of K most similar users to u. Neighbor lists are
// precomputed at build time; the model is immutable afterwards.
type CollaborativeModel struct {
	cat    *catalog.Catalog
	config CollaborativeConfig

	// userVectors stores user interaction vectors (catalog index -> weight)
	userVectors map[int]map[int]float64

	// userNeighbors stores precomputed neighbor lists
	userNeighbors map[int][]neighbor

	// users holds every user id with history, ascending
	users []int

	skipped int
}

// BuildCollaborativeModel fits the model from interactions. Interactions
// naming items absent from the catalog are skipped and counted. Repeated
// (user, item) pairs keep the maximum weight.
//
//nolint:gocritic // rangeValCopy: Interaction passed by value in range, acceptable for clarity
func BuildCollaborativeModel(ctx context.Context, cat *catalog.Catalog, interactions []catalog.Interaction, cfg CollaborativeConfig) (*CollaborativeModel, error) {
	d := DefaultCollaborativeConfig()
	if cfg.K <= 0 {
		cfg.K = d.K
	}
	if cfg.SimilarityMetric == "" {
		cfg.SimilarityMetric = d.SimilarityMetric
	}
	if cfg.MinCommonItems <= 0 {
		cfg.MinCommonItems = d.MinCommonItems
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = d.NumWorkers
	}
	switch cfg.SimilarityMetric {
	case MetricCosine, MetricJaccard:
	default:
		return nil, fmt.Errorf("unknown similarity metric %q", cfg.SimilarityMetric)
	}

	m := &CollaborativeModel{
		cat:           cat,
		config:        cfg,
		userVectors:   make(map[int]map[int]float64),
		userNeighbors: make(map[int][]neighbor),
	}

	for _, inter := range interactions {
		if inter.UserID <= 0 {
			continue
		}
		item, ok := cat.IndexOf(inter.ItemName)
		if !ok {
			m.skipped++
			continue
		}
		if m.userVectors[inter.UserID] == nil {
			m.userVectors[inter.UserID] = make(map[int]float64)
		}
		if c, seen := m.userVectors[inter.UserID][item]; !seen || inter.Weight > c {
			m.userVectors[inter.UserID][item] = inter.Weight
		}
	}

	m.users = make([]int, 0, len(m.userVectors))
	for uid := range m.userVectors {
		m.users = append(m.users, uid)
	}
	sort.Ints(m.users)

	// Build item-user index
	itemUsers := make(map[int][]int)
	for _, uid := range m.users {
		for item := range m.userVectors[uid] {
			itemUsers[item] = append(itemUsers[item], uid)
		}
	}

	norms := make(map[int]float64, len(m.users))
	for _, uid := range m.users {
		norms[uid] = l2Norm(m.userVectors[uid])
	}

	if ContextCancelled(ctx) {
		return nil, fmt.Errorf("collaborative build canceled: %w", ctx.Err())
	}

	results := make([][]neighbor, len(m.users))
	p := pool.New().WithMaxGoroutines(cfg.NumWorkers)
	for i, uid := range m.users {
		p.Go(func() {
			if ContextCancelled(ctx) {
				return
			}
			results[i] = m.computeUserNeighbors(uid, itemUsers, norms)
		})
	}
	p.Wait()

	if ContextCancelled(ctx) {
		return nil, fmt.Errorf("collaborative build canceled: %w", ctx.Err())
	}

	for i, uid := range m.users {
		if len(results[i]) > 0 {
			m.userNeighbors[uid] = results[i]
		}
	}

	return m, nil
}

// computeUserNeighbors computes the K most similar users for a given
// user. Only users sharing at least one item are considered.
func (m *CollaborativeModel) computeUserNeighbors(userID int, itemUsers map[int][]int, norms map[int]float64) []neighbor {
	userVec := m.userVectors[userID]

	dots := make(map[int]float64)
	common := make(map[int]int)
	for _, item := range sortedKeys(userVec) {
		w := userVec[item]
		for _, other := range itemUsers[item] {
			if other == userID {
				continue
			}
			dots[other] += w * m.userVectors[other][item]
			common[other]++
		}
	}

	neighbors := make([]neighbor, 0, len(common))
	for other, n := range common {
		if n < m.config.MinCommonItems {
			continue
		}

		var sim float64
		switch m.config.SimilarityMetric {
		case MetricJaccard:
			sim = float64(n) / float64(len(userVec)+len(m.userVectors[other])-n)
		default:
			if norms[userID] == 0 || norms[other] == 0 {
				continue
			}
			sim = dots[other] / (norms[userID] * norms[other])
		}

		// Apply shrinkage
		if m.config.Shrinkage > 0 {
			sim = sim * float64(n) / (float64(n) + m.config.Shrinkage)
		}

		if sim > m.config.MinSimilarity {
			neighbors = append(neighbors, neighbor{ID: other, Similarity: sim})
		}
	}

	// Sort by similarity (descending) and take top K
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].ID < neighbors[j].ID
	})

	if len(neighbors) > m.config.K {
		neighbors = neighbors[:m.config.K]
	}

	return neighbors
}

// HasHistory reports whether the user has at least one interaction with
// a catalog item.
func (m *CollaborativeModel) HasHistory(userID int) bool {
	if m == nil || userID <= 0 {
		return false
	}
	_, ok := m.userVectors[userID]
	return ok
}

// Recommend returns up to n items the user has not interacted with,
// ranked by aggregate neighbor weight. Equal scores keep catalog order.
// User 0, unseen users and users without neighbors get an empty slice.
func (m *CollaborativeModel) Recommend(userID, n int) []catalog.Item {
	if m == nil || userID <= 0 || n <= 0 {
		return []catalog.Item{}
	}

	neighbors := m.userNeighbors[userID]
	if len(neighbors) == 0 {
		return []catalog.Item{}
	}

	seen := m.userVectors[userID]
	scores := make(map[int]float64)
	for _, nb := range neighbors {
		for item, w := range m.userVectors[nb.ID] {
			if _, ok := seen[item]; ok {
				continue
			}
			scores[item] += nb.Similarity * w
		}
	}

	ranked := make([]scored, 0, len(scores))
	for item, s := range scores {
		ranked = append(ranked, scored{index: item, score: s})
	}
	rankScored(ranked)

	return takeItems(m.cat, ranked, n)
}

// UserCount returns the number of users with history.
func (m *CollaborativeModel) UserCount() int {
	return len(m.users)
}

// SkippedInteractions returns how many interactions named items that are
// not in the catalog.
func (m *CollaborativeModel) SkippedInteractions() int {
	return m.skipped
}
