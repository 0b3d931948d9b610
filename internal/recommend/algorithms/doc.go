// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

// Package algorithms implements the three rankers behind the hybrid
// recommendation engine.
//
// # Rankers
//
// Popularity:
//   - RatingRanker: weighted rating plus capped review count, no training
//
// Content-Based Filtering:
//   - ContentIndex: TF-IDF cosine similarity over item text profiles,
//     queried by product name
//
// Collaborative Filtering:
//   - CollaborativeModel: user-user cosine (or Jaccard) neighbors with
//     aggregated neighbor weights
//
// # Building
//
// ContentIndex and CollaborativeModel are built once from a
// *catalog.Catalog and are immutable afterwards:
//
//	idx, err := algorithms.BuildContentIndex(ctx, cat, algorithms.DefaultContentConfig())
//	if err != nil {
//	    return err
//	}
//	similar := idx.SimilarMulti("shampoo, conditioner", 10)
//
//	cf, err := algorithms.BuildCollaborativeModel(ctx, cat, interactions,
//	    algorithms.DefaultCollaborativeConfig())
//	if err != nil {
//	    return err
//	}
//	forUser := cf.Recommend(42, 10)
//
// # Determinism
//
// Every ranking breaks score ties by catalog order, so identical inputs
// always produce identical outputs.
//
// # Thread Safety
//
// All built structures are read-only and safe for concurrent queries
// without locking.
package algorithms
