// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

// Package recommend implements the hybrid product recommendation engine.
//
// # Architecture
//
// The engine combines three signal sources:
//
//   - Popularity: weighted rating and review count (anonymous users)
//   - Content-Based Filtering: TF-IDF similarity to a named product
//   - Collaborative Filtering: items liked by similar users
//
// A Snapshot bundles the catalog with all three models. It is built once
// with Build and never mutated; requests run lock-free against it.
//
// # Lifecycle
//
//	raw rows -> catalog.Normalize -> Build -> Engine.Publish -> Engine.Recommend
//
// Requests arriving before Publish fail with ErrNotReady.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	snap, err := engine.Build(ctx, cat, interactions)
//	if err != nil {
//	    return err
//	}
//	if err := engine.Publish(snap); err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    UserID: 42,
//	    Query:  "shampoo, conditioner",
//	    N:      10,
//	})
//
// # Thread Safety
//
// Engine and Snapshot are safe for concurrent use. The published snapshot
// is held in an atomic pointer; there is no process-wide cache.
package recommend
