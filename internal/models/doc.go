// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

// Package models defines the JSON shapes returned by the Shelfwise HTTP API.
//
// Every endpoint wraps its payload in APIResponse. Recommendation lists use
// RecommendationResponse; catalog and health endpoints have their own types.
// The recommend package owns the domain types; handlers map them here so the
// wire format can evolve separately.
package models
