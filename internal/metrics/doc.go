// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

/*
Package metrics provides Prometheus metrics for Shelfwise.

Metrics are registered on the default registry through promauto and exposed
at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Labels method, endpoint, status_code
  - api_request_duration_seconds: Labels method, endpoint
  - api_active_requests
  - api_rate_limit_hits_total: Labels endpoint

Recommendation Metrics:
  - shelfwise_recommendations_total: Labels strategy
  - shelfwise_recommendations_empty_total: Labels strategy
  - shelfwise_recommendation_errors_total: Labels error_type
  - shelfwise_recommendation_duration_seconds: Labels strategy
  - shelfwise_recommendation_items

Snapshot Metrics:
  - shelfwise_snapshot_build_duration_seconds
  - shelfwise_snapshot_build_errors_total: Labels stage
  - shelfwise_snapshot_last_published_timestamp
  - shelfwise_catalog_items, shelfwise_catalog_users, shelfwise_catalog_vocabulary_terms
  - shelfwise_catalog_rows_skipped_total: Labels reason

Cache and Circuit Breaker Metrics:
  - cache_hits_total, cache_misses_total: Labels cache_type
  - circuit_breaker_state: Labels name (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total: Labels name, result
  - circuit_breaker_state_transitions_total: Labels name, from_state, to_state

# Usage

	start := time.Now()
	resp, err := engine.Recommend(ctx, req)
	if err != nil {
	    metrics.RecordRecommendationError("engine")
	    return err
	}
	metrics.RecordRecommendation(string(resp.Strategy), len(resp.Items), time.Since(start))

All Record* helpers are safe for concurrent use.
*/
package metrics
