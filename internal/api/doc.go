// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

/*
Package api provides the HTTP JSON API for Shelfwise.

Routes:

	GET /api/v1/health/live                       process is up
	GET /api/v1/health/ready                      200 once a snapshot is published, else 503
	GET /api/v1/recommendations?user_id=&q=&n=    hybrid orchestrator
	GET /api/v1/recommendations/top-rated?n=      rating ranker
	GET /api/v1/recommendations/similar?q=&n=     content similarity, comma-separated queries, at most n
	GET /api/v1/recommendations/user/{userID}?n=  collaborative model only
	GET /api/v1/catalog/status                    snapshot statistics
	GET /metrics                                  Prometheus

Every JSON response uses the models.APIResponse envelope:

	{"status":"success","data":{...},"metadata":{"timestamp":"...","snapshot_id":"..."}}
	{"status":"error","error":{"code":"NOT_READY","message":"..."},"metadata":{...}}

Error codes:

  - VALIDATION_ERROR (400): malformed n or q
  - INVALID_USER_ID (400): user_id is not a non-negative integer
  - NOT_READY (503): no snapshot published yet
  - RECOMMENDATION_ERROR (500): unexpected engine failure
  - RATE_LIMIT_EXCEEDED (429)

Middleware stack (in order): request id with logging context, RealIP,
Recoverer, CORS, Prometheus instrumentation, access log, gzip
compression; then per group a per-IP rate limit and security headers.

Recommendation bodies are cached in a bigcache-backed response cache
keyed by snapshot id, endpoint and normalized parameters. Cache hits
set metadata.cached and are counted on cache_hits_total{cache_type="response"}.
*/
package api
