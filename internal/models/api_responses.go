// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"strategy": "rating", "count": 2, "items": [...]},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 1,
//	    "snapshot_id": "5f1c..."
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "n must be at most 100",
//	    "details": {"field": "n"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and caching.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	SnapshotID  string    `json:"snapshot_id,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Error codes:
//   - VALIDATION_ERROR: Invalid query parameters (400)
//   - INVALID_USER_ID: Negative or malformed user id (400)
//   - NOT_READY: No catalog snapshot published yet (503)
//   - RECOMMENDATION_ERROR: Unexpected engine failure (500)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendationItem is one product in a recommendation list.
type RecommendationItem struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	ImageRefs   []string `json:"image_refs"`
	Source      string   `json:"source,omitempty"`
}

// RecommendationResponse is the payload of every recommendation endpoint.
// Items is never null; an empty list means no match.
type RecommendationResponse struct {
	Strategy string               `json:"strategy"`
	UserID   int                  `json:"user_id,omitempty"`
	Query    string               `json:"query,omitempty"`
	N        int                  `json:"n"`
	Count    int                  `json:"count"`
	Items    []RecommendationItem `json:"items"`
}

// CatalogStatus describes the published snapshot.
type CatalogStatus struct {
	Ready               bool          `json:"ready"`
	SnapshotID          string        `json:"snapshot_id,omitempty"`
	BuiltAt             time.Time     `json:"built_at,omitempty"`
	BuildDurationMS     int64         `json:"build_duration_ms"`
	Items               int           `json:"items"`
	Users               int           `json:"users"`
	Interactions        int           `json:"interactions"`
	SkippedInteractions int           `json:"skipped_interactions"`
	VocabularySize      int           `json:"vocabulary_size"`
	Normalization       Normalization `json:"normalization"`
}

// Normalization reports row-level outcomes of the last catalog load.
type Normalization struct {
	RowsRead            int `json:"rows_read"`
	RowsSkipped         int `json:"rows_skipped"`
	Duplicates          int `json:"duplicates"`
	InvalidRatings      int `json:"invalid_ratings"`
	InvalidReviewCounts int `json:"invalid_review_counts"`
}

// HealthStatus is returned by the liveness and readiness probes.
type HealthStatus struct {
	Status     string    `json:"status"` // "ok" or "starting"
	Ready      bool      `json:"ready"`
	SnapshotID string    `json:"snapshot_id,omitempty"`
	Uptime     float64   `json:"uptime_seconds"`
	Version    string    `json:"version,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
