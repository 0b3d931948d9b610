// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_recommendations_total",
			Help: "Total recommendation requests served, by strategy",
		},
		[]string{"strategy"},
	)

	RecommendationEmpty = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_recommendations_empty_total",
			Help: "Recommendation requests that returned no items, by strategy",
		},
		[]string{"strategy"},
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_recommendation_errors_total",
			Help: "Recommendation requests that failed, by error type",
		},
		[]string{"error_type"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shelfwise_recommendation_duration_seconds",
			Help:    "Time spent computing a recommendation list",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"strategy"},
	)

	RecommendationItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shelfwise_recommendation_items",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	// Snapshot / Catalog Metrics
	SnapshotBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shelfwise_snapshot_build_duration_seconds",
			Help:    "Duration of snapshot builds (catalog load through model fit)",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	SnapshotBuildErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_snapshot_build_errors_total",
			Help: "Failed snapshot builds by stage",
		},
		[]string{"stage"}, // "load", "normalize", "interactions", "build", "publish"
	)

	SnapshotLastPublished = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shelfwise_snapshot_last_published_timestamp",
			Help: "Unix timestamp of the last published snapshot",
		},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shelfwise_catalog_items",
			Help: "Items in the published catalog",
		},
	)

	CatalogUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shelfwise_catalog_users",
			Help: "Users with interaction history in the published snapshot",
		},
	)

	CatalogVocabulary = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shelfwise_catalog_vocabulary_terms",
			Help: "Distinct terms in the content index",
		},
	)

	CatalogRowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_catalog_rows_skipped_total",
			Help: "Catalog rows dropped or coerced during normalization, by reason",
		},
		[]string{"reason"}, // "empty_name", "duplicate", "invalid_rating", "invalid_review_count", "unknown_item"
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one served recommendation list.
func RecordRecommendation(strategy string, items int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(strategy).Inc()
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	RecommendationItems.Observe(float64(items))
	if items == 0 {
		RecommendationEmpty.WithLabelValues(strategy).Inc()
	}
}

// RecordRecommendationError records a failed recommendation request.
func RecordRecommendationError(errorType string) {
	RecommendationErrors.WithLabelValues(errorType).Inc()
}

// SnapshotGauges are the sizes reported after a snapshot is published.
type SnapshotGauges struct {
	Items      int
	Users      int
	Vocabulary int
}

// RecordSnapshotPublished updates catalog gauges for a freshly published snapshot.
func RecordSnapshotPublished(g SnapshotGauges, buildDuration time.Duration) {
	SnapshotBuildDuration.Observe(buildDuration.Seconds())
	SnapshotLastPublished.Set(float64(time.Now().Unix()))
	CatalogItems.Set(float64(g.Items))
	CatalogUsers.Set(float64(g.Users))
	CatalogVocabulary.Set(float64(g.Vocabulary))
}

// RecordBuildError records a failed build stage.
func RecordBuildError(stage string) {
	SnapshotBuildErrors.WithLabelValues(stage).Inc()
}

// RecordRowsSkipped adds count to the skipped-row counter for reason.
// Zero counts are ignored.
func RecordRowsSkipped(reason string, count int) {
	if count <= 0 {
		return
	}
	CatalogRowsSkipped.WithLabelValues(reason).Add(float64(count))
}

// RecordCacheLookup records a response cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// Breaker states as exported on circuit_breaker_state.
const (
	BreakerClosed   = 0
	BreakerHalfOpen = 1
	BreakerOpen     = 2
)

// RecordBreakerTransition records a state change and updates the state gauge.
func RecordBreakerTransition(name, from, to string, toValue int) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(float64(toValue))
}

// RecordBreakerRequest records the outcome of a call through a breaker.
func RecordBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// StatusLabel converts an HTTP status code to a metric label.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
