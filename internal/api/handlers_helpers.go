// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shelfwise/internal/cache"
	"github.com/tomtom215/shelfwise/internal/logging"
	"github.com/tomtom215/shelfwise/internal/metrics"
	"github.com/tomtom215/shelfwise/internal/middleware"
	"github.com/tomtom215/shelfwise/internal/models"
	"github.com/tomtom215/shelfwise/internal/recommend"
	"github.com/tomtom215/shelfwise/internal/validation"
)

const responseCacheType = "response"

// maxLogValueLen bounds sanitized values written to the log.
const maxLogValueLen = 256

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	if status >= http.StatusBadRequest {
		w.Header().Set("Cache-Control", "no-store")
	}

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData sends a success envelope around pre-encoded data. The ETag
// is derived from data alone so it is stable across cache hits and
// recomputations of the same snapshot; a matching If-None-Match gets 304.
func respondData(w http.ResponseWriter, r *http.Request, data json.RawMessage, meta models.Metadata) {
	etag := `"` + generateETag(data) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")

	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondErrorDetails(w, status, &models.APIError{Code: code, Message: message}, err)
}

func respondErrorDetails(w http.ResponseWriter, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logging.Error().
			Str("code", logging.SanitizeValue(apiErr.Code, maxLogValueLen)).
			Str("error", logging.SanitizeValue(err.Error(), maxLogValueLen)).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: apiErr,
	})
}

// respondEngineError maps engine errors to API error codes.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrNotReady):
		metrics.RecordRecommendationError("not_ready")
		w.Header().Set("Retry-After", "5")
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Catalog is still loading", nil)
	case errors.Is(err, recommend.ErrInvalidUserID):
		metrics.RecordRecommendationError("invalid_user_id")
		respondError(w, http.StatusBadRequest, "INVALID_USER_ID", "user_id must be a non-negative integer", nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		metrics.RecordRecommendationError("timeout")
		respondError(w, http.StatusServiceUnavailable, "RECOMMENDATION_ERROR", "Recommendation timed out", err)
	default:
		metrics.RecordRecommendationError("internal")
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Failed to generate recommendations", err)
	}
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// paramError describes a query parameter that is not an integer.
func paramError(field string) *models.APIError {
	return &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: field + " must be an integer",
		Details: map[string]interface{}{"field": field, "tag": "integer"},
	}
}

// getIntParam extracts an integer query parameter. A missing value
// yields defaultValue; a malformed one yields ok=false.
func getIntParam(r *http.Request, key string, defaultValue int) (int, bool) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, true
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return intValue, true
}

// parseUserID parses a user id from a query or path value. Missing means
// anonymous (0).
func parseUserID(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, true
	}
	id, err := strconv.Atoi(value)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// toItems converts engine records to API items. The result is never nil.
func toItems(records []recommend.Record) []models.RecommendationItem {
	items := make([]models.RecommendationItem, len(records))
	for i := range records {
		rec := &records[i]
		items[i] = models.RecommendationItem{
			Name:        rec.Name,
			Brand:       rec.Brand,
			Rating:      rec.Rating,
			ReviewCount: rec.ReviewCount,
			ImageRefs:   rec.ImageRefs,
			Source:      string(rec.Source),
		}
	}
	return items
}

// cachedRecommendation serves a recommendation payload from the response
// cache or computes, caches and serves it. The snapshot id is part of
// the key.
func (h *Handler) cachedRecommendation(
	w http.ResponseWriter,
	r *http.Request,
	namespace string,
	params map[string]interface{},
	compute func(ctx context.Context, s *recommend.Snapshot) (*models.RecommendationResponse, error),
) {
	snap, err := h.engine.Snapshot()
	if err != nil {
		respondEngineError(w, err)
		return
	}

	meta := models.Metadata{
		Timestamp:  time.Now(),
		SnapshotID: snap.ID(),
		RequestID:  middleware.GetRequestID(r.Context()),
	}

	params["snapshot"] = snap.ID()
	key := cache.GenerateKey(namespace, params)

	if body, ok := h.cache.Get(key); ok {
		metrics.RecordCacheLookup(responseCacheType, true)
		meta.Cached = true
		respondData(w, r, body, meta)
		return
	}
	metrics.RecordCacheLookup(responseCacheType, false)

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := compute(ctx, snap)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	elapsed := time.Since(start)
	metrics.RecordRecommendation(resp.Strategy, resp.Count, elapsed)

	data, err := json.Marshal(resp)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Failed to encode recommendations", err)
		return
	}
	if err := h.cache.Set(key, data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Str("namespace", namespace).Msg("response not cached")
	}

	meta.QueryTimeMS = elapsed.Milliseconds()
	respondData(w, r, data, meta)
}
