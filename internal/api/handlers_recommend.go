// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/shelfwise/internal/middleware"
	"github.com/tomtom215/shelfwise/internal/models"
	"github.com/tomtom215/shelfwise/internal/recommend"
)

// Recommend handles GET /api/v1/recommendations?user_id=&q=&n=
// and runs the hybrid orchestrator.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r.URL.Query().Get("user_id"))
	if !ok {
		respondEngineError(w, recommend.ErrInvalidUserID)
		return
	}
	n, ok := getIntParam(r, "n", 0)
	if !ok {
		respondErrorDetails(w, http.StatusBadRequest, paramError("n"), nil)
		return
	}

	req := RecommendRequest{
		UserID: userID,
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
		N:      n,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	params := map[string]interface{}{"user_id": req.UserID, "q": req.Query, "n": req.N}
	h.cachedRecommendation(w, r, "recommend", params, func(ctx context.Context, _ *recommend.Snapshot) (*models.RecommendationResponse, error) {
		resp, err := h.engine.Recommend(ctx, recommend.Request{
			UserID:    req.UserID,
			Query:     req.Query,
			N:         req.N,
			RequestID: middleware.GetRequestID(r.Context()),
		})
		if err != nil {
			return nil, err
		}
		return &models.RecommendationResponse{
			Strategy: string(resp.Strategy),
			UserID:   resp.Metadata.UserID,
			Query:    resp.Metadata.Query,
			N:        resp.Metadata.N,
			Count:    len(resp.Items),
			Items:    toItems(resp.Items),
		}, nil
	})
}

// TopRated handles GET /api/v1/recommendations/top-rated?n=
func (h *Handler) TopRated(w http.ResponseWriter, r *http.Request) {
	n, ok := getIntParam(r, "n", 0)
	if !ok {
		respondErrorDetails(w, http.StatusBadRequest, paramError("n"), nil)
		return
	}

	req := TopRatedRequest{N: n}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	params := map[string]interface{}{"n": req.N}
	h.cachedRecommendation(w, r, "top-rated", params, func(_ context.Context, s *recommend.Snapshot) (*models.RecommendationResponse, error) {
		records := s.TopRated(req.N)
		return &models.RecommendationResponse{
			Strategy: string(recommend.StrategyRating),
			N:        s.ResolveN(req.N),
			Count:    len(records),
			Items:    toItems(records),
		}, nil
	})
}

// Similar handles GET /api/v1/recommendations/similar?q=&n=
// Each comma-separated part of q contributes its own top n; the
// concatenated list is truncated to n.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	n, ok := getIntParam(r, "n", 0)
	if !ok {
		respondErrorDetails(w, http.StatusBadRequest, paramError("n"), nil)
		return
	}

	req := SimilarRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		N:     n,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	params := map[string]interface{}{"q": req.Query, "n": req.N}
	h.cachedRecommendation(w, r, "similar", params, func(_ context.Context, s *recommend.Snapshot) (*models.RecommendationResponse, error) {
		n := s.ResolveN(req.N)
		records := s.Similar(req.Query, n)
		if len(records) > n {
			records = records[:n]
		}
		return &models.RecommendationResponse{
			Strategy: string(recommend.StrategyContent),
			Query:    req.Query,
			N:        n,
			Count:    len(records),
			Items:    toItems(records),
		}, nil
	})
}

// UserRecommendations handles GET /api/v1/recommendations/user/{userID}?n=
// and returns collaborative results only. Users without history get an
// empty list, not the rating fallback.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(chi.URLParam(r, "userID"))
	if !ok {
		respondEngineError(w, recommend.ErrInvalidUserID)
		return
	}
	n, ok := getIntParam(r, "n", 0)
	if !ok {
		respondErrorDetails(w, http.StatusBadRequest, paramError("n"), nil)
		return
	}

	req := UserRecommendationsRequest{UserID: userID, N: n}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	params := map[string]interface{}{"user_id": req.UserID, "n": req.N}
	h.cachedRecommendation(w, r, "user", params, func(_ context.Context, s *recommend.Snapshot) (*models.RecommendationResponse, error) {
		records := s.ForUser(req.UserID, req.N)
		return &models.RecommendationResponse{
			Strategy: string(recommend.StrategyCollaborative),
			UserID:   req.UserID,
			N:        s.ResolveN(req.N),
			Count:    len(records),
			Items:    toItems(records),
		}, nil
	})
}
