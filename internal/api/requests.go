// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package api

// Query parameter structs validated with go-playground/validator. Field
// names in error messages come from the query tag.

// RecommendRequest holds parameters for GET /api/v1/recommendations.
type RecommendRequest struct {
	UserID int    `query:"user_id" validate:"min=0"`
	Query  string `query:"q" validate:"omitempty,max=500,maxterms=20"`
	N      int    `query:"n" validate:"min=0"`
}

// TopRatedRequest holds parameters for GET /api/v1/recommendations/top-rated.
type TopRatedRequest struct {
	N int `query:"n" validate:"min=0"`
}

// SimilarRequest holds parameters for GET /api/v1/recommendations/similar.
type SimilarRequest struct {
	Query string `query:"q" validate:"required,max=500,maxterms=20"`
	N     int    `query:"n" validate:"min=0"`
}

// UserRecommendationsRequest holds parameters for
// GET /api/v1/recommendations/user/{userID}.
type UserRecommendationsRequest struct {
	UserID int `query:"user_id" validate:"min=0"`
	N      int `query:"n" validate:"min=0"`
}
