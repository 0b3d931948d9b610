// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

// recommendParams mirrors the shape of the API's query parameter structs.
type recommendParams struct {
	UserID int    `query:"user_id" validate:"min=0"`
	Query  string `query:"q" validate:"omitempty,max=500,maxterms=3"`
	N      int    `query:"n" validate:"min=1,max=100"`
	Metric string `query:"metric" validate:"omitempty,oneof=cosine jaccard"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     recommendParams
		wantField string
		wantTag   string
	}{
		{"valid cold start", recommendParams{UserID: 0, N: 10}, "", ""},
		{"valid query", recommendParams{UserID: 4, Query: "shampoo,lipstick", N: 5}, "", ""},
		{"valid blank terms ignored", recommendParams{Query: "a,,b, ,c", N: 1}, "", ""},
		{"negative user", recommendParams{UserID: -1, N: 10}, "user_id", "min"},
		{"zero n", recommendParams{N: 0}, "n", "min"},
		{"n above max", recommendParams{N: 101}, "n", "max"},
		{"too many terms", recommendParams{Query: "a,b,c,d", N: 1}, "q", "maxterms"},
		{"query too long", recommendParams{Query: strings.Repeat("x", 501), N: 1}, "q", "max"},
		{"bad metric", recommendParams{N: 1, Metric: "pearson"}, "metric", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateStruct() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateStruct() error = nil, want %s/%s", tt.wantField, tt.wantTag)
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("Errors() len = %d, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	err := ValidateStruct(&recommendParams{N: 500})
	if err == nil {
		t.Fatal("ValidateStruct() error = nil")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "n must be at most 100" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "n must be at most 100")
	}
	if apiErr.Details["field"] != "n" {
		t.Errorf("Details[field] = %v, want n", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&recommendParams{UserID: -2, N: 0})
	if err == nil {
		t.Fatal("ValidateStruct() error = nil")
	}

	apiErr := err.ToAPIError()
	if !strings.Contains(apiErr.Message, "user_id") || !strings.Contains(apiErr.Message, "n:") {
		t.Errorf("Message = %q, want both fields", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" || apiErr.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", apiErr)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name  string
		input recommendParams
		want  string
	}{
		{"min int", recommendParams{UserID: -1, N: 1}, "user_id must be at least 0"},
		{"max string", recommendParams{Query: strings.Repeat("x", 501), N: 1}, "q must be at most 500 characters"},
		{"maxterms", recommendParams{Query: "a,b,c,d", N: 1}, "q must contain at most 3 comma-separated terms"},
		{"oneof", recommendParams{N: 1, Metric: "x"}, "metric must be one of: cosine jaccard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() error = nil")
			}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountTerms(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a,b", 2},
		{" , a ,, b ,", 2},
	}

	for _, tt := range tests {
		if got := CountTerms(tt.in); got != tt.want {
			t.Errorf("CountTerms(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
