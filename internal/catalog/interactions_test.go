// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package catalog

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestExtractInteractions(t *testing.T) {
	table := RawTable{
		Columns: []string{" ID", "Name", "Rating"},
		Rows: [][]string{
			{"1", "X", "4"},
			{"1", "Y", ""},
			{"0", "X", "5"},
			{"", "Y", "5"},
			{"abc", "Z", "5"},
			{"2.0", "Z", "bad"},
			{"3", "  ", "2"},
			{"-4", "X", "1"},
			{"1e30", "Y", "3"},
			{"-3.0", "Y", "3"},
		},
	}

	got, err := ExtractInteractions(table, DefaultSchema())
	if err != nil {
		t.Fatalf("ExtractInteractions() error = %v", err)
	}

	want := []Interaction{
		{UserID: 1, ItemName: "X", Weight: 4},
		{UserID: 1, ItemName: "Y", Weight: 1},
		{UserID: 2, ItemName: "Z", Weight: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractInteractions() = %+v, want %+v", got, want)
	}
}

func TestParseUserID(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"42", 42, true},
		{" 7 ", 7, true},
		{"42.0", 42, true},
		{"1e3", 1000, true},
		{"2147483647", math.MaxInt32, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"-3.0", 0, false},
		{"0.5", 0, false},
		{"4.2", 0, false},
		{"2147483648", 0, false},
		{"99999999999999999999", 0, false},
		{"1e30", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseUserID(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseUserID(%q) = %d, %v, want %d, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractInteractions_MissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		missing []string
	}{
		{"no user column", []string{"Name"}, []string{"ID"}},
		{"no name column", []string{"ID"}, []string{"Name"}},
		{"neither", []string{"Brand"}, []string{"ID", "Name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractInteractions(RawTable{Columns: tt.columns}, DefaultSchema())
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("error = %v, want *SchemaError", err)
			}
			if !reflect.DeepEqual(schemaErr.Missing, tt.missing) {
				t.Errorf("Missing = %v, want %v", schemaErr.Missing, tt.missing)
			}
		})
	}
}
