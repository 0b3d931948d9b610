// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalize_MissingNameColumn(t *testing.T) {
	table := RawTable{
		Columns: []string{"Brand", "Rating"},
		Rows:    [][]string{{"Acme", "4.5"}},
	}

	_, err := Normalize(table, DefaultSchema())
	if err == nil {
		t.Fatal("Normalize() error = nil, want SchemaError")
	}
	if !errors.Is(err, ErrSchema) {
		t.Errorf("errors.Is(err, ErrSchema) = false for %v", err)
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("errors.As(err, *SchemaError) = false for %T", err)
	}
	if !reflect.DeepEqual(schemaErr.Missing, []string{"Name"}) {
		t.Errorf("Missing = %v, want [Name]", schemaErr.Missing)
	}
}

func TestNormalize_TrimsColumnNames(t *testing.T) {
	table := RawTable{
		Columns: []string{"  Name ", " Rating", "ReviewCount  "},
		Rows:    [][]string{{"Lipstick", "4.2", "17"}},
	}

	c, err := Normalize(table, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	item := c.Item(0)
	if item.Rating != 4.2 {
		t.Errorf("Rating = %v, want 4.2", item.Rating)
	}
	if item.ReviewCount != 17 {
		t.Errorf("ReviewCount = %d, want 17", item.ReviewCount)
	}
}

func TestNormalize_CoercesToZero(t *testing.T) {
	table := RawTable{
		Columns: []string{"Name", "Rating", "ReviewCount"},
		Rows: [][]string{
			{"A", "not-a-number", "many"},
			{"B", "", ""},
			{"C", "NaN", "-3"},
			{"D", "7.5", "12.9"},
		},
	}

	c, err := Normalize(table, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	tests := []struct {
		name        string
		wantRating  float64
		wantReviews int
	}{
		{"A", 0, 0},
		{"B", 0, 0},
		{"C", 0, 0},
		{"D", MaxRating, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := c.IndexOf(tt.name)
			if !ok {
				t.Fatalf("IndexOf(%q) not found", tt.name)
			}
			item := c.Item(i)
			if item.Rating != tt.wantRating {
				t.Errorf("Rating = %v, want %v", item.Rating, tt.wantRating)
			}
			if item.ReviewCount != tt.wantReviews {
				t.Errorf("ReviewCount = %d, want %d", item.ReviewCount, tt.wantReviews)
			}
		})
	}

	stats := c.Stats()
	if stats.InvalidRatings != 2 {
		t.Errorf("InvalidRatings = %d, want 2", stats.InvalidRatings)
	}
	if stats.InvalidReviewCounts != 1 {
		t.Errorf("InvalidReviewCounts = %d, want 1", stats.InvalidReviewCounts)
	}
}

func TestNormalize_DedupKeepsFirst(t *testing.T) {
	table := RawTable{
		Columns: []string{"Name", "Brand", "Rating"},
		Rows: [][]string{
			{"Shampoo", "First", "3"},
			{"Conditioner", "X", "4"},
			{" Shampoo ", "Second", "5"},
			{"", "Nobody", "5"},
		},
	}

	c, err := Normalize(table, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if got := c.Item(0).Brand; got != "First" {
		t.Errorf("Item(0).Brand = %q, want %q", got, "First")
	}
	if got := c.Item(1).Name; got != "Conditioner" {
		t.Errorf("Item(1).Name = %q, want %q", got, "Conditioner")
	}

	stats := c.Stats()
	if stats.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", stats.Duplicates)
	}
	if stats.RowsSkipped != 1 {
		t.Errorf("RowsSkipped = %d, want 1", stats.RowsSkipped)
	}
	if stats.RowsRead != 4 {
		t.Errorf("RowsRead = %d, want 4", stats.RowsRead)
	}
}

func TestNormalize_TextProfile(t *testing.T) {
	table := RawTable{
		Columns: []string{"Name", "Brand", "Category", "Tags", "Description"},
		Rows: [][]string{
			{"Silky  SHAMPOO", "  Acme\tLabs ", "Hair Care", "wash,  clean", "Gentle\n formula"},
		},
	}

	c, err := Normalize(table, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	want := "silky shampoo acme labs hair care gentle formula wash, clean"
	if got := c.Item(0).TextProfile; got != want {
		t.Errorf("TextProfile = %q, want %q", got, want)
	}
}

func TestNormalize_ItemIDAndImages(t *testing.T) {
	table := RawTable{
		Columns: []string{"ProdID", "Name", "ImageURL"},
		Rows: [][]string{
			{"p-1", "A", "http://a/1.jpg | http://a/2.jpg|"},
			{"", "B", ""},
		},
	}

	c, err := Normalize(table, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	a := c.Item(0)
	if a.ID != "p-1" {
		t.Errorf("A.ID = %q, want %q", a.ID, "p-1")
	}
	if !reflect.DeepEqual(a.ImageRefs, []string{"http://a/1.jpg", "http://a/2.jpg"}) {
		t.Errorf("A.ImageRefs = %v", a.ImageRefs)
	}

	b := c.Item(1)
	if b.ID != "row-1" {
		t.Errorf("B.ID = %q, want %q", b.ID, "row-1")
	}
	if b.ImageRefs == nil || len(b.ImageRefs) != 0 {
		t.Errorf("B.ImageRefs = %#v, want empty non-nil slice", b.ImageRefs)
	}
}

func TestNormalize_CustomSchema(t *testing.T) {
	table := RawTable{
		Columns: []string{"title", "stars"},
		Rows:    [][]string{{"Widget", "3.5"}},
	}
	schema := Schema{NameColumn: "Title", RatingColumn: "STARS"}

	c, err := Normalize(table, schema)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got := c.Item(0).Rating; got != 3.5 {
		t.Errorf("Rating = %v, want 3.5", got)
	}
}

func TestNormalize_ShortRows(t *testing.T) {
	table := RawTable{
		Columns: []string{"Name", "Brand", "Rating"},
		Rows:    [][]string{{"Only name"}},
	}

	c, err := Normalize(table, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	item := c.Item(0)
	if item.Brand != "" || item.Rating != 0 {
		t.Errorf("Item = %+v, want empty brand and zero rating", item)
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"4.5", 4.5, true},
		{" 3 ", 3, true},
		{"", 0, true},
		{"-1", 0, true},
		{"9", MaxRating, true},
		{"abc", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseRating(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseRating(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseReviewCount(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"10", 10, true},
		{"12.0", 12, true},
		{"", 0, true},
		{"-5", 0, true},
		{"1e12", 2147483647, true},
		{"lots", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseReviewCount(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseReviewCount(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFold(t *testing.T) {
	if Fold("SHAMPOO") != Fold("shampoo") {
		t.Errorf("Fold(SHAMPOO) = %q, Fold(shampoo) = %q", Fold("SHAMPOO"), Fold("shampoo"))
	}
	if Fold("Ｓｈａｍｐｏｏ") != Fold("shampoo") {
		t.Errorf("Fold(fullwidth) = %q, want %q", Fold("Ｓｈａｍｐｏｏ"), Fold("shampoo"))
	}
}

func TestDedupeByName(t *testing.T) {
	in := []Item{{Name: "A", Brand: "1"}, {Name: "B"}, {Name: "A", Brand: "2"}}
	got := DedupeByName(in)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Brand != "1" {
		t.Errorf("kept Brand = %q, want first occurrence", got[0].Brand)
	}
	if len(in) != 3 {
		t.Error("input slice was modified")
	}
}
