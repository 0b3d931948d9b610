// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package algorithms

import (
	"math"
	"testing"

	"github.com/tomtom215/shelfwise/internal/catalog"
)

func names(items []catalog.Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Name
	}
	return out
}

func equalNames(got []catalog.Item, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i].Name != want[i] {
			return false
		}
	}
	return true
}

func TestTopRated_Scenario(t *testing.T) {
	items := []catalog.Item{
		{Name: "A", Rating: 5.0, ReviewCount: 100},
		{Name: "B", Rating: 4.0, ReviewCount: 10},
		{Name: "C", Rating: 3.0, ReviewCount: 1},
	}

	got := TopRated(items, 2)
	if !equalNames(got, []string{"A", "B"}) {
		t.Errorf("TopRated() = %v, want [A B]", names(got))
	}
}

func TestRatingRanker_Rank(t *testing.T) {
	items := []catalog.Item{
		{Name: "low", Rating: 1, ReviewCount: 0},
		{Name: "tie-first", Rating: 4, ReviewCount: 10},
		{Name: "capped", Rating: 0, ReviewCount: 50000},
		{Name: "tie-second", Rating: 4, ReviewCount: 10},
		{Name: "low", Rating: 5, ReviewCount: 5000},
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"zero n", 0, []string{}},
		{"negative n", -3, []string{}},
		{"dedup before truncate", 2, []string{"low", "capped"}},
		{"stable ties", 4, []string{"low", "capped", "tie-first", "tie-second"}},
		{"n beyond length", 10, []string{"low", "capped", "tie-first", "tie-second"}},
	}

	r := NewRatingRanker(DefaultRatingWeights())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Rank(items, tt.n)
			if got == nil {
				t.Fatal("Rank() returned nil, want empty slice")
			}
			if !equalNames(got, tt.want) {
				t.Errorf("Rank(%d) = %v, want %v", tt.n, names(got), tt.want)
			}
		})
	}
}

func TestRatingRanker_Properties(t *testing.T) {
	items := make([]catalog.Item, 0, 50)
	for i := 0; i < 50; i++ {
		items = append(items, catalog.Item{
			Name:        string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Rating:      float64(i%6) * 0.9,
			ReviewCount: (i * 37) % 1500,
		})
	}
	items = append(items, items[3], items[7])

	r := NewRatingRanker(RatingWeights{})
	for _, n := range []int{1, 5, 20, 100} {
		got := r.Rank(items, n)
		if len(got) > n {
			t.Errorf("Rank(%d) length = %d", n, len(got))
		}
		seen := map[string]bool{}
		for i := range got {
			if seen[got[i].Name] {
				t.Errorf("Rank(%d) duplicate name %q", n, got[i].Name)
			}
			seen[got[i].Name] = true
			if i > 0 && r.Score(got[i]) > r.Score(got[i-1]) {
				t.Errorf("Rank(%d) score increases at %d", n, i)
			}
		}
	}
}

func TestRatingRanker_Score(t *testing.T) {
	tests := []struct {
		name    string
		weights RatingWeights
		item    catalog.Item
		want    float64
	}{
		{"defaults", DefaultRatingWeights(), catalog.Item{Rating: 4, ReviewCount: 10}, 0.7*4 + 0.3*10},
		{"review cap", DefaultRatingWeights(), catalog.Item{Rating: 0, ReviewCount: 2000}, 300},
		{"custom", RatingWeights{RatingWeight: 1, ReviewWeight: 0.5, ReviewCap: 4}, catalog.Item{Rating: 2, ReviewCount: 9}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRatingRanker(tt.weights).Score(tt.item)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}
