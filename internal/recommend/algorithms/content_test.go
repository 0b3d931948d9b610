// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package algorithms

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/shelfwise/internal/catalog"
)

func beautyCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{Name: "Silky Shampoo", Brand: "Acme", TextProfile: "silky shampoo acme hair wash"},
		{Name: "Shampoo Bar", TextProfile: "shampoo bar solid hair wash"},
		{Name: "Conditioner", TextProfile: "conditioner hair smooth"},
		{Name: "Lipstick Red", TextProfile: "lipstick red matte lips"},
		{Name: "Lip Gloss", TextProfile: "lip gloss shiny lips"},
		{Name: "Hammer", TextProfile: "hammer forged"},
	})
}

func buildIndex(t *testing.T, cat *catalog.Catalog) *ContentIndex {
	t.Helper()
	idx, err := BuildContentIndex(context.Background(), cat, DefaultContentConfig())
	if err != nil {
		t.Fatalf("BuildContentIndex() error = %v", err)
	}
	return idx
}

func TestContentIndex_Similar(t *testing.T) {
	idx := buildIndex(t, beautyCatalog())

	tests := []struct {
		name  string
		query string
		n     int
		want  []string
	}{
		{"ranked by cosine", "silky", 5, []string{"Shampoo Bar", "Conditioner", "Lipstick Red", "Lip Gloss", "Hammer"}},
		{"truncated to n", "silky", 1, []string{"Shampoo Bar"}},
		{"first substring match is anchor", "shampoo", 5, []string{"Shampoo Bar", "Conditioner", "Lipstick Red", "Lip Gloss", "Hammer"}},
		{"no match", "toaster", 5, []string{}},
		{"empty query", "   ", 5, []string{}},
		{"no shared terms fills in catalog order", "hammer", 5, []string{"Silky Shampoo", "Shampoo Bar", "Conditioner", "Lipstick Red", "Lip Gloss"}},
		{"zero n", "silky", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Similar(tt.query, tt.n)
			if got == nil {
				t.Fatal("Similar() returned nil, want empty slice")
			}
			if !equalNames(got, tt.want) {
				t.Errorf("Similar(%q, %d) = %v, want %v", tt.query, tt.n, names(got), tt.want)
			}
		})
	}
}

func TestContentIndex_ExcludesAnchor(t *testing.T) {
	cat := beautyCatalog()
	idx := buildIndex(t, cat)

	for _, item := range cat.Items() {
		t.Run(item.Name, func(t *testing.T) {
			anchor, ok := idx.Resolve(item.Name)
			if !ok {
				t.Fatalf("Resolve(%q) found nothing", item.Name)
			}
			for _, got := range idx.Similar(item.Name, cat.Len()) {
				if got.Name == anchor.Name {
					t.Errorf("Similar(%q) contains anchor %q", item.Name, anchor.Name)
				}
			}
		})
	}
}

func TestContentIndex_CaseInsensitive(t *testing.T) {
	idx := buildIndex(t, beautyCatalog())

	lower := idx.Similar("shampoo", 5)
	upper := idx.Similar("SHAMPOO", 5)
	if !reflect.DeepEqual(names(lower), names(upper)) {
		t.Errorf("Similar(shampoo) = %v, Similar(SHAMPOO) = %v", names(lower), names(upper))
	}

	a, _ := idx.Resolve("sHaMpOo")
	if a.Name != "Silky Shampoo" {
		t.Errorf("Resolve(sHaMpOo) = %q, want %q", a.Name, "Silky Shampoo")
	}
}

func TestContentIndex_SimilarMulti(t *testing.T) {
	idx := buildIndex(t, beautyCatalog())

	tests := []struct {
		name  string
		query string
		n     int
		want  []string
	}{
		{"unmatched part ignored", "silky,zzz", 1, []string{"Shampoo Bar"}},
		{"single query", "silky", 5, []string{"Shampoo Bar", "Conditioner", "Lipstick Red", "Lip Gloss", "Hammer"}},
		{"concatenated and deduplicated", "silky, shampoo bar", 5, []string{"Shampoo Bar", "Conditioner", "Lipstick Red", "Lip Gloss", "Hammer", "Silky Shampoo"}},
		{"capped at 2n", "silky, shampoo bar, lipstick", 1, []string{"Shampoo Bar", "Silky Shampoo"}},
		{"nothing matches", "zzz, yyy", 3, []string{}},
		{"blank parts", " , ,", 3, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.SimilarMulti(tt.query, tt.n)
			if got == nil {
				t.Fatal("SimilarMulti() returned nil, want empty slice")
			}
			if len(got) > 2*tt.n {
				t.Errorf("SimilarMulti() length = %d, want <= %d", len(got), 2*tt.n)
			}
			if !equalNames(got, tt.want) {
				t.Errorf("SimilarMulti(%q, %d) = %v, want %v", tt.query, tt.n, names(got), tt.want)
			}
		})
	}
}

func TestContentIndex_TiesKeepCatalogOrder(t *testing.T) {
	cat := catalog.New([]catalog.Item{
		{Name: "Hammer", TextProfile: "hammer steel"},
		{Name: "Screw", TextProfile: "screw steel"},
		{Name: "Nail", TextProfile: "nail steel"},
	})
	idx := buildIndex(t, cat)

	got := idx.Similar("hammer", 5)
	if !equalNames(got, []string{"Screw", "Nail"}) {
		t.Errorf("Similar(hammer) = %v, want [Screw Nail]", names(got))
	}
}

func TestContentIndex_FillsWithUnrelatedItems(t *testing.T) {
	tests := []struct {
		name  string
		items []catalog.Item
		query string
		n     int
		want  []string
	}{
		{
			name: "disjoint profiles",
			items: []catalog.Item{
				{Name: "Kettle", TextProfile: "kettle steel"},
				{Name: "Pillow", TextProfile: "pillow soft"},
				{Name: "Candle", TextProfile: "candle wax"},
			},
			query: "kettle",
			n:     2,
			want:  []string{"Pillow", "Candle"},
		},
		{
			name: "no indexable terms",
			items: []catalog.Item{
				{Name: "A"},
				{Name: "B", TextProfile: "b"},
				{Name: "C", TextProfile: "c"},
			},
			query: "A",
			n:     2,
			want:  []string{"B", "C"},
		},
		{
			name: "related first then catalog order",
			items: []catalog.Item{
				{Name: "Mug", TextProfile: "mug ceramic"},
				{Name: "Towel", TextProfile: "towel cotton"},
				{Name: "Teapot", TextProfile: "teapot ceramic"},
				{Name: "Rug", TextProfile: "rug wool"},
			},
			query: "mug",
			n:     3,
			want:  []string{"Teapot", "Towel", "Rug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := buildIndex(t, catalog.New(tt.items))
			got := idx.Similar(tt.query, tt.n)
			if !equalNames(got, tt.want) {
				t.Errorf("Similar(%q, %d) = %v, want %v", tt.query, tt.n, names(got), tt.want)
			}
		})
	}
}

func TestContentIndex_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildContentIndex(ctx, beautyCatalog(), DefaultContentConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("BuildContentIndex() error = %v, want context.Canceled", err)
	}
}

func TestContentIndex_VocabularySize(t *testing.T) {
	cat := catalog.New([]catalog.Item{
		{Name: "A", TextProfile: "the red red apple"},
		{Name: "B", TextProfile: "a green apple x"},
	})
	idx := buildIndex(t, cat)

	// red, apple, green
	if got := idx.VocabularySize(); got != 3 {
		t.Errorf("VocabularySize() = %d, want 3", got)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"the best of hair a", []string{"best", "hair"}},
		{"anti-frizz, 2in1 x", []string{"anti", "frizz", "2in1"}},
		{"crème brûlée", []string{"crème", "brûlée"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := tokenize(tt.text, 2, englishStopWords)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitQueries(t *testing.T) {
	got := SplitQueries(" a , ,b,c ")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitQueries() = %v, want %v", got, want)
	}
}
