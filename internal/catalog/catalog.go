// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

// Package catalog turns raw tabular product rows into the canonical,
// immutable catalog consumed by the recommendation algorithms.
//
// # Data Flow
//
//	loader (files, DuckDB) -> RawTable -> Normalize -> *Catalog
//	                                   -> ExtractInteractions -> []Interaction
//
// The package performs no I/O. Every value it returns is read-only after
// construction, so a *Catalog can be shared across goroutines without
// locking.
//
// # Defaults
//
// Optional numeric fields are coerced at this boundary and never again:
// an unparseable rating becomes 0.0 and an unparseable review count
// becomes 0. Only a missing Name column is fatal (see SchemaError).
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// RawTable is untyped tabular input: column headers plus string cells.
// Rows shorter than Columns are treated as having empty trailing cells.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t RawTable) Len() int {
	return len(t.Rows)
}

// Item is one canonical catalog entry. Identity is Name.
type Item struct {
	// ID is the opaque item identifier (item-id column, or "row-<n>").
	// It never shares a keyspace with user ids.
	ID string `json:"id"`

	// Name is the trimmed, non-empty product name.
	Name string `json:"name"`

	// Brand is optional and used for display only.
	Brand string `json:"brand"`

	// TextProfile is the lower-cased concatenation of name, brand and
	// free-text columns with whitespace collapsed.
	TextProfile string `json:"text_profile"`

	// Rating is in [0, 5].
	Rating float64 `json:"rating"`

	// ReviewCount is never negative.
	ReviewCount int `json:"review_count"`

	// ImageRefs holds the packed image field split on "|", in order.
	ImageRefs []string `json:"image_refs"`
}

// Interaction is one historical user action on a catalog item.
type Interaction struct {
	// UserID is positive; 0 is reserved for "no identity".
	UserID int `json:"user_id"`

	// ItemName refers to Item.Name.
	ItemName string `json:"item_name"`

	// Weight is the explicit rating when present, otherwise 1.
	Weight float64 `json:"weight"`
}

// Stats summarizes data-quality events from one normalization pass.
type Stats struct {
	RowsRead            int `json:"rows_read"`
	RowsSkipped         int `json:"rows_skipped"`
	Duplicates          int `json:"duplicates"`
	InvalidRatings      int `json:"invalid_ratings"`
	InvalidReviewCounts int `json:"invalid_review_counts"`
}

// Catalog is the immutable, name-deduplicated set of recommendable items.
type Catalog struct {
	items  []Item
	byName map[string]int
	stats  Stats
}

// New builds a catalog from already-canonical items. Items with an empty
// name are dropped and duplicate names keep their first occurrence.
// It is intended for callers that construct synthetic catalogs.
func New(items []Item) *Catalog {
	c, _ := build(items)
	return c
}

// build deduplicates items by name and indexes them.
//
//nolint:gocritic // rangeValCopy: Item is copied into the catalog anyway
func build(items []Item) (*Catalog, int) {
	c := &Catalog{
		items:  make([]Item, 0, len(items)),
		byName: make(map[string]int, len(items)),
	}

	duplicates := 0
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		if _, seen := c.byName[item.Name]; seen {
			duplicates++
			continue
		}
		c.byName[item.Name] = len(c.items)
		c.items = append(c.items, item)
	}

	return c, duplicates
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Item returns the item at catalog position i.
// The returned ImageRefs slice must be treated as read-only.
func (c *Catalog) Item(i int) Item {
	return c.items[i]
}

// Items returns a copy of the item list in catalog order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// IndexOf returns the catalog position of the item with exactly this name.
func (c *Catalog) IndexOf(name string) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.byName[name]
	return i, ok
}

// Stats returns the data-quality summary recorded when the catalog was
// normalized. Catalogs built with New report zero stats except duplicates.
func (c *Catalog) Stats() Stats {
	return c.stats
}

// Fold returns the Unicode case-folded, NFKC-normalized form of s.
// Two strings that differ only in case fold to the same value.
func Fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// DedupeByName removes later items whose name already appeared,
// preserving order. It does not modify its input.
//
//nolint:gocritic // rangeValCopy: items are copied into the result
func DedupeByName(items []Item) []Item {
	if len(items) == 0 {
		return items
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}
		out = append(out, item)
	}
	return out
}

// collapseWhitespace joins the whitespace-separated fields of parts with
// single spaces.
func collapseWhitespace(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		for _, f := range strings.Fields(p) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(f)
		}
	}
	return b.String()
}
