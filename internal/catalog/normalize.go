// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxRating is the upper bound of the rating scale.
	MaxRating = 5.0

	// imageSeparator packs multiple image references into one cell.
	imageSeparator = "|"
)

// Normalize converts raw rows into a canonical catalog.
//
// Column names are trimmed and matched case-insensitively. The only
// failure is a missing name column, reported as *SchemaError. Rows with
// an empty name are skipped and later rows repeating an earlier name are
// dropped, keeping the first occurrence.
//
//nolint:gocritic // hugeParam: RawTable and Schema are read-only inputs
func Normalize(table RawTable, schema Schema) (*Catalog, error) {
	schema = schema.withDefaults()
	h := newHeader(table.Columns)

	if err := h.require(schema.NameColumn); err != nil {
		return nil, err
	}

	cols := struct {
		id, name, brand, rating, reviews, image int
		text                                    []int
	}{
		id:      h.lookup(schema.ItemIDColumn),
		name:    h.lookup(schema.NameColumn),
		brand:   h.lookup(schema.BrandColumn),
		rating:  h.lookup(schema.RatingColumn),
		reviews: h.lookup(schema.ReviewCountColumn),
		image:   h.lookup(schema.ImageColumn),
	}
	for _, tc := range schema.TextColumns {
		if i := h.lookup(tc); i >= 0 {
			cols.text = append(cols.text, i)
		}
	}

	lower := cases.Lower(language.Und)
	stats := Stats{RowsRead: len(table.Rows)}
	items := make([]Item, 0, len(table.Rows))

	for rowIdx, row := range table.Rows {
		name := strings.TrimSpace(cell(row, cols.name))
		if name == "" {
			stats.RowsSkipped++
			continue
		}

		brand := strings.TrimSpace(cell(row, cols.brand))

		rating, ok := ParseRating(cell(row, cols.rating))
		if !ok {
			stats.InvalidRatings++
		}
		reviews, ok := ParseReviewCount(cell(row, cols.reviews))
		if !ok {
			stats.InvalidReviewCounts++
		}

		id := strings.TrimSpace(cell(row, cols.id))
		if id == "" {
			id = fmt.Sprintf("row-%d", rowIdx)
		}

		parts := make([]string, 0, 2+len(cols.text))
		parts = append(parts, name, brand)
		for _, ti := range cols.text {
			parts = append(parts, cell(row, ti))
		}

		items = append(items, Item{
			ID:          id,
			Name:        name,
			Brand:       brand,
			TextProfile: lower.String(norm.NFKC.String(collapseWhitespace(parts...))),
			Rating:      rating,
			ReviewCount: reviews,
			ImageRefs:   SplitImageRefs(cell(row, cols.image)),
		})
	}

	c, duplicates := build(items)
	stats.Duplicates = duplicates
	c.stats = stats
	return c, nil
}

// ParseRating coerces a raw rating cell. Empty input yields (0, true);
// unparseable or non-finite input yields (0, false). Parsed values are
// clamped to [0, MaxRating].
func ParseRating(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	switch {
	case v < 0:
		return 0, true
	case v > MaxRating:
		return MaxRating, true
	}
	return v, true
}

// ParseReviewCount coerces a raw review-count cell to a non-negative int.
// Float text is truncated. Empty input yields (0, true); unparseable or
// non-finite input yields (0, false).
func ParseReviewCount(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, true
		}
		return n, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	switch {
	case f < 0:
		return 0, true
	case f > math.MaxInt32:
		return math.MaxInt32, true
	}
	return int(f), true
}

// SplitImageRefs splits a packed image field on "|". Entries are trimmed
// and empty entries dropped; no URL validation happens here.
func SplitImageRefs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	parts := strings.Split(raw, imageSeparator)
	refs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			refs = append(refs, p)
		}
	}
	return refs
}
