// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package catalog

import "strings"

// Schema names the raw columns the normalizer reads. Only NameColumn is
// required; every other column is optional and defaults when absent.
type Schema struct {
	NameColumn        string
	BrandColumn       string
	RatingColumn      string
	ReviewCountColumn string
	ImageColumn       string

	// ItemIDColumn holds the opaque product key.
	ItemIDColumn string

	// UserIDColumn tags a row with the consuming user. It is only read by
	// ExtractInteractions and is a separate keyspace from ItemIDColumn.
	UserIDColumn string

	// TextColumns are free-text fields appended to the text profile.
	TextColumns []string
}

// DefaultSchema returns the column names used by the reference product
// dataset.
func DefaultSchema() Schema {
	return Schema{
		NameColumn:        "Name",
		BrandColumn:       "Brand",
		RatingColumn:      "Rating",
		ReviewCountColumn: "ReviewCount",
		ImageColumn:       "ImageURL",
		ItemIDColumn:      "ProdID",
		UserIDColumn:      "ID",
		TextColumns:       []string{"Category", "Description", "Tags"},
	}
}

// withDefaults fills empty column names from DefaultSchema.
//
//nolint:gocritic // hugeParam: value receiver keeps Schema immutable
func (s Schema) withDefaults() Schema {
	d := DefaultSchema()
	if s.NameColumn == "" {
		s.NameColumn = d.NameColumn
	}
	if s.BrandColumn == "" {
		s.BrandColumn = d.BrandColumn
	}
	if s.RatingColumn == "" {
		s.RatingColumn = d.RatingColumn
	}
	if s.ReviewCountColumn == "" {
		s.ReviewCountColumn = d.ReviewCountColumn
	}
	if s.ImageColumn == "" {
		s.ImageColumn = d.ImageColumn
	}
	if s.ItemIDColumn == "" {
		s.ItemIDColumn = d.ItemIDColumn
	}
	if s.UserIDColumn == "" {
		s.UserIDColumn = d.UserIDColumn
	}
	if s.TextColumns == nil {
		s.TextColumns = d.TextColumns
	}
	return s
}

// header maps trimmed, case-insensitive column names to positions.
type header struct {
	names []string
	index map[string]int
}

// newHeader trims every column name. When two columns trim to the same
// name the first one wins.
func newHeader(columns []string) header {
	h := header{
		names: make([]string, len(columns)),
		index: make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		name := strings.TrimSpace(c)
		h.names[i] = name
		key := strings.ToLower(name)
		if _, ok := h.index[key]; !ok {
			h.index[key] = i
		}
	}
	return h
}

// lookup returns the position of column name, or -1.
func (h header) lookup(name string) int {
	if name == "" {
		return -1
	}
	if i, ok := h.index[strings.ToLower(strings.TrimSpace(name))]; ok {
		return i
	}
	return -1
}

// require returns a SchemaError naming every absent column.
func (h header) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if h.lookup(n) < 0 {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &SchemaError{Missing: missing, Columns: h.names}
}

// cell returns row[i] or "" when i is absent or out of range.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
