// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package catalog

import (
	"math"
	"strconv"
	"strings"
)

// ExtractInteractions reads (user, item, weight) triples from rows tagged
// with a consuming user id. Both the user-id and name columns must exist.
//
// Rows whose user id is empty, unparseable or not positive are skipped,
// as are rows with an empty name. Weight is the parsed rating when it is
// positive and 1 otherwise. Duplicate (user, item) pairs are returned as
// they appear.
//
//nolint:gocritic // hugeParam: RawTable and Schema are read-only inputs
func ExtractInteractions(table RawTable, schema Schema) ([]Interaction, error) {
	schema = schema.withDefaults()
	h := newHeader(table.Columns)

	if err := h.require(schema.UserIDColumn, schema.NameColumn); err != nil {
		return nil, err
	}

	userCol := h.lookup(schema.UserIDColumn)
	nameCol := h.lookup(schema.NameColumn)
	ratingCol := h.lookup(schema.RatingColumn)

	out := make([]Interaction, 0, len(table.Rows))
	for _, row := range table.Rows {
		userID, ok := parseUserID(cell(row, userCol))
		if !ok {
			continue
		}
		name := strings.TrimSpace(cell(row, nameCol))
		if name == "" {
			continue
		}

		weight := 1.0
		if r, ok := ParseRating(cell(row, ratingCol)); ok && r > 0 {
			weight = r
		}

		out = append(out, Interaction{UserID: userID, ItemName: name, Weight: weight})
	}

	return out, nil
}

// parseUserID accepts integers in [1, MaxInt32], including integral
// float text such as "42.0" produced by spreadsheet exports.
func parseUserID(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 1 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < 1 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
