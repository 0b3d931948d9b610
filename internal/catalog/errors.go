// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema is matched by every SchemaError via errors.Is.
var ErrSchema = errors.New("catalog schema error")

// SchemaError reports required columns missing from raw input.
// It is fatal for the load that produced it.
type SchemaError struct {
	// Missing lists the required column names that were not found.
	Missing []string

	// Columns lists the trimmed column names that were present.
	Columns []string
}

// Error implements error.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column(s) %s (have: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Columns, ", "))
}

// Is reports whether target is ErrSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
