// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

// Package loader reads raw catalog tables from files on disk.
//
// A Source yields a catalog.RawTable with every cell rendered as text; type
// coercion is left to the catalog normalizer. DuckDBSource reads CSV or
// Parquet through an in-memory DuckDB connection, and BreakerSource wraps
// any Source in a circuit breaker so a failing file does not stall restarts.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tomtom215/shelfwise/internal/catalog"
)

// Format identifies how a catalog file is encoded.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatParquet Format = "parquet"
)

var (
	// ErrUnsupportedFormat is returned for file formats the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrSourceNotFound is returned when the catalog file does not exist.
	ErrSourceNotFound = errors.New("catalog source not found")
)

// Source produces a raw catalog table.
type Source interface {
	Load(ctx context.Context) (catalog.RawTable, error)
	String() string
}

// ParseFormat validates a configured format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV, FormatTSV, FormatParquet:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// DetectFormat resolves FormatAuto from the file extension.
func DetectFormat(path string, f Format) (Format, error) {
	if f != FormatAuto && f != "" {
		return f, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: cannot detect format of %s", ErrUnsupportedFormat, path)
	}
}

// StaticSource returns a fixed table. It backs tests and embedded fixtures.
type StaticSource struct {
	Name  string
	Table catalog.RawTable
}

// Load returns a copy of the table.
func (s StaticSource) Load(ctx context.Context) (catalog.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return catalog.RawTable{}, err
	}
	out := catalog.RawTable{
		Columns: append([]string(nil), s.Table.Columns...),
		Rows:    make([][]string, len(s.Table.Rows)),
	}
	for i, row := range s.Table.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (s StaticSource) String() string {
	if s.Name == "" {
		return "static"
	}
	return "static:" + s.Name
}
