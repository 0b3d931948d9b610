// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver registration

	"github.com/tomtom215/shelfwise/internal/catalog"
)

// memoryDSN opens a private in-memory database. Extension autoloading is
// disabled so loads never reach the network.
const memoryDSN = ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"

// DuckDBSource reads a catalog file with DuckDB's table functions.
type DuckDBSource struct {
	Path   string
	Format Format
}

// NewDuckDBSource validates the format and returns a source for path.
func NewDuckDBSource(path string, format Format) (*DuckDBSource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog path is required")
	}
	resolved, err := DetectFormat(path, format)
	if err != nil {
		return nil, err
	}
	return &DuckDBSource{Path: path, Format: resolved}, nil
}

func (s *DuckDBSource) String() string {
	return string(s.Format) + ":" + s.Path
}

// Load reads every row of the file as text. NULL cells become "".
func (s *DuckDBSource) Load(ctx context.Context) (catalog.RawTable, error) {
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return catalog.RawTable{}, fmt.Errorf("%w: %s", ErrSourceNotFound, s.Path)
		}
		return catalog.RawTable{}, fmt.Errorf("stat catalog file: %w", err)
	}

	query, err := s.query()
	if err != nil {
		return catalog.RawTable{}, err
	}

	db, err := sql.Open("duckdb", memoryDSN)
	if err != nil {
		return catalog.RawTable{}, fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer closeQuietly(db)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return catalog.RawTable{}, fmt.Errorf("failed to read %s: %w", s, err)
	}
	defer closeQuietly(rows)

	columns, err := rows.Columns()
	if err != nil {
		return catalog.RawTable{}, fmt.Errorf("failed to read columns: %w", err)
	}

	table := catalog.RawTable{Columns: columns}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return catalog.RawTable{}, fmt.Errorf("failed to scan row %d: %w", table.Len()+1, err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = cellString(v)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return catalog.RawTable{}, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return table, nil
}

func (s *DuckDBSource) query() (string, error) {
	path := quoteLiteral(s.Path)
	switch s.Format {
	case FormatCSV:
		return "SELECT * FROM read_csv_auto(" + path + ", all_varchar=true, header=true)", nil
	case FormatTSV:
		return "SELECT * FROM read_csv_auto(" + path + ", all_varchar=true, header=true, delim='\\t')", nil
	case FormatParquet:
		return "SELECT * FROM read_parquet(" + path + ")", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s.Format)
	}
}

// quoteLiteral renders s as a SQL string literal. Table functions take
// their file argument at bind time, so it cannot be a query parameter.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
