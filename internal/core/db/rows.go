package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/solatis/quietrepr/internal/types"
)

// Records runs query and returns one record per row, fields in column order.
// Uses sqlx Rebind to convert ? placeholders to $1, $2 for PostgreSQL.
// []byte column values become strings; NULL becomes nil.
func Records(ctx context.Context, conn *sqlx.DB, typeName, query string, args ...any) ([]types.Record, error) {
	rows, err := conn.QueryxContext(ctx, conn.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []types.Record
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(out), err)
		}
		rec := types.Record{Type: typeName, Fields: make([]types.Field, len(columns))}
		for i, col := range columns {
			rec.Fields[i] = types.Field{Name: col, Value: normalizeColumn(values[i])}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return out, nil
}

// normalizeColumn turns driver byte slices into text.
// lib/pq returns text columns as []byte when scanned into interface{}.
func normalizeColumn(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
