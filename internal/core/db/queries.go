package db

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/qustavo/dotsql"

	"github.com/solatis/quietrepr/internal/types"
)

// Queries provides access to named SQL queries loaded from a .sql file.
// Uses dotsql for named query management and sqlx for database operations.
type Queries struct {
	dot *dotsql.DotSql
}

// LoadQueries parses a .sql file of "-- name: <query>" blocks.
func LoadQueries(path string) (*Queries, error) {
	dot, err := dotsql.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load queries from %s: %w", path, err)
	}
	return &Queries{dot: dot}, nil
}

// LoadQueriesFromString parses named queries from SQL text.
func LoadQueriesFromString(sql string) (*Queries, error) {
	dot, err := dotsql.LoadFromString(sql)
	if err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}
	return &Queries{dot: dot}, nil
}

// Raw returns the SQL text of a named query.
func (q *Queries) Raw(name string) (string, error) {
	query, err := q.dot.Raw(name)
	if err != nil {
		return "", fmt.Errorf("query not found: %s", name)
	}
	return query, nil
}

// Names lists the available query names, sorted.
func (q *Queries) Names() []string {
	m := q.dot.QueryMap()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records runs a named query and returns its rows as records of typeName.
func (q *Queries) Records(ctx context.Context, conn *sqlx.DB, name, typeName string, args ...any) ([]types.Record, error) {
	query, err := q.Raw(name)
	if err != nil {
		return nil, err
	}
	return Records(ctx, conn, typeName, query, args...)
}
