// Package db provides PostgreSQL storage for survey responses.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// schemaStatements create the responses table and its filter indexes.
// Every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS responses (
		id           BIGSERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		department   TEXT NOT NULL,
		organization TEXT NOT NULL,
		location     TEXT NOT NULL,
		answers      JSONB NOT NULL,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS responses_department_idx ON responses (department)`,
	`CREATE INDEX IF NOT EXISTS responses_location_idx ON responses (location)`,
}

// EnsureSchema creates the responses table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
