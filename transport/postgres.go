package transport

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communitycal/api/types"
)

// NewPostgresPool opens a pgx connection pool for the given database URL.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("missing database URL")
	}
	return pgxpool.New(ctx, databaseURL)
}

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
	id          BIGSERIAL PRIMARY KEY,
	uid         TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL,
	start_time  TIMESTAMPTZ NOT NULL,
	end_time    TIMESTAMPTZ NOT NULL,
	description TEXT NOT NULL,
	venue       TEXT NOT NULL,
	url         TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT ''
)`

// EnsureSchema creates the events table on startup if it does not exist yet.
func EnsureSchema(ctx context.Context, db types.PostgresDBAPI) error {
	if _, err := db.Exec(ctx, createEventsTable); err != nil {
		return fmt.Errorf("failed to ensure events table: %w", err)
	}
	return nil
}
