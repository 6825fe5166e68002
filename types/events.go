package types

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresDBAPI is the narrow slice of *pgxpool.Pool the event service needs.
// Keeping it an interface lets handler and service tests swap in a mock pool.
type PostgresDBAPI interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Event is a stored community event as returned to callers. Tags are
// reconstructed from the comma-joined column on every read.
type Event struct {
	Id          int64     `json:"id"`
	Uid         string    `json:"uid"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	Url         string    `json:"url"`
	Tags        []string  `json:"tags"`
}

// RawEvent is the unsanitized intake payload, shared by the JSON API and the
// HTML form path. Times stay strings here so both RFC3339 bodies and
// datetime-local form values run through the same parsing.
type RawEvent struct {
	Title       string   `json:"title" validate:"required"`
	StartTime   string   `json:"start_time" validate:"required"`
	EndTime     string   `json:"end_time" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Venue       string   `json:"venue" validate:"required"`
	Url         string   `json:"url,omitempty"`
	Tags        []string `json:"tags,omitempty" validate:"max=10"`
}

// EventInsert is the sanitized, normalized record handed to the store. Uid is
// minted by the service when empty.
type EventInsert struct {
	Uid         string
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	Description string
	Venue       string
	Url         string
	Tags        []string
}

// EventServiceInterface defines the methods required for the event store.
type EventServiceInterface interface {
	InsertEvent(ctx context.Context, db PostgresDBAPI, event EventInsert) (*Event, error)
	GetEventByID(ctx context.Context, db PostgresDBAPI, id int64) (*Event, error)
	GetEvents(ctx context.Context, db PostgresDBAPI) ([]Event, error)
	DeleteEvent(ctx context.Context, db PostgresDBAPI, id int64) error
	DeletePastEvents(ctx context.Context, db PostgresDBAPI, now time.Time) (int64, error)
}
