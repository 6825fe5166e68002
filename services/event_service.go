package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/communitycal/api/types"
)

// ErrEventNotFound is returned by delete/get operations when no row matches
// the requested id.
var ErrEventNotFound = errors.New("event not found")

const eventColumns = "id, uid, title, start_time, end_time, description, venue, url, tags"

// EventService is the Postgres-backed implementation of the event store.
type EventService struct{}

func NewEventService() types.EventServiceInterface {
	return &EventService{}
}

func (s *EventService) InsertEvent(ctx context.Context, db types.PostgresDBAPI, event types.EventInsert) (*types.Event, error) {
	// The calendar UID is minted once here and reused on every feed build,
	// so calendar clients see a stable identity across fetches.
	if event.Uid == "" {
		event.Uid = uuid.New().String()
	}

	query := `
		INSERT INTO events (uid, title, start_time, end_time, description, venue, url, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := db.QueryRow(ctx, query,
		event.Uid, event.Title, event.StartTime, event.EndTime,
		event.Description, event.Venue, event.Url, JoinTags(event.Tags),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	return &types.Event{
		Id:          id,
		Uid:         event.Uid,
		Title:       event.Title,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		Description: event.Description,
		Venue:       event.Venue,
		Url:         event.Url,
		Tags:        SplitTags(JoinTags(event.Tags)),
	}, nil
}

func (s *EventService) GetEventByID(ctx context.Context, db types.PostgresDBAPI, id int64) (*types.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE id = $1"

	var event types.Event
	var tags string
	err := db.QueryRow(ctx, query, id).Scan(
		&event.Id, &event.Uid, &event.Title, &event.StartTime, &event.EndTime,
		&event.Description, &event.Venue, &event.Url, &tags,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	event.Tags = SplitTags(tags)
	return &event, nil
}

func (s *EventService) GetEvents(ctx context.Context, db types.PostgresDBAPI) ([]types.Event, error) {
	rows, err := db.Query(ctx, "SELECT "+eventColumns+" FROM events")
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []types.Event
	for rows.Next() {
		var event types.Event
		var tags string
		err := rows.Scan(
			&event.Id, &event.Uid, &event.Title, &event.StartTime, &event.EndTime,
			&event.Description, &event.Venue, &event.Url, &tags,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Tags = SplitTags(tags)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return events, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, db types.PostgresDBAPI, id int64) error {
	tag, err := db.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

// DeletePastEvents removes every event whose end_time is strictly before now.
// The single DELETE statement makes the returned count exact.
func (s *EventService) DeletePastEvents(ctx context.Context, db types.PostgresDBAPI, now time.Time) (int64, error) {
	tag, err := db.Exec(ctx, "DELETE FROM events WHERE end_time < $1", now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete past events: %w", err)
	}
	return tag.RowsAffected(), nil
}

// JoinTags encodes a tag list into the comma-joined column format. Tags that
// themselves contain commas do not survive a round trip; callers are expected
// to have sanitized them, and the lossy case is accepted as-is.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags decodes the comma-joined column format, discarding empty entries.
func SplitTags(joined string) []string {
	parts := strings.Split(joined, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	return tags
}
