package services

import (
	"context"
	"time"

	"github.com/communitycal/api/types"
)

// MockEventService implements types.EventServiceInterface for tests. Each
// method delegates to its Func field when set.
type MockEventService struct {
	InsertEventFunc      func(ctx context.Context, db types.PostgresDBAPI, event types.EventInsert) (*types.Event, error)
	GetEventByIDFunc     func(ctx context.Context, db types.PostgresDBAPI, id int64) (*types.Event, error)
	GetEventsFunc        func(ctx context.Context, db types.PostgresDBAPI) ([]types.Event, error)
	DeleteEventFunc      func(ctx context.Context, db types.PostgresDBAPI, id int64) error
	DeletePastEventsFunc func(ctx context.Context, db types.PostgresDBAPI, now time.Time) (int64, error)
}

func (m *MockEventService) InsertEvent(ctx context.Context, db types.PostgresDBAPI, event types.EventInsert) (*types.Event, error) {
	if m.InsertEventFunc != nil {
		return m.InsertEventFunc(ctx, db, event)
	}
	return nil, nil
}

func (m *MockEventService) GetEventByID(ctx context.Context, db types.PostgresDBAPI, id int64) (*types.Event, error) {
	if m.GetEventByIDFunc != nil {
		return m.GetEventByIDFunc(ctx, db, id)
	}
	return nil, nil
}

func (m *MockEventService) GetEvents(ctx context.Context, db types.PostgresDBAPI) ([]types.Event, error) {
	if m.GetEventsFunc != nil {
		return m.GetEventsFunc(ctx, db)
	}
	return nil, nil
}

func (m *MockEventService) DeleteEvent(ctx context.Context, db types.PostgresDBAPI, id int64) error {
	if m.DeleteEventFunc != nil {
		return m.DeleteEventFunc(ctx, db, id)
	}
	return nil
}

func (m *MockEventService) DeletePastEvents(ctx context.Context, db types.PostgresDBAPI, now time.Time) (int64, error) {
	if m.DeletePastEventsFunc != nil {
		return m.DeletePastEventsFunc(ctx, db, now)
	}
	return 0, nil
}
