package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/communitycal/api/helpers"
	"github.com/communitycal/api/services"
	"github.com/communitycal/api/types"
)

func testConfig() *helpers.Config {
	return &helpers.Config{
		AuthUsername:   "admin",
		AuthPassword:   "secret",
		AppTitle:       helpers.DEFAULT_APP_TITLE,
		CalendarProdID: helpers.DEFAULT_CALENDAR_PRODID,
	}
}

var mockStoredEvent = &types.Event{
	Id:          7,
	Uid:         "11111111-1111-1111-1111-111111111111",
	Title:       "Test Event",
	StartTime:   time.Date(2025, 7, 1, 19, 0, 0, 0, time.UTC),
	EndTime:     time.Date(2025, 7, 1, 21, 0, 0, 0, time.UTC),
	Description: "A community gathering",
	Venue:       "Test Venue",
	Tags:        []string{"music"},
}

func validCreateBody() []byte {
	body, _ := json.Marshal(map[string]any{
		"title":       "Test Event",
		"start_time":  "2025-07-01T19:00:00Z",
		"end_time":    "2025-07-01T21:00:00Z",
		"description": "A community gathering",
		"venue":       "Test Venue",
		"tags":        []string{"music"},
	})
	return body
}

func TestCreateEvent_Success(t *testing.T) {
	mockService := &services.MockEventService{}
	mockService.InsertEventFunc = func(ctx context.Context, db types.PostgresDBAPI, event types.EventInsert) (*types.Event, error) {
		return mockStoredEvent, nil
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("POST", "/add-event", bytes.NewBuffer(validCreateBody()))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	eventHandler.CreateEvent(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `"event_id":"7"`) {
		t.Errorf("handler returned unexpected body: %v", rr.Body.String())
	}
}

func TestCreateEvent_SanitizesInput(t *testing.T) {
	var inserted types.EventInsert
	mockService := &services.MockEventService{}
	mockService.InsertEventFunc = func(ctx context.Context, db types.PostgresDBAPI, event types.EventInsert) (*types.Event, error) {
		inserted = event
		return mockStoredEvent, nil
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	body, _ := json.Marshal(map[string]any{
		"title":       "  <script>alert(1)</script>  ",
		"start_time":  "2025-07-01T19:00:00Z",
		"end_time":    "2025-07-01T21:00:00Z",
		"description": "A community gathering",
		"venue":       "Test Venue",
	})
	req := httptest.NewRequest("POST", "/add-event", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	eventHandler.CreateEvent(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if inserted.Title != "&lt;script&gt;alert(1)&lt;/script&gt;" {
		t.Errorf("expected escaped title to reach the store, got %q", inserted.Title)
	}
}

func TestCreateEvent_InvalidJSON(t *testing.T) {
	mockService := &services.MockEventService{}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("POST", "/add-event", strings.NewReader(`{"title": "Test Event",`))
	rr := httptest.NewRecorder()

	eventHandler.CreateEvent(rr, req)

	if status := rr.Code; status != http.StatusUnprocessableEntity {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rr.Body.String(), "Invalid JSON payload") {
		t.Errorf("handler returned unexpected body: %v", rr.Body.String())
	}
}

func TestCreateEvent_MissingRequiredFields(t *testing.T) {
	mockService := &services.MockEventService{}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	body, _ := json.Marshal(map[string]any{"title": "Test Event"})
	req := httptest.NewRequest("POST", "/add-event", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	eventHandler.CreateEvent(rr, req)

	if status := rr.Code; status != http.StatusUnprocessableEntity {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rr.Body.String(), "Invalid body") {
		t.Errorf("handler returned unexpected body: %v", rr.Body.String())
	}
}

func TestCreateEvent_StartAfterEnd(t *testing.T) {
	inserted := false
	mockService := &services.MockEventService{}
	mockService.InsertEventFunc = func(ctx context.Context, db types.PostgresDBAPI, event types.EventInsert) (*types.Event, error) {
		inserted = true
		return mockStoredEvent, nil
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	body, _ := json.Marshal(map[string]any{
		"title":       "Test Event",
		"start_time":  "2025-07-01T21:00:00Z",
		"end_time":    "2025-07-01T19:00:00Z",
		"description": "A community gathering",
		"venue":       "Test Venue",
	})
	req := httptest.NewRequest("POST", "/add-event", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	eventHandler.CreateEvent(rr, req)

	if status := rr.Code; status != http.StatusUnprocessableEntity {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnprocessableEntity)
	}
	if inserted {
		t.Error("store should not be mutated on validation failure")
	}
}

func TestCreateEvent_TooManyTags(t *testing.T) {
	inserted := false
	mockService := &services.MockEventService{}
	mockService.InsertEventFunc = func(ctx context.Context, db types.PostgresDBAPI, event types.EventInsert) (*types.Event, error) {
		inserted = true
		return mockStoredEvent, nil
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	tags := make([]string, 11)
	for i := range tags {
		tags[i] = "tag"
	}
	body, _ := json.Marshal(map[string]any{
		"title":       "Test Event",
		"start_time":  "2025-07-01T19:00:00Z",
		"end_time":    "2025-07-01T21:00:00Z",
		"description": "A community gathering",
		"venue":       "Test Venue",
		"tags":        tags,
	})
	req := httptest.NewRequest("POST", "/add-event", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	eventHandler.CreateEvent(rr, req)

	if status := rr.Code; status != http.StatusUnprocessableEntity {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnprocessableEntity)
	}
	if inserted {
		t.Error("store should not be mutated when tag count exceeds the limit")
	}
}

func TestCreateEvent_DBInsertError(t *testing.T) {
	mockService := &services.MockEventService{}
	mockService.InsertEventFunc = func(ctx context.Context, db types.PostgresDBAPI, event types.EventInsert) (*types.Event, error) {
		return nil, errors.New("database error")
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("POST", "/add-event", bytes.NewBuffer(validCreateBody()))
	rr := httptest.NewRecorder()

	eventHandler.CreateEvent(rr, req)

	if status := rr.Code; status != http.StatusInternalServerError {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusInternalServerError)
	}
}

func TestGetEvents_EmptyStore(t *testing.T) {
	mockService := &services.MockEventService{}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("GET", "/events", nil)
	rr := httptest.NewRecorder()

	eventHandler.GetEvents(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %v", rr.Body.String())
	}
}

func TestGetCalendar_TwoEvents(t *testing.T) {
	second := *mockStoredEvent
	second.Id = 8
	second.Uid = "22222222-2222-2222-2222-222222222222"
	second.Title = "Second Event"
	second.Venue = "Town Hall"

	mockService := &services.MockEventService{}
	mockService.GetEventsFunc = func(ctx context.Context, db types.PostgresDBAPI) ([]types.Event, error) {
		return []types.Event{*mockStoredEvent, second}, nil
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("GET", "/events.ics", nil)
	rr := httptest.NewRecorder()

	eventHandler.GetCalendar(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/calendar" {
		t.Errorf("unexpected Content-Type: %v", got)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "events.ics") {
		t.Errorf("unexpected Content-Disposition: %v", got)
	}

	doc := rr.Body.String()
	if got := strings.Count(doc, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expected two VEVENT blocks, got %d", got)
	}
	if !strings.Contains(doc, "SUMMARY:Test Event") || !strings.Contains(doc, "SUMMARY:Second Event") {
		t.Errorf("missing SUMMARY lines:\n%s", doc)
	}
}

func TestGetEvent_Success(t *testing.T) {
	mockService := &services.MockEventService{}
	mockService.GetEventByIDFunc = func(ctx context.Context, db types.PostgresDBAPI, id int64) (*types.Event, error) {
		return mockStoredEvent, nil
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("GET", "/events/7", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rr := httptest.NewRecorder()

	eventHandler.GetEvent(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `"title":"Test Event"`) {
		t.Errorf("handler returned unexpected body: %v", rr.Body.String())
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	mockService := &services.MockEventService{}
	mockService.GetEventByIDFunc = func(ctx context.Context, db types.PostgresDBAPI, id int64) (*types.Event, error) {
		return nil, services.ErrEventNotFound
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("GET", "/events/999", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "999"})
	rr := httptest.NewRecorder()

	eventHandler.GetEvent(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusNotFound)
	}
}

func TestDeleteEvent_Success(t *testing.T) {
	mockService := &services.MockEventService{}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("DELETE", "/events/7", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rr := httptest.NewRecorder()

	eventHandler.DeleteEvent(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "Event deleted successfully") {
		t.Errorf("handler returned unexpected body: %v", rr.Body.String())
	}
}

func TestDeleteEvent_NotFound(t *testing.T) {
	mockService := &services.MockEventService{}
	mockService.DeleteEventFunc = func(ctx context.Context, db types.PostgresDBAPI, id int64) error {
		return services.ErrEventNotFound
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("DELETE", "/events/999", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "999"})
	rr := httptest.NewRecorder()

	eventHandler.DeleteEvent(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusNotFound)
	}
}

func TestDeleteEvent_NonIntegerID(t *testing.T) {
	deleted := false
	mockService := &services.MockEventService{}
	mockService.DeleteEventFunc = func(ctx context.Context, db types.PostgresDBAPI, id int64) error {
		deleted = true
		return nil
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("DELETE", "/events/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rr := httptest.NewRecorder()

	eventHandler.DeleteEvent(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusUnprocessableEntity)
	}
	if deleted {
		t.Error("no delete call should take effect for a non-integer id")
	}
}

func TestCleanup_ReturnsCount(t *testing.T) {
	mockService := &services.MockEventService{}
	mockService.DeletePastEventsFunc = func(ctx context.Context, db types.PostgresDBAPI, now time.Time) (int64, error) {
		if now.Location() != time.UTC {
			t.Errorf("cleanup cutoff must be UTC, got %v", now.Location())
		}
		return 4, nil
	}
	eventHandler := NewEventHandler(mockService, nil, testConfig())

	req := httptest.NewRequest("POST", "/cleanup", nil)
	rr := httptest.NewRecorder()

	eventHandler.Cleanup(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "Removed 4 past events") {
		t.Errorf("handler returned unexpected body: %v", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"removed":4`) {
		t.Errorf("handler returned unexpected body: %v", rr.Body.String())
	}
}
