package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/communitycal/api/helpers"
	"github.com/communitycal/api/services"
	"github.com/communitycal/api/transport"
	"github.com/communitycal/api/types"
)

// Validator instance for struct validation
var validate *validator.Validate = validator.New()

// EventHandler handles the JSON API surface: event submission, raw listing,
// the iCalendar feed, single delete and the retention sweep.
type EventHandler struct {
	EventService types.EventServiceInterface
	DB           types.PostgresDBAPI
	Cfg          *helpers.Config
}

func NewEventHandler(eventService types.EventServiceInterface, db types.PostgresDBAPI, cfg *helpers.Config) *EventHandler {
	return &EventHandler{EventService: eventService, DB: db, Cfg: cfg}
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		transport.SendServerRes(w, []byte("Failed to read request body: "+err.Error()), http.StatusBadRequest, err)
		return
	}

	var raw types.RawEvent
	err = json.Unmarshal(body, &raw)
	if err != nil {
		transport.SendServerRes(w, []byte("Invalid JSON payload: "+err.Error()), http.StatusUnprocessableEntity, err)
		return
	}

	err = validate.Struct(&raw)
	if err != nil {
		transport.SendServerRes(w, []byte("Invalid body: "+err.Error()), http.StatusUnprocessableEntity, err)
		return
	}

	insert, err := services.SanitizeRawEvent(raw)
	if err != nil {
		transport.SendServerRes(w, []byte("Invalid event: "+err.Error()), http.StatusUnprocessableEntity, err)
		return
	}

	res, err := h.EventService.InsertEvent(r.Context(), h.DB, *insert)
	if err != nil {
		transport.SendServerRes(w, []byte("Failed to create event: "+err.Error()), http.StatusInternalServerError, err)
		return
	}

	response, err := json.Marshal(map[string]string{
		"message":  "Event added successfully",
		"event_id": strconv.FormatInt(res.Id, 10),
	})
	if err != nil {
		transport.SendServerRes(w, []byte("Error marshaling JSON"), http.StatusInternalServerError, err)
		return
	}

	log.Printf("Inserted new event: %+v", res)
	transport.SendServerRes(w, response, http.StatusOK, nil)
}

func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.EventService.GetEvents(r.Context(), h.DB)
	if err != nil {
		transport.SendServerRes(w, []byte("Failed to get events: "+err.Error()), http.StatusInternalServerError, err)
		return
	}

	if events == nil {
		events = []types.Event{}
	}

	response, err := json.Marshal(events)
	if err != nil {
		transport.SendServerRes(w, []byte("Error marshaling JSON"), http.StatusInternalServerError, err)
		return
	}

	transport.SendServerRes(w, response, http.StatusOK, nil)
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		transport.SendServerRes(w, []byte("Event ID must be an integer"), http.StatusUnprocessableEntity, err)
		return
	}

	event, err := h.EventService.GetEventByID(r.Context(), h.DB, id)
	if errors.Is(err, services.ErrEventNotFound) {
		transport.SendServerRes(w, []byte("Event not found"), http.StatusNotFound, err)
		return
	}
	if err != nil {
		transport.SendServerRes(w, []byte("Failed to get event: "+err.Error()), http.StatusInternalServerError, err)
		return
	}

	response, err := json.Marshal(event)
	if err != nil {
		transport.SendServerRes(w, []byte("Error marshaling JSON"), http.StatusInternalServerError, err)
		return
	}

	transport.SendServerRes(w, response, http.StatusOK, nil)
}

func (h *EventHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.EventService.GetEvents(r.Context(), h.DB)
	if err != nil {
		transport.SendServerRes(w, []byte("Failed to get events: "+err.Error()), http.StatusInternalServerError, err)
		return
	}

	document := services.BuildCalendar(h.Cfg.CalendarProdID, events)
	transport.SendCalendarRes(w, []byte(document))
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		transport.SendServerRes(w, []byte("Event ID must be an integer"), http.StatusUnprocessableEntity, err)
		return
	}

	err = h.EventService.DeleteEvent(r.Context(), h.DB, id)
	if errors.Is(err, services.ErrEventNotFound) {
		transport.SendServerRes(w, []byte("Event not found"), http.StatusNotFound, err)
		return
	}
	if err != nil {
		transport.SendServerRes(w, []byte("Failed to delete event: "+err.Error()), http.StatusInternalServerError, err)
		return
	}

	response, err := json.Marshal(map[string]string{"message": "Event deleted successfully"})
	if err != nil {
		transport.SendServerRes(w, []byte("Error marshaling JSON"), http.StatusInternalServerError, err)
		return
	}

	transport.SendServerRes(w, response, http.StatusOK, nil)
}

type cleanupResponse struct {
	Message string `json:"message"`
	Removed int64  `json:"removed"`
}

func (h *EventHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	// The cutoff is evaluated once, here, so the removed count is exact.
	now := time.Now().UTC()
	count, err := h.EventService.DeletePastEvents(r.Context(), h.DB, now)
	if err != nil {
		transport.SendServerRes(w, []byte("Failed to clean up past events: "+err.Error()), http.StatusInternalServerError, err)
		return
	}

	response, err := json.Marshal(cleanupResponse{
		Message: "Removed " + strconv.FormatInt(count, 10) + " past events",
		Removed: count,
	})
	if err != nil {
		transport.SendServerRes(w, []byte("Error marshaling JSON"), http.StatusInternalServerError, err)
		return
	}

	log.Printf("Removed %d past events", count)
	transport.SendServerRes(w, response, http.StatusOK, nil)
}
