package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/communitycal/api/helpers"
	"github.com/communitycal/api/services"
	"github.com/communitycal/api/templates/pages"
	"github.com/communitycal/api/transport"
	"github.com/communitycal/api/types"
)

// PageHandler serves the HTML form intake. Submissions run through the same
// sanitizer as the JSON API, only the error reporting differs: the form
// redirects with a generic flag instead of field-level detail.
type PageHandler struct {
	EventService types.EventServiceInterface
	DB           types.PostgresDBAPI
	Cfg          *helpers.Config
}

func NewPageHandler(eventService types.EventServiceInterface, db types.PostgresDBAPI, cfg *helpers.Config) *PageHandler {
	return &PageHandler{EventService: eventService, DB: db, Cfg: cfg}
}

func (h *PageHandler) GetSubmitEventPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	success := query.Get("success") != ""
	hasError := query.Get("error") != ""

	component := pages.SubmitEventPage(h.Cfg.AppTitle, success, hasError)
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		transport.SendServerRes(w, []byte("Failed to render page"), http.StatusInternalServerError, err)
		return
	}

	transport.SendHtmlRes(w, buf.Bytes(), http.StatusOK, nil)
}

func (h *PageHandler) PostSubmitEventForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("Failed to parse submit-event form: %v", err)
		http.Redirect(w, r, "/submit-event?error=1", http.StatusSeeOther)
		return
	}

	raw := types.RawEvent{
		Title:       r.FormValue("title"),
		StartTime:   r.FormValue("start_time"),
		EndTime:     r.FormValue("end_time"),
		Description: r.FormValue("description"),
		Venue:       r.FormValue("venue"),
		Url:         r.FormValue("url"),
		Tags:        services.SplitTags(r.FormValue("tags")),
	}

	insert, err := services.SanitizeRawEvent(raw)
	if err != nil {
		log.Printf("Rejected form submission: %v", err)
		http.Redirect(w, r, "/submit-event?error=1", http.StatusSeeOther)
		return
	}

	res, err := h.EventService.InsertEvent(r.Context(), h.DB, *insert)
	if err != nil {
		log.Printf("Failed to insert form submission: %v", err)
		http.Redirect(w, r, "/submit-event?error=1", http.StatusSeeOther)
		return
	}

	log.Printf("Inserted new event via form: %+v", res)
	http.Redirect(w, r, "/submit-event?success=1", http.StatusSeeOther)
}
