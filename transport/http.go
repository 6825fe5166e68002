package transport

import (
	"log"
	"net/http"

	"github.com/communitycal/api/helpers"
)

// SendServerRes writes a JSON API response. `err` is logged when status is
// 400 or greater, but never leaks into the body beyond what the caller put there.
func SendServerRes(w http.ResponseWriter, body []byte, status int, err error) {
	if status >= 400 {
		internalMsg := "ERR: " + string(body)
		if err != nil {
			internalMsg += " || Internal error msg: " + err.Error()
		}
		log.Println(internalMsg)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, writeErr := w.Write(body); writeErr != nil {
		log.Println("ERR: Error writing response:", writeErr)
	}
}

// SendHtmlRes writes a rendered HTML page.
func SendHtmlRes(w http.ResponseWriter, body []byte, status int, err error) {
	if status >= 400 {
		internalMsg := "ERR: " + string(body)
		if err != nil {
			internalMsg += " || Internal error msg: " + err.Error()
		}
		log.Println(internalMsg)
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	if _, writeErr := w.Write(body); writeErr != nil {
		log.Println("ERR: Error writing response:", writeErr)
	}
}

// SendCalendarRes writes an iCalendar document as a file attachment.
func SendCalendarRes(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", "attachment; filename="+helpers.ICS_FILENAME)
	w.WriteHeader(http.StatusOK)
	if _, writeErr := w.Write(body); writeErr != nil {
		log.Println("ERR: Error writing response:", writeErr)
	}
}
