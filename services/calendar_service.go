package services

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/communitycal/api/types"
)

// BuildCalendar serializes the full event set into a single iCalendar
// document. The whole document is rebuilt on every call, but each event's UID
// is the one persisted at creation time, so only DTSTAMP and CREATED vary
// between builds with no intervening mutation.
func BuildCalendar(prodID string, events []types.Event) string {
	cal := ics.NewCalendar()
	cal.SetProductId(prodID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	now := time.Now().UTC()
	for _, event := range events {
		ve := cal.AddEvent(event.Uid)
		ve.SetDtStampTime(now)
		ve.SetCreatedTime(now)
		ve.SetStartAt(event.StartTime.UTC())
		ve.SetEndAt(event.EndTime.UTC())
		ve.SetSummary(event.Title)
		ve.SetDescription(event.Description)
		ve.SetLocation(event.Venue)
		ve.SetURL(event.Url)
	}

	return cal.Serialize()
}
