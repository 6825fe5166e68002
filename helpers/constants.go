package helpers

const (
	MAX_TITLE_LENGTH       = 200
	MAX_DESCRIPTION_LENGTH = 2000
	MAX_VENUE_LENGTH       = 200
	MAX_URL_LENGTH         = 500
	MAX_TAG_COUNT          = 10
	MAX_TAG_LENGTH         = 50
)

const (
	DEFAULT_APP_TITLE       = "Community Events Calendar"
	DEFAULT_CALENDAR_PRODID = "-//Community Events Calendar//EN"
	DEFAULT_DATABASE_URL    = "postgres://localhost:5432/events"
	DEFAULT_AUTH_USERNAME   = "admin"
	DEFAULT_PORT            = "8000"

	ICS_FILENAME = "events.ics"
)
