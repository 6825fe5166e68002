package services

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/communitycal/api/helpers"
	"github.com/communitycal/api/types"
)

// SanitizeError reports which intake field failed and why. Handlers surface
// it as a 422 with the field name intact.
type SanitizeError struct {
	Field  string
	Reason string
}

func (e *SanitizeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func sanitizeFailure(field, reason string) error {
	return &SanitizeError{Field: field, Reason: reason}
}

// SanitizeRawEvent validates and normalizes an untrusted event submission.
// Both intake paths (JSON API and HTML form) run through here, so the rules
// are uniform: reject over truncate, and start_time must precede end_time.
//
// Rules, in order: required fields non-empty after trimming, length limits
// counted in characters (not bytes) on the trimmed input, HTML-escaping of
// every string field, optional url (empty allowed), at most 10 tags of at
// most 50 characters each, strict start < end ordering. Pure function, no
// side effects.
func SanitizeRawEvent(raw types.RawEvent) (*types.EventInsert, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return nil, sanitizeFailure("title", "field cannot be empty")
	}
	if utf8.RuneCountInString(title) > helpers.MAX_TITLE_LENGTH {
		return nil, sanitizeFailure("title", fmt.Sprintf("cannot exceed %d characters", helpers.MAX_TITLE_LENGTH))
	}

	description := strings.TrimSpace(raw.Description)
	if description == "" {
		return nil, sanitizeFailure("description", "field cannot be empty")
	}
	if utf8.RuneCountInString(description) > helpers.MAX_DESCRIPTION_LENGTH {
		return nil, sanitizeFailure("description", fmt.Sprintf("cannot exceed %d characters", helpers.MAX_DESCRIPTION_LENGTH))
	}

	venue := strings.TrimSpace(raw.Venue)
	if venue == "" {
		return nil, sanitizeFailure("venue", "field cannot be empty")
	}
	if utf8.RuneCountInString(venue) > helpers.MAX_VENUE_LENGTH {
		return nil, sanitizeFailure("venue", fmt.Sprintf("cannot exceed %d characters", helpers.MAX_VENUE_LENGTH))
	}

	if strings.TrimSpace(raw.StartTime) == "" {
		return nil, sanitizeFailure("start_time", "field cannot be empty")
	}
	if strings.TrimSpace(raw.EndTime) == "" {
		return nil, sanitizeFailure("end_time", "field cannot be empty")
	}

	url := strings.TrimSpace(raw.Url)
	if utf8.RuneCountInString(url) > helpers.MAX_URL_LENGTH {
		return nil, sanitizeFailure("url", fmt.Sprintf("cannot exceed %d characters", helpers.MAX_URL_LENGTH))
	}

	tags, err := sanitizeTags(raw.Tags)
	if err != nil {
		return nil, err
	}

	startTime, err := helpers.ParseEventTime(strings.TrimSpace(raw.StartTime))
	if err != nil {
		return nil, sanitizeFailure("start_time", err.Error())
	}
	endTime, err := helpers.ParseEventTime(strings.TrimSpace(raw.EndTime))
	if err != nil {
		return nil, sanitizeFailure("end_time", err.Error())
	}
	if !startTime.Before(endTime) {
		return nil, sanitizeFailure("start_time", "must be strictly before end_time")
	}

	return &types.EventInsert{
		Title:       html.EscapeString(title),
		StartTime:   startTime,
		EndTime:     endTime,
		Description: html.EscapeString(description),
		Venue:       html.EscapeString(venue),
		Url:         html.EscapeString(url),
		Tags:        tags,
	}, nil
}

func sanitizeTags(rawTags []string) ([]string, error) {
	tags := make([]string, 0, len(rawTags))
	for _, tag := range rawTags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if utf8.RuneCountInString(tag) > helpers.MAX_TAG_LENGTH {
			return nil, sanitizeFailure("tags", fmt.Sprintf("tag length cannot exceed %d characters", helpers.MAX_TAG_LENGTH))
		}
		tags = append(tags, html.EscapeString(tag))
	}
	if len(tags) > helpers.MAX_TAG_COUNT {
		return nil, sanitizeFailure("tags", fmt.Sprintf("maximum %d tags allowed", helpers.MAX_TAG_COUNT))
	}
	return tags, nil
}
