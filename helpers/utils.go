package helpers

import (
	"fmt"
	"time"
)

// eventTimeLayouts are the accepted intake time formats, tried in order. The
// last two cover datetime-local form values, which carry no zone and are
// treated as UTC.
var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseEventTime parses a submitted timestamp string and normalizes it to UTC.
func ParseEventTime(value string) (time.Time, error) {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp: %q", value)
}
