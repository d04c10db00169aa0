// Package dates normalizes free-form date input to Jira's release date
// format. All parsing is UTC; times of day are truncated to the calendar day.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// DayFormat is the wire format Jira expects for release dates.
const DayFormat = "2006-01-02"

// layouts accepted for free-form input, tried in order. CI systems hand us
// anything from plain dates to full RFC3339 timestamps.
var layouts = []string{
	DayFormat,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
}

// Parse parses a free-form date string in UTC.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Normalize reparses a free-form date and reformats it as YYYY-MM-DD,
// calendar-day truncated at the input's UTC instant. Normalizing an already
// normalized value is a no-op.
func Normalize(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(DayFormat), nil
}

// Day formats an instant as a UTC calendar day.
func Day(t time.Time) string {
	return t.UTC().Format(DayFormat)
}
