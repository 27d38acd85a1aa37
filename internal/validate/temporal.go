package validate

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidInstant is returned for any date or datetime string that
// cannot be parsed, regardless of how it is malformed.
var ErrInvalidInstant = errors.New("invalid date or datetime")

// minDateLength is the shortest input worth attempting to parse as a
// calendar date.
const minDateLength = 8

// instantLayouts is the fixed allow-list of accepted ISO-8601 shapes,
// tried in order: date-time with offset, date-time, date-only. The
// fractional-second digits are optional in Go layouts, so each entry
// also covers its fraction-less form. A deliberately small list keeps
// failure behavior deterministic instead of delegating to a fully
// generic calendar parser.
var instantLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseInstant tries each accepted layout in order.
func parseInstant(raw string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidInstant
}

// ParseDate parses a calendar date or timestamp such as "2025-05-01".
// Inputs shorter than the minimum length of a date are rejected outright;
// anything else is matched against the ISO-8601 allow-list. Malformed
// input yields ErrInvalidInstant, never a panic.
func ParseDate(raw string) (time.Time, error) {
	if len(raw) < minDateLength {
		return time.Time{}, ErrInvalidInstant
	}
	return parseInstant(raw)
}

// ParseDateTime parses an ISO-8601 timestamp such as
// "2025-05-01T01:00Z" or "2025-05-01T01:00+00:00". A trailing Zulu
// designator is rewritten to an explicit zero UTC offset before parsing,
// so naive and Z-suffixed inputs are both accepted and denote the same
// instant. Malformed input yields ErrInvalidInstant.
func ParseDateTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, ErrInvalidInstant
	}
	if strings.HasSuffix(raw, "Z") {
		raw = strings.TrimSuffix(raw, "Z") + "+00:00"
	}
	return parseInstant(raw)
}
