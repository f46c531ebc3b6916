package utils

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date format")

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseScheduledDate parses an ISO-8601 timestamp. A trailing "Z" is rewritten
// to "+00:00" first; if that fails the raw string is tried. Values without an
// offset are read as UTC.
func ParseScheduledDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	candidates := []string{value}
	if strings.HasSuffix(value, "Z") {
		candidates = []string{strings.TrimSuffix(value, "Z") + "+00:00", value}
	}

	for _, candidate := range candidates {
		for _, layout := range isoLayouts {
			if t, err := time.ParseInLocation(layout, candidate, time.UTC); err == nil {
				return t.UTC(), nil
			}
		}
	}
	return time.Time{}, ErrInvalidDate
}
