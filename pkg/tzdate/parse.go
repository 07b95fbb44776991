package tzdate

import (
	"strings"
	"time"
)

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04Z07:00",
	"2006-01-02Z07:00",
}

// ParseInstant parses an ISO-8601 timestamp into a UTC instant. A string
// without a UTC designator or numeric offset is read as UTC, never as local
// time.
func ParseInstant(s string) (time.Time, error) {
	raw := s
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, &DateParseError{Input: raw}
	}
	if !hasZone(s) {
		s += "Z"
	}

	var lastErr error
	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, &DateParseError{Input: raw, Err: lastErr}
}

// hasZone reports whether the time part of s carries "Z" or a numeric offset.
// Date-only strings never do.
func hasZone(s string) bool {
	i := strings.IndexAny(s, "T ")
	if i < 0 {
		return false
	}
	clock := s[i+1:]
	return strings.HasSuffix(clock, "Z") || strings.ContainsAny(clock, "+-")
}
