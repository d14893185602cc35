package usecase

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseDeadline accepts a calendar date or an RFC 3339 instant. Dates are
// interpreted in now's location, and the past check compares calendar days
// there, so a deadline of today is always accepted.
func parseDeadline(value string, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	loc := now.Location()

	deadline, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		deadline, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, ErrInvalidDeadline
		}
	}

	if startOfDay(deadline.In(loc)).Before(startOfDay(now)) {
		return nil, ErrPastDeadline
	}
	return &deadline, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
