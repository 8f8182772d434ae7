// Package dateutils provides date parsing and the request date window used to
// scope transaction queries.
package dateutils

import (
	"fmt"
	"time"
)

// DateLayoutISO is the wire format for all dates (ISO-8601 calendar date).
const DateLayoutISO = "2006-01-02"

// DefaultWindowDays is the trailing window applied when the caller omits a bound.
const DefaultWindowDays = 30

// ErrInvalidWindow is returned when start_date is after end_date. An inverted
// window must never silently widen to all transactions.
var ErrInvalidWindow = fmt.Errorf("invalid date window: start_date is after end_date")

// Window is an inclusive date range. Both bounds are ISO-8601 calendar dates.
type Window struct {
	Start string
	End   string
}

// ParseISODate parses an ISO-8601 calendar date.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", s, err)
	}
	return t, nil
}

// ToISODate formats a time.Time value as an ISO calendar date.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// ResolveWindow builds the effective window from optional caller-supplied
// bounds. A missing end defaults to now's calendar date; a missing start
// defaults to end minus DefaultWindowDays. Windows are computed fresh per
// request and never persisted.
func ResolveWindow(start, end string, now time.Time) (Window, error) {
	if end == "" {
		end = ToISODate(now)
	}
	endDate, err := ParseISODate(end)
	if err != nil {
		return Window{}, err
	}

	if start == "" {
		start = ToISODate(endDate.AddDate(0, 0, -DefaultWindowDays))
	}
	startDate, err := ParseISODate(start)
	if err != nil {
		return Window{}, err
	}

	if startDate.After(endDate) {
		return Window{}, fmt.Errorf("%w: %s > %s", ErrInvalidWindow, start, end)
	}

	return Window{Start: start, End: end}, nil
}
