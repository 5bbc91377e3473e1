package domain

import "time"

// DefaultSize is the result count used when a request does not specify one.
const DefaultSize = 10

// QueryRequest carries the parameters of one search request. All optional
// fields are explicit; there is no positional calling convention.
type QueryRequest struct {
	Text string
	From *time.Time // inclusive lower date bound
	To   *time.Time // inclusive upper date bound
	Near string     // free-text place name or "lat,lon" literal
	Size int
}

// DateRange is an inclusive [Start, End] publication-date filter.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range (inclusive).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// EffectiveRange derives the date filter from the request bounds.
// A From without a To implies an effective end of December 31 of the same
// year. Returns nil when neither bound is set.
func (q *QueryRequest) EffectiveRange() *DateRange {
	if q.From == nil && q.To == nil {
		return nil
	}

	r := &DateRange{}
	if q.From != nil {
		r.Start = *q.From
	}

	switch {
	case q.To != nil:
		r.End = *q.To
	case q.From != nil:
		r.End = time.Date(q.From.Year(), time.December, 31, 23, 59, 59, 0, time.UTC)
	default:
		// To-only filter: open start
		r.Start = time.Time{}
		r.End = *q.To
	}
	return r
}

// ParseDate parses an ISO-8601 document date. Returns false for empty or
// malformed values; callers treat that as "no date", never as an error.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
