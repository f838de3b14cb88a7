package domain

import (
	"strings"
	"time"
)

const (
	layoutDate = "2006-01-02"
	endOfDay   = 24*time.Hour - time.Nanosecond
)

// DateRange is an inclusive [Start, End] window. A nil bound on either side
// disables filtering altogether.
type DateRange struct {
	Start *time.Time
	End   *time.Time

	StartRaw string
	EndRaw   string
}

// Active reports whether the range filters anything.
func (r DateRange) Active() bool {
	return r.Start != nil && r.End != nil
}

// Contains checks t against the inclusive window. Inactive ranges contain everything.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Active() {
		return true
	}
	return !t.Before(*r.Start) && !t.After(*r.End)
}

// ParseDateRange parses optional startDate/endDate query values.
// Accepts YYYY-MM-DD and RFC3339. A date-only end covers that whole day.
func ParseDateRange(startRaw, endRaw string) (DateRange, error) {
	out := DateRange{
		StartRaw: strings.TrimSpace(startRaw),
		EndRaw:   strings.TrimSpace(endRaw),
	}

	if out.StartRaw != "" {
		t, _, err := parseDate(out.StartRaw)
		if err != nil {
			return DateRange{}, ValidationError{Field: "startDate", Msg: "must be YYYY-MM-DD or RFC3339", Err: err}
		}
		out.Start = &t
	}
	if out.EndRaw != "" {
		t, dateOnly, err := parseDate(out.EndRaw)
		if err != nil {
			return DateRange{}, ValidationError{Field: "endDate", Msg: "must be YYYY-MM-DD or RFC3339", Err: err}
		}
		if dateOnly {
			t = t.Add(endOfDay)
		}
		out.End = &t
	}

	if !out.Active() {
		// one bound alone does not filter
		out.Start, out.End = nil, nil
		return out, nil
	}
	if out.Start.After(*out.End) {
		return DateRange{}, ValidationError{Field: "startDate", Msg: "must not be after endDate"}
	}
	return out, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(layoutDate, s, time.Local); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, false, nil
}
