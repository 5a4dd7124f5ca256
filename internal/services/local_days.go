package services

import (
	"errors"
	"strings"
	"time"
)

const spanDateLayout = "2006-01-02"

var (
	ErrSpanFromInvalid = errors.New("range start date invalid")
	ErrSpanToInvalid   = errors.New("range end date invalid")
	ErrSpanReversed    = errors.New("range end precedes start")
)

// DateAtLocation returns local midnight of the calendar day holding value.
// A nil location means UTC.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open [start, end) bounds of the local day.
func DayRange(value time.Time, location *time.Location) (start time.Time, end time.Time) {
	start = DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// DateSpan is an inclusive range of local calendar days. A nil bound is open.
type DateSpan struct {
	From *time.Time
	To   *time.Time
}

// ParseDateSpan reads optional YYYY-MM-DD bounds in location.
func ParseDateSpan(rawFrom string, rawTo string, location *time.Location) (DateSpan, error) {
	from, ok := parseSpanDay(rawFrom, location)
	if !ok {
		return DateSpan{}, ErrSpanFromInvalid
	}
	to, ok := parseSpanDay(rawTo, location)
	if !ok {
		return DateSpan{}, ErrSpanToInvalid
	}
	if from != nil && to != nil && to.Before(*from) {
		return DateSpan{}, ErrSpanReversed
	}
	return DateSpan{From: from, To: to}, nil
}

// Closed fills open bounds: the end defaults to today and the start to
// days-1 days before the end.
func (span DateSpan) Closed(today time.Time, days int) (time.Time, time.Time) {
	to := today
	if span.To != nil {
		to = *span.To
	}
	from := to.AddDate(0, 0, -(days - 1))
	if span.From != nil {
		from = *span.From
	}
	return from, to
}

func parseSpanDay(raw string, location *time.Location) (*time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, true
	}
	parsed, err := time.ParseInLocation(spanDateLayout, value, location)
	if err != nil {
		return nil, false
	}
	day := DateAtLocation(parsed, location)
	return &day, true
}
