package interval

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// TimeInterval is the timestamped companion of CalendarInterval, used only
// where a verbatim value carries a time-of-day.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

var timeComponentPattern = regexp.MustCompile(`[0-9]{4}-[0-9]{2}-[0-9]{2}[T ][0-9]{2}:[0-9]{2}`)

// timestampLayouts are tried in order; layouts without an offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// HasTimeComponent reports whether s contains a date followed by a time-of-day.
func HasTimeComponent(s string) bool {
	return timeComponentPattern.MatchString(s)
}

// ParseTimestamp reads one timestamp in any of the accepted layouts.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyInput
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrParseFailure, "timestamp %q", s)
}

// ParseTimeInterval reads "t" or "t1/t2". A single timestamp is a zero-length
// interval.
func ParseTimeInterval(s string) (TimeInterval, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeInterval{}, ErrEmptyInput
	}
	parts := strings.Split(s, "/")
	if len(parts) > 2 {
		return TimeInterval{}, errors.Wrapf(ErrParseFailure, "%q", s)
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return TimeInterval{}, err
	}
	end := start
	if len(parts) == 2 {
		if end, err = ParseTimestamp(parts[1]); err != nil {
			return TimeInterval{}, err
		}
	}
	if end.Before(start) {
		return TimeInterval{}, errors.Wrapf(ErrDateOrder, "%q", s)
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Seconds is the exact elapsed time; leap seconds are not counted.
func (ti TimeInterval) Seconds() int64 {
	return ti.End.Unix() - ti.Start.Unix()
}

// Dates drops the time-of-day, keeping each endpoint's calendar day in its
// own offset.
func (ti TimeInterval) Dates() (CalendarInterval, error) {
	return FromDates(DateOf(ti.Start), DateOf(ti.End))
}

// ExtractZuluTime returns the start time-of-day of s converted to UTC,
// formatted HH:mm:ssZ.
func ExtractZuluTime(s string) (string, bool) {
	if !HasTimeComponent(s) {
		return "", false
	}
	ti, err := ParseTimeInterval(s)
	if err != nil {
		return "", false
	}
	return ti.Start.UTC().Format("15:04:05") + "Z", true
}
