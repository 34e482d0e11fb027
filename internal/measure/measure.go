// Package measure derives precision, duration and leap-day facts from
// event-date strings, always through interval.Parse.
package measure

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/teambition/rrule-go"

	"eventdate/internal/interval"
)

const (
	secondsPerDay = 86400
	daysPerDecade = 3653
)

// ErrTimeExtraction is returned when neither a calendar interval nor a
// timestamp interval can be derived from the input.
var ErrTimeExtraction = errors.New("measure: no interval or timestamp could be extracted")

// SpecificToDayScale reports whether the interval covers at most one day.
func SpecificToDayScale(eventDate string) bool {
	iv, err := interval.Parse(eventDate)
	if err != nil {
		return false
	}
	return iv.DurationSeconds() <= secondsPerDay
}

// SpecificToMonthScale reports whether the interval covers at most 31 days.
func SpecificToMonthScale(eventDate string) bool {
	iv, err := interval.Parse(eventDate)
	if err != nil {
		return false
	}
	return iv.DurationSeconds() <= 31*secondsPerDay
}

// SpecificToYearScale reports whether the interval covers at most a year:
// 366 days when the interval includes a February 29, otherwise 365.
func SpecificToYearScale(eventDate string) bool {
	iv, err := interval.Parse(eventDate)
	if err != nil {
		return false
	}
	limit := int64(365)
	if countLeapDays(iv) > 0 {
		limit = 366
	}
	return iv.DurationSeconds() <= limit*secondsPerDay
}

// SpecificToDecadeScale reports whether the interval covers at most 3653 days.
func SpecificToDecadeScale(eventDate string) bool {
	iv, err := interval.Parse(eventDate)
	if err != nil {
		return false
	}
	return iv.DurationSeconds() <= daysPerDecade*secondsPerDay
}

// MeasureDurationSeconds returns the length of eventDate in seconds. A single
// calendar or ordinal day is 86400; a timestamped value is measured exactly;
// anything else is the whole-day span of its calendar interval.
func MeasureDurationSeconds(eventDate string) (int64, error) {
	eventDate = strings.TrimSpace(eventDate)
	if eventDate == "" {
		return 0, errors.Wrap(ErrTimeExtraction, "empty event date")
	}

	if interval.HasTimeComponent(eventDate) {
		ti, err := interval.ParseTimeInterval(eventDate)
		if err != nil {
			return 0, errors.Wrapf(ErrTimeExtraction, "%q: %v", eventDate, err)
		}
		return ti.Seconds(), nil
	}

	if p, ok := interval.PrecisionOf(eventDate); ok && p.AtLeastDay() {
		return secondsPerDay, nil
	}

	iv, err := interval.Parse(eventDate)
	if err != nil {
		return 0, errors.Wrapf(ErrTimeExtraction, "%q: %v", eventDate, err)
	}
	return iv.DurationSeconds(), nil
}

// CountLeapDays returns how many February 29ths fall within eventDate.
// Unparseable input counts zero.
func CountLeapDays(eventDate string) int {
	iv, err := interval.Parse(eventDate)
	if err != nil {
		return 0
	}
	return countLeapDays(iv)
}

// IncludesLeapDay reports whether eventDate contains a February 29.
func IncludesLeapDay(eventDate string) bool {
	return CountLeapDays(eventDate) > 0
}

// leapWindowYears bounds one rrule query. Between stops yielding
// occurrences roughly 292 years past Dtstart.
const leapWindowYears = 200

// countLeapDays walks one yearly Feb-29 recurrence per year of the span,
// in windows that each restart at January 1. Common years yield no
// occurrence, so the count never iterates days.
func countLeapDays(iv interval.CalendarInterval) int {
	lo, hi := iv.Start().Time(), iv.End().Time()
	first, last := iv.Start().Year, iv.End().Year

	n := 0
	if first == 0 {
		// rrule yields nothing in year zero.
		if iv.ContainsDate(interval.CalendarDate{Year: 0, Month: time.February, Day: 29}) {
			n++
		}
		first = 1
	}

	for y := first; y <= last; y += leapWindowYears {
		windowStart := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		windowEnd := time.Date(min(y+leapWindowYears-1, last), time.December, 31, 0, 0, 0, 0, time.UTC)
		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:       rrule.YEARLY,
			Bymonth:    []int{2},
			Bymonthday: []int{29},
			Dtstart:    windowStart,
		})
		if err != nil {
			return n
		}
		n += len(rule.Between(later(lo, windowStart), earlier(hi, windowEnd), true))
	}
	return n
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// HasResolutionDayOrFiner reports whether every side of eventDate names a
// single day (yyyy-MM-dd or yyyy-DDD).
func HasResolutionDayOrFiner(eventDate string) bool {
	eventDate = strings.TrimSpace(eventDate)
	if eventDate == "" {
		return false
	}
	if interval.HasTimeComponent(eventDate) {
		_, err := interval.ParseTimeInterval(eventDate)
		return err == nil
	}
	for _, side := range strings.Split(eventDate, "/") {
		p, ok := interval.PrecisionOf(side)
		if !ok || !p.AtLeastDay() {
			return false
		}
	}
	return true
}
