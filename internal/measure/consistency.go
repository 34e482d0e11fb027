package measure

import (
	"strconv"
	"strings"

	"eventdate/internal/interval"
)

// IsConsistent reports whether the atomic year, month and day fields agree
// with eventDate. Empty fields are not checked.
func IsConsistent(eventDate, year, month, day string) bool {
	return IsConsistentWithDayOfYear(eventDate, "", "", year, month, day)
}

// IsConsistentWithDayOfYear extends IsConsistent with start and end
// day-of-year fields. Year and month are compared with the interval start.
// Day is compared with the single day, or for multi-day intervals with the
// start day, and only when neither day-of-year field is supplied. An end
// day-of-year may be omitted when the interval is a single day.
func IsConsistentWithDayOfYear(eventDate, startDOY, endDOY, year, month, day string) bool {
	eventDate = strings.TrimSpace(eventDate)
	startDOY = strings.TrimSpace(startDOY)
	endDOY = strings.TrimSpace(endDOY)
	year = strings.TrimSpace(year)
	month = strings.TrimSpace(month)
	day = strings.TrimSpace(day)

	if eventDate == "" {
		// Nothing to contradict, including the all-empty case.
		return true
	}

	iv, ok := intervalFor(eventDate)
	if !ok {
		return false
	}
	start, end := iv.Start(), iv.End()

	if year != "" && !fieldEquals(year, start.Year) {
		return false
	}
	if month != "" && !fieldEquals(month, int(start.Month)) {
		return false
	}
	if day != "" {
		switch {
		case iv.IsSingleDay():
			if !fieldEquals(day, start.Day) {
				return false
			}
		case startDOY == "" && endDOY == "":
			if !fieldEquals(day, start.Day) {
				return false
			}
		}
	}
	if startDOY != "" && !fieldEquals(startDOY, start.YearDay()) {
		return false
	}
	if endDOY != "" {
		if !fieldEquals(endDOY, end.YearDay()) {
			return false
		}
	} else if startDOY != "" && !iv.IsSingleDay() {
		// A lone start day-of-year is shorthand for a single day only.
		return false
	}
	return true
}

// intervalFor reads eventDate either as a calendar interval or, when it
// carries a time-of-day, as the calendar days of its timestamp interval.
func intervalFor(eventDate string) (interval.CalendarInterval, bool) {
	if interval.HasTimeComponent(eventDate) {
		ti, err := interval.ParseTimeInterval(eventDate)
		if err != nil {
			return interval.CalendarInterval{}, false
		}
		iv, err := ti.Dates()
		return iv, err == nil
	}
	iv, err := interval.Parse(eventDate)
	return iv, err == nil
}

func fieldEquals(field string, want int) bool {
	n, err := strconv.Atoi(field)
	return err == nil && n == want
}
