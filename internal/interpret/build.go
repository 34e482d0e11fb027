package interpret

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"eventdate/internal/alias"
	"eventdate/internal/interval"
)

// BuildFromAtomicParts derives a canonical event date for a record that
// carries a verbatim date alongside separate day-of-year, year, month and
// day fields. A verbatim date that reads cleanly wins; otherwise the
// atomic fields are assembled, most specific combination first. month may
// be a number or a month name.
func BuildFromAtomicParts(verbatim, startDOY, endDOY, year, month, day string) (string, bool) {
	if v, ok := buildableValue(verbatim); ok {
		return v, true
	}

	y, hasYear := positive(year)
	if !hasYear {
		return "", false
	}
	m, hasMonth := monthField(month)
	d, hasDay := positive(day)
	monthBlank := strings.TrimSpace(month) == ""
	dayBlank := strings.TrimSpace(day) == ""

	if hasMonth && hasDay {
		if date, err := interval.NewCalendarDate(y, m, d); err == nil {
			return date.String(), true
		}
	}
	if start, ok := positive(startDOY); ok {
		if v, ok := fromDayOfYear(y, start, endDOY); ok {
			return v, true
		}
	}
	if hasMonth && dayBlank {
		return fmt.Sprintf("%04d-%02d", y, m), true
	}
	if monthBlank && dayBlank {
		return fmt.Sprintf("%04d", y), true
	}
	return "", false
}

// fromDayOfYear resolves start and optional end ordinal days. An end day
// before the start day is taken to fall in the following year.
func fromDayOfYear(year, startDOY int, endDOY string) (string, bool) {
	start, err := interval.OrdinalDate(year, startDOY)
	if err != nil {
		return "", false
	}
	end := start
	if e, ok := positive(endDOY); ok {
		endYear := year
		if e < startDOY {
			endYear++
		}
		if end, err = interval.OrdinalDate(endYear, e); err != nil {
			return "", false
		}
	}
	iv, err := interval.FromDates(start, end)
	if err != nil {
		return "", false
	}
	return iv.String(), true
}

// BuildFromStartEnd joins separately recorded start and end dates into one
// value, taking the first day of the start and the last of the end. When
// only one side reads, its value is returned alone. Sides are accepted on
// the same terms as BuildFromAtomicParts' verbatim date.
func BuildFromStartEnd(startText, endText string) (string, bool) {
	start, startOK := buildableValue(startText)
	end, endOK := buildableValue(endText)

	switch {
	case startOK && endOK:
		first, _, _ := splitRange(start)
		_, last, _ := splitRange(end)
		res, ok := rangeOf(first, last)
		if !ok {
			return "", false
		}
		return res.Value, true
	case startOK:
		return start, true
	case endOK:
		return end, true
	default:
		return "", false
	}
}

// buildableValue interprets text for the builders. Only DATE, RANGE and
// AMBIGUOUS results count; SUSPECT values await review and a disjunct
// range is not one span.
func buildableValue(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	switch res := Interpret(text); res.State {
	case StateDate, StateRange, StateAmbiguous:
		return res.Value, true
	default:
		return "", false
	}
}

func positive(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func monthField(s string) (time.Month, bool) {
	if n, ok := positive(s); ok {
		if n > 12 {
			return 0, false
		}
		return time.Month(n), true
	}
	return alias.MonthFromToken(strings.TrimSpace(s))
}
