// Package interval models closed calendar-day ranges and the restricted
// ISO-8601-like grammar used to write them (yyyy, yyyy-MM, yyyy-DDD,
// yyyy-MM-dd, or two of those joined by "/").
package interval

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Precision is the explicit resolution of one side of an interval string.
type Precision int

const (
	PrecisionYear Precision = iota + 1
	PrecisionMonth
	PrecisionOrdinalDay
	PrecisionDay
)

func (p Precision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionOrdinalDay:
		return "ordinal-day"
	case PrecisionDay:
		return "day"
	default:
		return "unknown"
	}
}

// AtLeastDay reports whether p pins down a single day.
func (p Precision) AtLeastDay() bool {
	return p == PrecisionDay || p == PrecisionOrdinalDay
}

var (
	yearPattern      = regexp.MustCompile(`^([0-9]{4})$`)
	yearMonthPattern = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})$`)
	ordinalPattern   = regexp.MustCompile(`^([0-9]{4})-([0-9]{3})$`)
	datePattern      = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})-([0-9]{2})$`)
)

// CalendarInterval is an immutable closed range of calendar days.
// The zero value is not a valid interval; use the constructors.
type CalendarInterval struct {
	start CalendarDate
	end   CalendarDate
}

// FromDates builds [start, end]; it fails with ErrDateOrder if end < start.
func FromDates(start, end CalendarDate) (CalendarInterval, error) {
	if end.Before(start) {
		return CalendarInterval{}, errors.Wrapf(ErrDateOrder, "%s/%s", start, end)
	}
	return CalendarInterval{start: start, end: end}, nil
}

// FromDate builds the single-day interval [d, d].
func FromDate(d CalendarDate) CalendarInterval {
	return CalendarInterval{start: d, end: d}
}

// Parse builds an interval from its string form. Reduced-precision sides
// widen to the full span they name: a year covers Jan 1..Dec 31 and a
// year-month covers the whole month.
func Parse(s string) (CalendarInterval, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CalendarInterval{}, ErrEmptyInput
	}

	parts := strings.Split(s, "/")
	switch len(parts) {
	case 1:
		start, end, _, err := parseSide(parts[0])
		if err != nil {
			return CalendarInterval{}, err
		}
		return CalendarInterval{start: start, end: end}, nil
	case 2:
		start, _, _, err := parseSide(parts[0])
		if err != nil {
			return CalendarInterval{}, err
		}
		_, end, _, err := parseSide(parts[1])
		if err != nil {
			return CalendarInterval{}, err
		}
		return FromDates(start, end)
	default:
		return CalendarInterval{}, errors.Wrapf(ErrParseFailure, "%q", s)
	}
}

// PrecisionOf classifies a single (slash-free) side.
func PrecisionOf(side string) (Precision, bool) {
	_, _, p, err := parseSide(side)
	if err != nil {
		return 0, false
	}
	return p, true
}

// parseSide returns the first and last day named by one side of the grammar.
func parseSide(side string) (CalendarDate, CalendarDate, Precision, error) {
	side = strings.TrimSpace(side)
	if side == "" {
		return CalendarDate{}, CalendarDate{}, 0, ErrEmptyInput
	}

	if m := datePattern.FindStringSubmatch(side); m != nil {
		d, err := NewCalendarDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]))
		if err != nil {
			return CalendarDate{}, CalendarDate{}, 0, err
		}
		return d, d, PrecisionDay, nil
	}
	if m := ordinalPattern.FindStringSubmatch(side); m != nil {
		d, err := OrdinalDate(atoi(m[1]), atoi(m[2]))
		if err != nil {
			return CalendarDate{}, CalendarDate{}, 0, err
		}
		return d, d, PrecisionOrdinalDay, nil
	}
	if m := yearMonthPattern.FindStringSubmatch(side); m != nil {
		year, month := atoi(m[1]), time.Month(atoi(m[2]))
		first, err := NewCalendarDate(year, month, 1)
		if err != nil {
			return CalendarDate{}, CalendarDate{}, 0, err
		}
		last := CalendarDate{Year: year, Month: month, Day: DaysInMonth(year, month)}
		return first, last, PrecisionMonth, nil
	}
	if m := yearPattern.FindStringSubmatch(side); m != nil {
		year := atoi(m[1])
		return CalendarDate{Year: year, Month: time.January, Day: 1},
			CalendarDate{Year: year, Month: time.December, Day: 31},
			PrecisionYear, nil
	}
	return CalendarDate{}, CalendarDate{}, 0, errors.Wrapf(ErrParseFailure, "%q", side)
}

func (iv CalendarInterval) Start() CalendarDate { return iv.start }
func (iv CalendarInterval) End() CalendarDate   { return iv.end }

func (iv CalendarInterval) IsSingleDay() bool {
	return iv.start.Equal(iv.end)
}

// Days is the inclusive number of calendar days covered.
func (iv CalendarInterval) Days() int {
	return daysBetween(iv.start, iv.end) + 1
}

// DurationSeconds spans the start of the first day to the end of the last,
// so a single day is exactly 86400 seconds.
func (iv CalendarInterval) DurationSeconds() int64 {
	return int64(iv.Days()) * secondsPerDay
}

// Contains reports whether other lies entirely within iv.
func (iv CalendarInterval) Contains(other CalendarInterval) bool {
	return !other.start.Before(iv.start) && !other.end.After(iv.end)
}

// ContainsDate reports whether d falls on any day of iv.
func (iv CalendarInterval) ContainsDate(d CalendarDate) bool {
	return !d.Before(iv.start) && !d.After(iv.end)
}

// Overlaps reports whether the two closed ranges share at least one day.
func (iv CalendarInterval) Overlaps(other CalendarInterval) bool {
	return !iv.end.Before(other.start) && !other.end.Before(iv.start)
}

// String renders the canonical day-precision form: yyyy-MM-dd for a single
// day, start/end otherwise.
func (iv CalendarInterval) String() string {
	if iv.IsSingleDay() {
		return iv.start.String()
	}
	return iv.start.String() + "/" + iv.end.String()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
