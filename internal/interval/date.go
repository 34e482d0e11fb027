package interval

import (
	"time"

	"github.com/pkg/errors"
)

const secondsPerDay = 86400

// CalendarDate is a proleptic-Gregorian calendar day with no time-of-day.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate validates the triple and returns the date.
func NewCalendarDate(year int, month time.Month, day int) (CalendarDate, error) {
	if month < time.January || month > time.December {
		return CalendarDate{}, errors.Wrapf(ErrParseFailure, "month %d out of range", month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return CalendarDate{}, errors.Wrapf(ErrParseFailure, "day %d out of range for %04d-%02d", day, year, month)
	}
	return CalendarDate{Year: year, Month: month, Day: day}, nil
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// OrdinalDate resolves a year and a 1-based day-of-year.
func OrdinalDate(year, yearDay int) (CalendarDate, error) {
	if yearDay < 1 || yearDay > DaysInYear(year) {
		return CalendarDate{}, errors.Wrapf(ErrParseFailure, "day-of-year %d out of range for %04d", yearDay, year)
	}
	return DateOf(time.Date(year, time.January, yearDay, 0, 0, 0, 0, time.UTC)), nil
}

// Time returns midnight UTC at the start of the day.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or +1.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool  { return d.Compare(o) > 0 }
func (d CalendarDate) Equal(o CalendarDate) bool  { return d.Compare(o) == 0 }

// AddDays shifts the date by n days (n may be negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// YearDay is the 1-based ordinal position of the day within its year.
func (d CalendarDate) YearDay() int {
	return d.Time().YearDay()
}

// String renders yyyy-MM-dd.
func (d CalendarDate) String() string {
	return d.Time().Format(time.DateOnly)
}

// daysBetween counts calendar days from a to b (b - a).
func daysBetween(a, b CalendarDate) int {
	// Unix seconds stay exact over any span the Gregorian calendar can express,
	// unlike time.Duration which overflows near 292 years.
	return int((b.Time().Unix() - a.Time().Unix()) / secondsPerDay)
}

// IsLeapYear reports whether year has a February 29 in the proleptic calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

func DaysInMonth(year int, month time.Month) int {
	// Day zero of the following month normalizes to the last day of month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
