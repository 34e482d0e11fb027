package interpret

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventdate/internal/alias"
	"eventdate/internal/interval"
)

var (
	ordinalSuffix  = regexp.MustCompile(`(?i)\b([0-9]{1,2})(?:st|nd|rd|th|er)\b`)
	ordinalMark    = regexp.MustCompile(`([0-9]{1,2})[º°ª]`)
	fillerWords    = regexp.MustCompile(`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tues|tue|wed|thurs|thu|fri|sat|sun|the|of|de|del|le|du|den|der|am|on)\b\.?`)
	commas         = regexp.MustCompile(`[,;]`)
	flattenPattern = regexp.MustCompile(`[\s,./_-]+`)
	spaces         = regexp.MustCompile(`\s+`)
)

// partLayout is one Go time layout together with the fields it supplies.
type partLayout struct {
	layout                    string
	hasYear, hasMonth, hasDay bool
}

// partLayouts are tried in order against flattened text; full dates first.
var partLayouts = []partLayout{
	{"2 January 2006", true, true, true},
	{"January 2 2006", true, true, true},
	{"2006 January 2", true, true, true},
	{"2006 1 2", true, true, true},
	{"January 2006", true, true, false},
	{"2006 January", true, true, false},
	{"2006 1", true, true, false},
	{"2 January", false, true, true},
	{"January 2", false, true, true},
	{"2 2006", true, false, true},
	{"January", false, true, false},
	{"2006", true, false, false},
	{"2", false, false, true},
}

// datePart is a possibly incomplete date read from one piece of text.
type datePart struct {
	year  int
	month time.Month
	day   int

	hasYear, hasMonth, hasDay bool
}

// prepareAlpha rewrites month aliases and spelled-out days, and removes
// ordinal suffixes, weekday names and filler words. Range separators are
// kept so the result can still be split.
func prepareAlpha(s string) string {
	s = fillerWords.ReplaceAllString(s, " ")
	s = alias.NormalizeMonthTokens(s)
	s = alias.NormalizeDayWords(s)
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = ordinalMark.ReplaceAllString(s, "$1")
	s = commas.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// flatten turns every run of separators into one space.
func flatten(s string) string {
	return strings.TrimSpace(flattenPattern.ReplaceAllString(s, " "))
}

// parsePart reads s with the first layout that fits.
func parsePart(s string) (datePart, bool) {
	s = flatten(s)
	if s == "" {
		return datePart{}, false
	}
	for _, l := range partLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		p := datePart{hasYear: l.hasYear, hasMonth: l.hasMonth, hasDay: l.hasDay}
		if l.hasYear {
			p.year = t.Year()
		}
		if l.hasMonth {
			p.month = t.Month()
		}
		if l.hasDay {
			p.day = t.Day()
		}
		return p, true
	}
	return datePart{}, false
}

// complete reports whether p names a year and never a day without a month.
func (p datePart) complete() bool {
	return p.hasYear && (!p.hasDay || p.hasMonth)
}

// value renders p at the precision its fields support. A day that does
// not exist in the month is rejected.
func (p datePart) value() (string, interval.Precision, bool) {
	switch {
	case !p.complete():
		return "", 0, false
	case p.hasDay:
		d, err := interval.NewCalendarDate(p.year, p.month, p.day)
		if err != nil {
			return "", 0, false
		}
		return d.String(), interval.PrecisionDay, true
	case p.hasMonth:
		return fmt.Sprintf("%04d-%02d", p.year, p.month), interval.PrecisionMonth, true
	default:
		return fmt.Sprintf("%04d", p.year), interval.PrecisionYear, true
	}
}

// parseAlphabetic reads a single date written with a month name or roman
// numeral in any of the supported locales.
func parseAlphabetic(s string, _ *cascadeCtx) (EventResult, bool) {
	p, ok := parsePart(prepareAlpha(s))
	if !ok {
		return EventResult{}, false
	}
	v, precision, ok := p.value()
	if !ok {
		return EventResult{}, false
	}
	if precision == interval.PrecisionDay {
		return result(StateDate, v), true
	}
	return result(StateRange, v), true
}

func parseIdeographic(s string, c *cascadeCtx) (EventResult, bool) {
	res, ok := parseAlphabetic(s, c)
	if !ok {
		return EventResult{}, false
	}
	return res.withComment("ideographic date markers"), true
}

// parseAmbiguousNumeric reads n/n/yyyy in both month-first and day-first
// order.
func parseAmbiguousNumeric(s string, c *cascadeCtx) (EventResult, bool) {
	m := ambiguousNumericGuard.FindStringSubmatch(s)
	if m[2] != m[4] {
		return EventResult{}, false
	}
	return readBothWays(atoi(m[5]), atoi(m[1]), atoi(m[3]), c.opts)
}

// parseYearFirstDotted reads yyyy.n.n as yyyy.mm.dd and yyyy.dd.mm.
func parseYearFirstDotted(s string, c *cascadeCtx) (EventResult, bool) {
	m := yearFirstDottedGuard.FindStringSubmatch(s)
	return readBothWays(atoi(m[1]), atoi(m[2]), atoi(m[3]), c.opts)
}

// readBothWays tries (first=month, second=day) and the swapped reading.
// When both are valid and differ the result carries them as earliest/latest.
func readBothWays(year, first, second int, opts Options) (EventResult, bool) {
	monthFirst, mfErr := interval.NewCalendarDate(year, time.Month(first), second)
	dayFirst, dfErr := interval.NewCalendarDate(year, time.Month(second), first)
	mfOK, dfOK := mfErr == nil, dfErr == nil
	if mf := opts.AssumeMonthFirst; mf != nil {
		mfOK = mfOK && *mf
		dfOK = dfOK && !*mf
	}

	switch {
	case mfOK && dfOK:
		if monthFirst.Equal(dayFirst) {
			return result(StateDate, monthFirst.String()), true
		}
		early, late := monthFirst, dayFirst
		if late.Before(early) {
			early, late = late, early
		}
		return result(StateAmbiguous, early.String()+"/"+late.String(),
			"month-first and day-first readings differ"), true
	case mfOK:
		return result(StateDate, monthFirst.String(), "read month first"), true
	case dfOK:
		return result(StateDate, dayFirst.String(), "read day first"), true
	default:
		return EventResult{}, false
	}
}
