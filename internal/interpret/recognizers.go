package interpret

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"eventdate/internal/interval"
)

// recognizers run in this order; earlier entries are the unambiguous
// fixed layouts, later ones need normalization or resolve ambiguity.
var recognizers = []recognizer{
	{name: "timestamp", guard: timestampGuard, parse: parseTimestamp},
	{name: "iso-date", guard: isoDateGuard, parse: parseISODate},
	{name: "year-slash-date", guard: yearSlashDateGuard, parse: parseYearSlashDate},
	{name: "year-suffix", guard: yearSuffixGuard, parse: parseYearSuffix},
	{name: "ordinal", guard: ordinalGuard, parse: parseOrdinal},
	{name: "ordinal-range", guard: ordinalRangeGuard, parse: parseOrdinalRange},
	{name: "compact", guard: compactGuard, parse: parseCompact},
	{name: "compact-range", guard: compactRangeGuard, parse: parseCompactRange},
	{name: "year", guard: yearGuard, parse: parseYear},
	{name: "year-slash-month", guard: yearSlashMonthGuard, parse: parseYearSlashMonth},
	{name: "year-range", guard: yearRangeGuard, parse: parseYearRange},
	{name: "decade", guard: decadeGuard, parse: parseDecade},
	{name: "canonical-range", guard: canonicalRangeGuard, parse: parseCanonicalRange},
	{name: "ideographic", guard: ideographicGuard, parse: parseIdeographic},
	{name: "ambiguous-numeric", guard: ambiguousNumericGuard, parse: parseAmbiguousNumeric},
	{name: "year-first-dotted", guard: yearFirstDottedGuard, parse: parseYearFirstDotted},
	{name: "alphabetic", guard: letterGuard, parse: parseAlphabetic},
	{name: "shared-year-range", guard: sharedYearRangeGuard, parse: parseSharedYearRange},
}

var (
	timestampGuard        = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}[T ][0-9]{2}:[0-9]{2}`)
	isoDateGuard          = regexp.MustCompile(`^([0-9]{4})-([0-9]{1,2})-([0-9]{1,2})$`)
	yearSlashDateGuard    = regexp.MustCompile(`^([0-9]{4})/([0-9]{1,2})/([0-9]{1,2})$`)
	yearSuffixGuard       = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})$`)
	ordinalGuard          = regexp.MustCompile(`^([0-9]{4})-([0-9]{3})$`)
	ordinalRangeGuard     = regexp.MustCompile(`^([0-9]{4})-([0-9]{3})/(?:([0-9]{4})-)?([0-9]{3})$`)
	compactGuard          = regexp.MustCompile(`^([0-9]{4})([0-9]{2})([0-9]{2})$`)
	compactRangeGuard     = regexp.MustCompile(`^([0-9]{8})\s*[-/]\s*([0-9]{8})$`)
	yearGuard             = regexp.MustCompile(`^[0-9]{4}$`)
	yearSlashMonthGuard   = regexp.MustCompile(`^([0-9]{4})/([0-9]{1,2})$`)
	yearRangeGuard        = regexp.MustCompile(`(?i)^([0-9]{4})\s*(?:-|–|—|/|to|through|thru|until)\s*([0-9]{4})$`)
	decadeGuard           = regexp.MustCompile(`^([0-9]{3})0\s*'?s$`)
	canonicalRangeGuard   = regexp.MustCompile(`^[0-9]{4}(?:-[0-9]{2,3}(?:-[0-9]{2})?)?/[0-9]{4}(?:-[0-9]{2,3}(?:-[0-9]{2})?)?$`)
	ideographicGuard      = regexp.MustCompile(`[年月]`)
	ambiguousNumericGuard = regexp.MustCompile(`^([0-9]{1,2})([/.\- ])([0-9]{1,2})([/.\- ])([0-9]{4})$`)
	yearFirstDottedGuard  = regexp.MustCompile(`^([0-9]{4})\.([0-9]{1,2})\.([0-9]{1,2})$`)
	letterGuard           = regexp.MustCompile(`\p{L}`)
)

func parseTimestamp(s string, _ *cascadeCtx) (EventResult, bool) {
	ti, err := interval.ParseTimeInterval(s)
	if err != nil {
		return EventResult{}, false
	}
	iv, err := ti.Dates()
	if err != nil {
		return EventResult{}, false
	}
	if iv.IsSingleDay() {
		return result(StateDate, iv.String(), "time of day dropped"), true
	}
	return result(StateRange, iv.String(), "time of day dropped"), true
}

func parseISODate(s string, _ *cascadeCtx) (EventResult, bool) {
	m := isoDateGuard.FindStringSubmatch(s)
	d, ok := ymd(m[1], m[2], m[3])
	if !ok {
		return EventResult{}, false
	}
	return result(StateDate, d.String()), true
}

func parseYearSlashDate(s string, _ *cascadeCtx) (EventResult, bool) {
	m := yearSlashDateGuard.FindStringSubmatch(s)
	d, ok := ymd(m[1], m[2], m[3])
	if !ok {
		return EventResult{}, false
	}
	return result(StateDate, d.String()), true
}

// parseYearSuffix handles yyyy-nn. A suffix past 12 can only be a truncated
// second year (1884-85). A suffix of 1..12 is read as a month and flagged
// SUSPECT (1903-04). Only when the suffix is not below the whole prefix,
// which takes a year of 0001..0012, is it a second year instead.
func parseYearSuffix(s string, _ *cascadeCtx) (EventResult, bool) {
	m := yearSuffixGuard.FindStringSubmatch(s)
	prefix, suffix := atoi(m[1]), atoi(m[2])

	switch {
	case suffix > 12:
		return centurySplit(prefix, suffix)
	case suffix >= 1:
		full := prefix/100*100 + suffix
		if suffix >= prefix {
			return result(StateRange, fmt.Sprintf("%04d/%04d", prefix, full),
				"two-digit suffix read as a second year"), true
		}
		return result(StateSuspect, fmt.Sprintf("%04d-%02d", prefix, suffix),
			fmt.Sprintf("read as year-month; could also be the year range %04d/%04d", prefix, full)), true
	default:
		return EventResult{}, false
	}
}

// centurySplit rebuilds the second year of "1884-85" from the century of
// the first.
func centurySplit(prefix, suffix int) (EventResult, bool) {
	end := prefix/100*100 + suffix
	if end < prefix {
		return EventResult{}, false
	}
	return result(StateRange, fmt.Sprintf("%04d/%04d", prefix, end),
		"two-digit suffix read as a second year in the same century"), true
}

// parseOrdinal reads yyyy-DDD. Outside day-precision mode the day is
// reported at month precision, because a three-digit field in verbatim
// data is as often a mis-keyed month as a day-of-year.
func parseOrdinal(s string, c *cascadeCtx) (EventResult, bool) {
	m := ordinalGuard.FindStringSubmatch(s)
	d, err := interval.OrdinalDate(atoi(m[1]), atoi(m[2]))
	if err != nil {
		return EventResult{}, false
	}
	comment := fmt.Sprintf("day-of-year %s resolved to %s", m[2], d)
	if c.dayPrecision {
		return result(StateDate, d.String(), comment), true
	}
	return result(StateRange, fmt.Sprintf("%04d-%02d", d.Year, d.Month), comment), true
}

func parseOrdinalRange(s string, _ *cascadeCtx) (EventResult, bool) {
	m := ordinalRangeGuard.FindStringSubmatch(s)
	startYear := atoi(m[1])
	endYear := startYear
	if m[3] != "" {
		endYear = atoi(m[3])
	}
	start, err := interval.OrdinalDate(startYear, atoi(m[2]))
	if err != nil {
		return EventResult{}, false
	}
	end, err := interval.OrdinalDate(endYear, atoi(m[4]))
	if err != nil {
		return EventResult{}, false
	}
	iv, err := interval.FromDates(start, end)
	if err != nil {
		return EventResult{}, false
	}
	if iv.IsSingleDay() {
		return result(StateDate, iv.String()), true
	}
	return result(StateRange, iv.String()), true
}

// compactValue reads yyyymmdd where 00 marks an unknown month or day.
func compactValue(s string) (string, interval.Precision, bool) {
	m := compactGuard.FindStringSubmatch(s)
	if m == nil {
		return "", 0, false
	}
	year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
	switch {
	case month == 0 && day == 0:
		return m[1], interval.PrecisionYear, true
	case month == 0:
		return "", 0, false
	case day == 0:
		if month > 12 {
			return "", 0, false
		}
		return fmt.Sprintf("%04d-%02d", year, month), interval.PrecisionMonth, true
	default:
		d, err := interval.NewCalendarDate(year, time.Month(month), day)
		if err != nil {
			return "", 0, false
		}
		return d.String(), interval.PrecisionDay, true
	}
}

func parseCompact(s string, _ *cascadeCtx) (EventResult, bool) {
	value, p, ok := compactValue(s)
	if !ok {
		return EventResult{}, false
	}
	if p == interval.PrecisionDay {
		return result(StateDate, value), true
	}
	return result(StateRange, value, "zero month or day read as unknown"), true
}

func parseCompactRange(s string, _ *cascadeCtx) (EventResult, bool) {
	m := compactRangeGuard.FindStringSubmatch(s)
	start, _, ok := compactValue(m[1])
	if !ok {
		return EventResult{}, false
	}
	end, _, ok := compactValue(m[2])
	if !ok {
		return EventResult{}, false
	}
	return rangeOf(start, end)
}

func parseYear(s string, _ *cascadeCtx) (EventResult, bool) {
	return result(StateRange, s), true
}

func parseYearSlashMonth(s string, _ *cascadeCtx) (EventResult, bool) {
	m := yearSlashMonthGuard.FindStringSubmatch(s)
	prefix, suffix := atoi(m[1]), atoi(m[2])
	switch {
	case suffix >= 1 && suffix <= 12:
		return result(StateRange, fmt.Sprintf("%04d-%02d", prefix, suffix)), true
	case suffix > 12 && len(m[2]) == 2:
		return centurySplit(prefix, suffix)
	default:
		return EventResult{}, false
	}
}

func parseYearRange(s string, _ *cascadeCtx) (EventResult, bool) {
	m := yearRangeGuard.FindStringSubmatch(s)
	return rangeOf(m[1], m[2])
}

func parseDecade(s string, _ *cascadeCtx) (EventResult, bool) {
	m := decadeGuard.FindStringSubmatch(s)
	return result(StateRange, m[1]+"0/"+m[1]+"9", "decade"), true
}

// parseCanonicalRange accepts slash-joined sides already in the interval
// grammar; ordinal sides are rewritten as calendar dates.
func parseCanonicalRange(s string, _ *cascadeCtx) (EventResult, bool) {
	iv, err := interval.Parse(s)
	if err != nil {
		return EventResult{}, false
	}
	start, end, _ := splitRange(s)
	if p, _ := interval.PrecisionOf(start); p == interval.PrecisionOrdinalDay {
		start = iv.Start().String()
	}
	if p, _ := interval.PrecisionOf(end); p == interval.PrecisionOrdinalDay {
		end = iv.End().String()
	}
	return rangeOf(start, end)
}

// rangeOf validates start/end as a canonical range, collapsing equal
// single days to a date.
func rangeOf(start, end string) (EventResult, bool) {
	if start == end {
		if p, ok := interval.PrecisionOf(start); ok && p.AtLeastDay() {
			return result(StateDate, start), true
		}
		return result(StateRange, start), true
	}
	value := start + "/" + end
	if _, err := interval.Parse(value); err != nil {
		return EventResult{}, false
	}
	return result(StateRange, value), true
}

func ymd(y, m, d string) (interval.CalendarDate, bool) {
	date, err := interval.NewCalendarDate(atoi(y), time.Month(atoi(m)), atoi(d))
	return date, err == nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
