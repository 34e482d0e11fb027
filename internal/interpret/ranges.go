package interpret

import (
	"regexp"
	"strings"

	"eventdate/internal/interval"
)

// sharedYearRangeGuard matches the separators a two-part date may be split
// on. Group 1 holds punctuation, group 2 a range or conjunction word.
var sharedYearRangeGuard = regexp.MustCompile(`(?i)\s*(?:(-|–|—|/|&)|\b(to|through|thru|until|till|bis|au|al|and|et|und|y|e)\b)\s*`)

var conjunctions = map[string]bool{
	"&": true, "and": true, "et": true, "und": true, "y": true, "e": true,
}

// parseSharedYearRange splits s at each separator in turn and reads both
// halves, each borrowing the year or month it lacks from the other. The
// first split that yields two valid dates wins.
func parseSharedYearRange(s string, _ *cascadeCtx) (EventResult, bool) {
	prepared := prepareAlpha(s)
	for _, loc := range sharedYearRangeGuard.FindAllStringSubmatchIndex(prepared, -1) {
		left, right := prepared[:loc[0]], prepared[loc[1]:]
		if strings.TrimSpace(left) == "" || strings.TrimSpace(right) == "" {
			continue
		}
		sep := ""
		switch {
		case loc[2] >= 0:
			sep = prepared[loc[2]:loc[3]]
		case loc[4] >= 0:
			sep = strings.ToLower(prepared[loc[4]:loc[5]])
		}
		if res, ok := readHalves(left, right, conjunctions[sep]); ok {
			return res, true
		}
	}
	return EventResult{}, false
}

func readHalves(left, right string, conjunction bool) (EventResult, bool) {
	l, ok := parsePart(left)
	if !ok {
		return EventResult{}, false
	}
	r, ok := parsePart(right)
	if !ok {
		return EventResult{}, false
	}

	borrowedYear := false
	if !l.hasYear && r.hasYear {
		l.year, l.hasYear = r.year, true
		borrowedYear = true
	}
	if !r.hasYear && l.hasYear {
		r.year, r.hasYear = l.year, true
	}
	if l.hasDay && !l.hasMonth && r.hasMonth {
		l.month, l.hasMonth = r.month, true
	}
	if r.hasDay && !r.hasMonth && l.hasMonth {
		r.month, r.hasMonth = l.month, true
	}

	lv, lp, ok := l.value()
	if !ok {
		return EventResult{}, false
	}
	rv, rp, ok := r.value()
	if !ok {
		return EventResult{}, false
	}
	if _, err := interval.Parse(lv + "/" + rv); err != nil && borrowedYear {
		// "December 20 - January 5 1883" crosses the year boundary.
		l.year--
		if lv, lp, ok = l.value(); !ok {
			return EventResult{}, false
		}
	}

	res, ok := rangeOf(lv, rv)
	if !ok || res.State != StateRange || !conjunction {
		return res, ok
	}
	if adjacent(lv, rv, lp, rp) {
		return res.withComment("conjoined dates are adjacent"), true
	}
	return result(StateDisjunctRange, res.Value, "conjoined dates are not adjacent"), true
}

// adjacent reports whether two same-precision values are consecutive days,
// or consecutive months of one year.
func adjacent(lv, rv string, lp, rp interval.Precision) bool {
	if lp != rp {
		return false
	}
	l, err := interval.Parse(lv)
	if err != nil {
		return false
	}
	r, err := interval.Parse(rv)
	if err != nil {
		return false
	}
	switch lp {
	case interval.PrecisionDay:
		return l.End().AddDays(1).Equal(r.Start())
	case interval.PrecisionMonth:
		next := l.End().AddDays(1)
		return next.Year == l.Start().Year && next.Year == r.Start().Year && next.Month == r.Start().Month
	default:
		return false
	}
}

// splitRange cuts a canonical value at its slash. A single value is
// returned as both halves.
func splitRange(s string) (string, string, bool) {
	start, end, found := strings.Cut(s, "/")
	if !found {
		return s, s, false
	}
	return start, end, true
}
