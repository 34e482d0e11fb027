// Package interpret turns free-text verbatim event dates into canonical
// dates or ranges. An ordered list of recognizers runs against a cleaned
// copy of the input; the first to match wins, and every result then passes
// through canonicalization, suspicion and sanity checks.
package interpret

import (
	"fmt"
	"regexp"
	"strings"

	"eventdate/internal/alias"
	"eventdate/internal/interval"
	appLog "eventdate/internal/log"
)

// DefaultSuspectYearThreshold flags any start year below 1000 as suspect.
const DefaultSuspectYearThreshold = 1000

// Options tune a single interpretation call.
type Options struct {
	// SuspectYearThreshold demotes results whose start year is lower to
	// StateSuspect. Thresholds above 999 also enable the sanity gate that
	// drops results from inputs with no four-digit year.
	SuspectYearThreshold int
	// AssumeMonthFirst, when set, restricts two-number dates such as
	// 5/9/1985 to one reading instead of reporting both as ambiguous.
	AssumeMonthFirst *bool
}

// DefaultOptions returns the options Interpret uses.
func DefaultOptions() Options {
	return Options{SuspectYearThreshold: DefaultSuspectYearThreshold}
}

// WithMonthFirst returns a copy of o that reads two-number dates one way.
func (o Options) WithMonthFirst(monthFirst bool) Options {
	o.AssumeMonthFirst = &monthFirst
	return o
}

// cascadeCtx is the per-call state handed to recognizers.
type cascadeCtx struct {
	opts Options
	// dayPrecision asks recognizers that would otherwise report a reduced
	// precision for a known day (bare ordinal dates) to report the day.
	dayPrecision bool
}

// recognizer is one entry of the cascade. guard is a cheap shape test run
// before parse; parse reports false when its layouts do not fit.
type recognizer struct {
	name  string
	guard *regexp.Regexp
	parse func(s string, c *cascadeCtx) (EventResult, bool)
}

var (
	noDateMarker     = regexp.MustCompile(`(?i)\[\s*no\s+(?:date|year)\s*\]`)
	trailingDigitDot = regexp.MustCompile(`([0-9])\.$`)
	fourDigitYear    = regexp.MustCompile(`[0-9]{4}`)
)

var enclosingPairs = [][2]string{
	{"[", "]"}, {"(", ")"}, {"{", "}"}, {`"`, `"`}, {"'", "'"}, {"“", "”"}, {"‘", "’"},
}

// Interpret reads text with DefaultOptions.
func Interpret(text string) EventResult {
	return InterpretWith(text, DefaultOptions())
}

// InterpretWith reads text with the given options.
func InterpretWith(text string, opts Options) EventResult {
	return run(text, cascadeCtx{opts: opts})
}

// InterpretToDayPrecision reads text and widens any reduced-precision value
// to explicit day bounds, so "1882" becomes "1882-01-01/1882-12-31".
func InterpretToDayPrecision(text string, suspectYearThreshold int) EventResult {
	return InterpretToDayPrecisionWith(text, Options{SuspectYearThreshold: suspectYearThreshold})
}

// InterpretToDayPrecisionWith is InterpretToDayPrecision with full options.
func InterpretToDayPrecisionWith(text string, opts Options) EventResult {
	res := run(text, cascadeCtx{opts: opts, dayPrecision: true})
	if !res.HasValue() {
		return res
	}
	iv, err := interval.Parse(res.Value)
	if err != nil {
		return res
	}
	if widened := iv.String(); widened != res.Value {
		res = res.withComment(fmt.Sprintf("widened %s to day precision", res.Value))
		res.Value = widened
	}
	return res
}

func run(text string, c cascadeCtx) EventResult {
	s := clean(text)
	if s == "" {
		return notRun()
	}

	res := notRun()
	for _, r := range recognizers {
		if r.guard != nil && !r.guard.MatchString(s) {
			continue
		}
		if got, ok := r.parse(s, &c); ok {
			appLog.Debug("verbatim date matched", "recognizer", r.name, "verbatim", text, "state", got.State, "value", got.Value)
			res = got
			break
		}
	}

	res = canonicalize(res, text)
	res = checkSuspect(res, c.opts.SuspectYearThreshold)
	res = sanityGate(res, text, c.opts.SuspectYearThreshold)
	return res
}

// clean applies the fixed preprocessing steps in order.
func clean(text string) string {
	s := noDateMarker.ReplaceAllString(text, " ")
	s = strings.TrimSpace(s)
	s = stripEnclosing(s)
	s = strings.TrimSpace(s)
	s = trailingDigitDot.ReplaceAllString(s, "$1")
	return collapseIdenticalRange(s)
}

// stripEnclosing removes one layer of brackets or quotes wrapping the
// whole string. "[1882] - [1883]" is left alone since the inner text
// would no longer balance.
func stripEnclosing(s string) string {
	for _, p := range enclosingPairs {
		if len(s) < len(p[0])+len(p[1]) || !strings.HasPrefix(s, p[0]) || !strings.HasSuffix(s, p[1]) {
			continue
		}
		inner := s[len(p[0]) : len(s)-len(p[1])]
		if strings.Contains(inner, p[0]) || strings.Contains(inner, p[1]) {
			continue
		}
		return inner
	}
	return s
}

// collapseIdenticalRange turns "D/D" or "D-D" with identical halves into D.
func collapseIdenticalRange(s string) string {
	for i, r := range s {
		if r != '/' && r != '-' {
			continue
		}
		left := strings.TrimSpace(s[:i])
		right := strings.TrimSpace(s[i+1:])
		if left != "" && left == right {
			return left
		}
	}
	return s
}

// canonicalize re-reads a candidate value through interval.Parse. A value
// the interval grammar rejects means a recognizer and the canonical form
// disagree; that is reported rather than dropped.
func canonicalize(res EventResult, verbatim string) EventResult {
	if !res.State.Successful() {
		return res
	}
	if _, err := interval.Parse(res.Value); err != nil {
		appLog.Error("recognized value failed canonicalization", err, "verbatim", verbatim, "value", res.Value)
		out := result(StateInternalPrerequisitesNotMet, "", res.Comments...)
		return out.withComment(fmt.Sprintf("value %q is not a valid calendar interval", res.Value))
	}
	return res
}

// checkSuspect demotes a result whose start year is below threshold.
func checkSuspect(res EventResult, threshold int) EventResult {
	if !res.State.Successful() {
		return res
	}
	iv, err := interval.Parse(res.Value)
	if err != nil {
		return res
	}
	if year := iv.Start().Year; year < threshold {
		res = res.withComment(fmt.Sprintf("start year %04d is before %d", year, threshold))
		res.State = StateSuspect
	}
	return res
}

// sanityGate drops results from inputs with no four-digit year anywhere,
// guarding against matches on bare day/month fragments. Years spelled in
// ideographic digits are exempt since the normalizer supplies the digits.
func sanityGate(res EventResult, verbatim string, threshold int) EventResult {
	if !res.State.Successful() || threshold <= 999 {
		return res
	}
	if fourDigitYear.MatchString(verbatim) || alias.HasIdeographicYear(verbatim) {
		return res
	}
	return notRun().withComment("no four-digit year in input")
}
