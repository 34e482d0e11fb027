// Package alias rewrites locale-specific month names, roman-numeral months,
// ideographic date markers and spelled-out day numbers into one canonical
// English form that fixed layout templates can read.
package alias

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type monthEntry struct {
	month  time.Month
	locale string
}

var (
	tablesOnce sync.Once
	monthIndex map[string]monthEntry
)

// Ideographic markers. Digits may be ASCII or CJK.
var (
	ideoYearPattern  = regexp.MustCompile(`([0-9]{4}|[〇零一二三四五六七八九]{4})\s*年`)
	ideoMonthPattern = regexp.MustCompile(`([0-9]{1,2}|[一二三四五六七八九十]{1,3})\s*月`)
	ideoDayPattern   = regexp.MustCompile(`([0-9]{1,2}|[一二三四五六七八九十]{1,4})\s*[日号]`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

func buildTables() {
	tablesOnce.Do(func() {
		monthIndex = make(map[string]monthEntry)
		for _, loc := range locales {
			for i, names := range loc.months {
				for _, name := range names {
					if _, taken := monthIndex[name]; taken {
						continue
					}
					monthIndex[name] = monthEntry{month: time.Month(i + 1), locale: loc.name}
				}
			}
		}
	})
}

// fold lower-cases s and strips combining accents. A fresh transformer is
// built per call: chained transformers carry state and are not safe to share.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// LookupMonth resolves a single token to a month and the locale whose table
// claimed it ("roman" for numerals).
func LookupMonth(token string) (time.Month, string, bool) {
	buildTables()
	key := fold(strings.TrimSuffix(strings.TrimSpace(token), "."))
	if key == "" {
		return 0, "", false
	}
	if e, ok := monthIndex[key]; ok {
		return e.month, e.locale, true
	}
	if m, ok := romanMonths[key]; ok {
		return m, "roman", true
	}
	return 0, "", false
}

// MonthFromToken resolves a single token to a month.
func MonthFromToken(token string) (time.Month, bool) {
	m, _, ok := LookupMonth(token)
	return m, ok
}

// RomanToInteger maps I..XII (either case) to 1..12.
func RomanToInteger(token string) (int, bool) {
	m, ok := romanMonths[strings.ToLower(strings.TrimSpace(token))]
	return int(m), ok
}

// WordToInteger maps a spelled-out day of the month ("fifth",
// "twenty first", "thirty-one") to 1..31.
func WordToInteger(token string) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(token))
	key = strings.TrimSuffix(key, ".")
	key = spacePattern.ReplaceAllString(key, "-")
	key = strings.ReplaceAll(key, "--", "-")
	n, ok := dayWords[key]
	return n, ok
}

// NormalizeMonthTokens rewrites every whole-word month alias in text to its
// English name. Only complete letter runs are looked up, so a numeral
// embedded in a longer token (the "XX" unknown-day placeholder, say) is
// never read as a month. An abbreviating period after a month token is
// dropped.
// Ideographic year/month/day markers are rewritten first, so that
// "1886年6月11日" becomes "1886 June 11".
func NormalizeMonthTokens(text string) string {
	buildTables()
	text = normalizeIdeographic(text)

	var b strings.Builder
	b.Grow(len(text) + 16)

	rs := []rune(text)
	for i := 0; i < len(rs); {
		if !unicode.IsLetter(rs[i]) {
			b.WriteRune(rs[i])
			i++
			continue
		}
		j := i
		for j < len(rs) && unicode.IsLetter(rs[j]) {
			j++
		}
		token := string(rs[i:j])
		if m, ok := MonthFromToken(token); ok {
			b.WriteString(m.String())
			if j < len(rs) && rs[j] == '.' && (j+1 == len(rs) || unicode.IsSpace(rs[j+1])) {
				j++
			}
		} else {
			b.WriteString(token)
		}
		i = j
	}
	return b.String()
}

// NormalizeDayWords replaces spelled-out days of the month with digits.
// Two-word compounds ("twenty first") are tried before single words.
func NormalizeDayWords(text string) string {
	type run struct{ start, end int }

	rs := []rune(text)
	var words []run
	for i := 0; i < len(rs); {
		if !unicode.IsLetter(rs[i]) {
			i++
			continue
		}
		j := i
		for j < len(rs) && unicode.IsLetter(rs[j]) {
			j++
		}
		words = append(words, run{i, j})
		i = j
	}
	if len(words) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for k := 0; k < len(words); k++ {
		w := words[k]
		if k+1 < len(words) {
			next := words[k+1]
			gap := string(rs[w.end:next.start])
			if gap == " " || gap == "-" {
				if n, ok := WordToInteger(string(rs[w.start:next.end])); ok {
					b.WriteString(string(rs[last:w.start]))
					b.WriteString(strconv.Itoa(n))
					last = next.end
					k++
					continue
				}
			}
		}
		if n, ok := WordToInteger(string(rs[w.start:w.end])); ok {
			b.WriteString(string(rs[last:w.start]))
			b.WriteString(strconv.Itoa(n))
			last = w.end
		}
	}
	b.WriteString(string(rs[last:]))
	return b.String()
}

// HasIdeographicYear reports whether text spells a year in CJK digits.
func HasIdeographicYear(text string) bool {
	m := ideoYearPattern.FindStringSubmatch(text)
	return m != nil && !isASCIIDigits(m[1])
}

func normalizeIdeographic(text string) string {
	if !strings.ContainsAny(text, "年月日号") {
		return text
	}
	text = ideoYearPattern.ReplaceAllStringFunc(text, func(s string) string {
		m := ideoYearPattern.FindStringSubmatch(s)
		return " " + ideographicDigitsToASCII(m[1]) + " "
	})
	text = ideoMonthPattern.ReplaceAllStringFunc(text, func(s string) string {
		m := ideoMonthPattern.FindStringSubmatch(s)
		n, ok := ideographicValue(m[1])
		if !ok || n < 1 || n > 12 {
			return s
		}
		return " " + time.Month(n).String() + " "
	})
	text = ideoDayPattern.ReplaceAllStringFunc(text, func(s string) string {
		m := ideoDayPattern.FindStringSubmatch(s)
		n, ok := ideographicValue(m[1])
		if !ok {
			return s
		}
		return " " + strconv.Itoa(n) + " "
	})
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

func ideographicDigitsToASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := ideographicDigits[r]; ok {
			return d
		}
		return r
	}, s)
}

// ideographicValue reads ASCII digits or a whole CJK number such as 十二.
func ideographicValue(s string) (int, bool) {
	if isASCIIDigits(s) {
		n, err := strconv.Atoi(s)
		return n, err == nil
	}
	for _, e := range ideographicNumbers {
		if e.pattern == s {
			return e.value, true
		}
	}
	return 0, false
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
