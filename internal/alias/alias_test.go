package alias

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMonthTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"english abbreviation with period", "Sept. 5 1901", "September 5 1901"},
		{"misspelling", "5 Febuary 1882", "5 February 1882"},
		{"roman numeral", "11-VI-1886", "11-June-1886"},
		{"lower case roman", "11.vi.1886", "11.June.1886"},
		{"unknown day placeholder untouched", "XX-VI-1886", "XX-June-1886"},
		{"french accented", "5 août 1886", "5 August 1886"},
		{"french unaccented", "5 fevrier 1886", "5 February 1886"},
		{"spanish", "5 de junio de 1886", "5 de June de 1886"},
		{"italian", "5 giugno 1886", "5 June 1886"},
		{"portuguese cedilla", "12 março 1901", "12 March 1901"},
		{"german umlaut", "3. März 1901", "3. March 1901"},
		{"dutch", "7 mei 1899", "7 May 1899"},
		{"danish", "7 maj 1899", "7 May 1899"},
		{"welsh", "9 Gorffennaf 1910", "9 July 1910"},
		{"latin genitive", "9 Julii 1810", "9 July 1810"},
		{"range words kept", "Jan to Feb 1882", "January to February 1882"},
		{"embedded letters untouched", "Marchmont 1882", "Marchmont 1882"},
		{"ideographic ascii digits", "1886年6月11日", "1886 June 11"},
		{"ideographic numerals", "一八八六年六月十一日", "1886 June 11"},
		{"ideographic december", "1901年十二月", "1901 December"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMonthTokens(tt.in))
		})
	}
}

func TestLookupMonthLocale(t *testing.T) {
	m, loc, ok := LookupMonth("juillet")
	require.True(t, ok)
	assert.Equal(t, time.July, m)
	assert.Equal(t, "fr", loc)

	// English owns "sep" even though other tables could claim it.
	m, loc, ok = LookupMonth("Sep.")
	require.True(t, ok)
	assert.Equal(t, time.September, m)
	assert.Equal(t, "en", loc)

	m, loc, ok = LookupMonth("IX")
	require.True(t, ok)
	assert.Equal(t, time.September, m)
	assert.Equal(t, "roman", loc)

	_, _, ok = LookupMonth("XIII")
	assert.False(t, ok)
	_, _, ok = LookupMonth("")
	assert.False(t, ok)
}

func TestRomanToInteger(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"I", 1, true},
		{"iv", 4, true},
		{"XII", 12, true},
		{"XX", 0, false},
		{"IIII", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := RomanToInteger(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWordToInteger(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"first", 1, true},
		{"Fifth", 5, true},
		{"twenty-first", 21, true},
		{"twenty first", 21, true},
		{"thirty-first", 31, true},
		{"thirty-one", 31, true},
		{"thirty-second", 0, false},
		{"june", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := WordToInteger(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDayWords(t *testing.T) {
	assert.Equal(t, "the 5 of May 1882", NormalizeDayWords("the fifth of May 1882"))
	assert.Equal(t, "21 June 1882", NormalizeDayWords("twenty first June 1882"))
	assert.Equal(t, "June 23, 1882", NormalizeDayWords("June twenty-third, 1882"))
	assert.Equal(t, "June 1882", NormalizeDayWords("June 1882"))
}

func TestHasIdeographicYear(t *testing.T) {
	assert.True(t, HasIdeographicYear("一八八六年六月"))
	assert.False(t, HasIdeographicYear("1886年6月"))
	assert.False(t, HasIdeographicYear("June 1886"))
}

func TestNormalizeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, "5 August 1886", NormalizeMonthTokens("5 août 1886"))
			}
		}()
	}
	wg.Wait()
}
