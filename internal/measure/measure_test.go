package measure

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecificToScale(t *testing.T) {
	tests := []struct {
		in                       string
		day, month, year, decade bool
	}{
		{"1805-11-05", true, true, true, true},
		{"1805-11", false, true, true, true},
		{"1805", false, false, true, true},
		{"1804", false, false, true, true},
		{"1805-01-01/1805-12-31", false, false, true, true},
		{"1804-03-01/1805-02-28", false, false, true, true},
		{"1805-01-01/1806-01-01", false, false, false, true},
		{"1880/1889", false, false, false, true},
		{"1880/1890", false, false, false, false},
		{"0000", false, false, true, true},
		{"0000-01-01/0000-12-31", false, false, true, true},
		{"1805-01-01/1805-01-31", false, true, true, true},
		{"1805-01-01/1805-02-01", false, false, true, true},
		{"not a date", false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.day, SpecificToDayScale(tt.in), "day")
			assert.Equal(t, tt.month, SpecificToMonthScale(tt.in), "month")
			assert.Equal(t, tt.year, SpecificToYearScale(tt.in), "year")
			assert.Equal(t, tt.decade, SpecificToDecadeScale(tt.in), "decade")
		})
	}
}

func TestMeasureDurationSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1890-02-01", 86400},
		{"1890-032", 86400},
		{"1890-02", 28 * 86400},
		{"1984-02", 29 * 86400},
		{"1981", 365 * 86400},
		{"1980", 366 * 86400},
		{"2006-08-29/2006-09-02", 5 * 86400},
		{"2007-03-01T13:00:00Z/2007-03-01T14:00:00Z", 3600},
		{"2007-03-01T13:00Z", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := MeasureDurationSeconds(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "sometime in June", "2007-03-01T14:00Z/2007-03-01T13:00Z"} {
		_, err := MeasureDurationSeconds(bad)
		assert.True(t, errors.Is(err, ErrTimeExtraction), "%q: %v", bad, err)
	}
}

func TestCountLeapDays(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1980", 1},
		{"1981", 0},
		{"1984-02-28/1984-03-01", 1},
		{"1984-02-29", 1},
		{"1984-03-01/1984-12-31", 0},
		{"1984-01-01/1984-02-28", 0},
		{"1980/1989", 3},
		{"1896/1904", 2},
		{"1600/2000", 98},
		{"1600/2400", 195},
		{"1700/2000", 73},
		{"0001/9999", 2424},
		{"0000", 1},
		{"0000/0400", 98},
		{"0000-03-01/0003-12-31", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CountLeapDays(tt.in))
		})
	}

	assert.True(t, IncludesLeapDay("1980"))
	assert.False(t, IncludesLeapDay("1981"))
}

func TestHasResolutionDayOrFiner(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1882-06-10", true},
		{"1882-161", true},
		{"1882-06-10/1882-06-12", true},
		{"1882-161/1882-06-12", true},
		{"1882-06", false},
		{"1882", false},
		{"1882-06-10/1882-07", false},
		{"1882/1882-06-10", false},
		{"1882-06-10T10:00Z", true},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, HasResolutionDayOrFiner(tt.in))
		})
	}
}
