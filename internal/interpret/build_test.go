package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFromAtomicParts(t *testing.T) {
	tests := []struct {
		name                       string
		verbatim, startDOY, endDOY string
		year, month, day           string
		want                       string
		ok                         bool
	}{
		{"verbatim date wins", "1882-06-10", "", "", "1901", "1", "1", "1882-06-10", true},
		{"verbatim ambiguous kept", "5/9/1985", "", "", "", "", "", "1985-05-09/1985-09-05", true},
		{"suspect verbatim ignored", "0950", "", "", "1882", "", "", "1882", true},
		{"full atomic date", "", "", "", "1882", "6", "10", "1882-06-10", true},
		{"month name", "nonsense", "", "", "1882", "June", "", "1882-06", true},
		{"french month name", "", "", "", "1882", "juin", "10", "1882-06-10", true},
		{"start day of year", "", "32", "", "1890", "", "", "1890-02-01", true},
		{"day of year range", "", "32", "41", "1890", "", "", "1890-02-01/1890-02-10", true},
		{"day of year across new year", "", "360", "5", "1890", "", "", "1890-12-26/1891-01-05", true},
		{"year only", "", "", "", "1882", "", "", "1882", true},
		{"invalid day falls back to nothing", "", "", "", "1882", "2", "30", "", false},
		{"day without month", "", "", "", "1882", "", "10", "", false},
		{"no year", "", "", "", "", "6", "10", "", false},
		{"month out of range", "", "", "", "1882", "13", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BuildFromAtomicParts(tt.verbatim, tt.startDOY, tt.endDOY, tt.year, tt.month, tt.day)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildFromStartEnd(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
		ok         bool
	}{
		{"1882-06-10", "1882-06-15", "1882-06-10/1882-06-15", true},
		{"June 1882", "1883", "1882-06/1883", true},
		{"1882", "1882", "1882", true},
		{"1882-06-10", "1882-06-10", "1882-06-10", true},
		{"1882-06-01/1882-06-05", "1882-06-20/1882-06-30", "1882-06-01/1882-06-30", true},
		{"1882-06-10", "", "1882-06-10", true},
		{"", "June 1882", "1882-06", true},
		{"", "garbage", "", false},
		{"0950", "1882", "1882", true},
		{"0950", "", "", false},
		{"5/9/1985", "1985-12-01", "1985-05-09/1985-12-01", true},
		{"1882-06-01", "5/9/1985", "1882-06-01/1985-09-05", true},
		{"1883", "1882", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.start+"|"+tt.end, func(t *testing.T) {
			got, ok := BuildFromStartEnd(tt.start, tt.end)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
