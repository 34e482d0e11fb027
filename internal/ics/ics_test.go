package ics

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventdate/internal/interpret"
	"eventdate/internal/model"
)

func calendar(lines ...string) string {
	all := append([]string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//test//EN"}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n") + "\r\n"
}

func TestReadEventDates(t *testing.T) {
	body := calendar(
		"BEGIN:VEVENT",
		"UID:single@test",
		"DTSTAMP:20250101T000000Z",
		"SUMMARY:Collected at the pond",
		"DTSTART;VALUE=DATE:18820610",
		"DTEND;VALUE=DATE:18820611",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:span@test",
		"DTSTAMP:20250101T000000Z",
		"DTSTART;VALUE=DATE:18820601",
		"DTEND;VALUE=DATE:18820701",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:timed@test",
		"DTSTAMP:20250101T000000Z",
		"DTSTART:20250101T090000Z",
		"DTEND:20250102T100000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:nostart@test",
		"DTSTAMP:20250101T000000Z",
		"END:VEVENT",
	)

	got, err := ReadEventDates(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "single@test", got[0].UID)
	assert.Equal(t, "Collected at the pond", got[0].Summary)
	assert.Equal(t, model.SourceICS, got[0].Source)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, "1882-06-10", got[0].Text)

	assert.Equal(t, "1882-06-01/1882-06-30", got[1].Text)
	assert.Equal(t, "2025-01-01/2025-01-02", got[2].Text)
}

func TestReadEventDatesInvalid(t *testing.T) {
	_, err := ReadEventDates(strings.NewReader("not a calendar"))
	assert.Error(t, err)
}

func TestExportRoundTrip(t *testing.T) {
	records := []model.Record{
		{
			Verbatim: model.Verbatim{Source: model.SourceLine, Line: 1, Text: "10 June 1882"},
			Result:   interpret.Interpret("10 June 1882"),
		},
		{
			Verbatim: model.Verbatim{Source: model.SourceLine, Line: 2, Text: "June 1882"},
			Result:   interpret.Interpret("June 1882"),
		},
		{
			Verbatim: model.Verbatim{Source: model.SourceLine, Line: 3, Text: "sometime"},
			Result:   interpret.Interpret("sometime"),
		},
	}

	var buf bytes.Buffer
	stamp := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, Export(&buf, records, stamp))

	out := buf.String()
	assert.Contains(t, out, "UID:line-1@eventdate")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:18820610")
	assert.Contains(t, out, "DTEND;VALUE=DATE:18820611")
	assert.NotContains(t, out, "line-3@eventdate")

	back, err := ReadEventDates(&buf)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "1882-06-10", back[0].Text)
	assert.Equal(t, "10 June 1882", back[0].Summary)
	assert.Equal(t, "1882-06-01/1882-06-30", back[1].Text)
}

func TestFetcherRevalidates(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client())
	first, err := f.Fetch(context.Background(), srv.URL+"/private.ics?token=x")
	require.NoError(t, err)

	second, err := f.Fetch(context.Background(), srv.URL+"/private.ics?token=x")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, hits)
}

func TestFetcherNotModifiedWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer srv.Close()

	_, err := NewFetcher(nil).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNotCached)
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://example.com/...(redacted)", redactURL("https://example.com/path/private.ics?token=abcd"))
	assert.Equal(t, "ics://...(redacted)", redactURL("not a url"))
	assert.True(t, IsURL("https://example.com/a.ics"))
	assert.False(t, IsURL("/tmp/a.ics"))
}
