package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventdate/internal/config"
	"eventdate/internal/interpret"
	appLog "eventdate/internal/log"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()
	appLog.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { appLog.SetOutput(os.Stderr) })

	cfg := config.DefaultConfig()
	cfg.Workers = 2
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Normalize())

	ts := httptest.NewServer(NewServer(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, rawURL string, v any) int {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInterpretGet(t *testing.T) {
	ts := newTestServer(t, nil)

	var got interpretResponse
	code := getJSON(t, ts.URL+"/api/interpret?date="+url.QueryEscape("10 June 1882"), &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, interpret.StateDate, got.Result.State)
	assert.Equal(t, "1882-06-10", got.Result.Value)
	require.NotNil(t, got.Measures)
	assert.Equal(t, int64(86400), got.Measures.DurationSeconds)
	assert.True(t, got.Measures.DayScale)
	assert.True(t, got.Measures.DayOrFiner)

	// Served from cache the second time; same answer.
	var again interpretResponse
	getJSON(t, ts.URL+"/api/interpret?date="+url.QueryEscape("10 June 1882"), &again)
	assert.Equal(t, got, again)
}

func TestInterpretGetOptions(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name     string
		query    string
		state    interpret.ResultState
		value    string
		measured bool
	}{
		{"ambiguous by default", "date=" + url.QueryEscape("5/9/1985"), interpret.StateAmbiguous, "1985-05-09/1985-09-05", true},
		{"month first", "month_first=true&date=" + url.QueryEscape("5/9/1985"), interpret.StateDate, "1985-05-09", true},
		{"day precision", "day_precision=1&date=1890-032", interpret.StateDate, "1890-02-01", true},
		{"month first at day precision", "month_first=true&day_precision=1&date=" + url.QueryEscape("5/9/1985"), interpret.StateDate, "1985-05-09", true},
		{"threshold", "threshold=1950&date=1901", interpret.StateSuspect, "1901", true},
		{"no match", "date=nothing", interpret.StateNotRun, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got interpretResponse
			require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/interpret?"+tt.query, &got))
			assert.Equal(t, tt.state, got.Result.State)
			assert.Equal(t, tt.value, got.Result.Value)
			if tt.measured {
				assert.NotNil(t, got.Measures)
			} else {
				assert.Nil(t, got.Measures)
			}
		})
	}
}

func TestInterpretGetBadRequest(t *testing.T) {
	ts := newTestServer(t, nil)
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/interpret", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/interpret?date=1882&month_first=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/interpret?date=1882&threshold=-3", nil))
}

func TestInterpretPost(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"text", "text/plain", "1882\n\nnothing\n10 June 1882\n"},
		{"json", "application/json", `{"dates": ["1882", "nothing", "10 June 1882"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/interpret", tt.contentType, strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var got batchResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, 3, got.Total)
			assert.Equal(t, 2, got.Matched)
			require.Len(t, got.Records, 3)
			assert.Equal(t, "1882", got.Records[0].Result.Value)
			assert.Equal(t, "1882-06-10", got.Records[2].Result.Value)
			assert.Equal(t, 1, got.ByState[interpret.StateNotRun])
		})
	}
}

func TestInterpretMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, nil)
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/interpret", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestBuild(t *testing.T) {
	ts := newTestServer(t, nil)

	var got map[string]string
	code := getJSON(t, ts.URL+"/api/build?year=1882&month=6&day=10", &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1882-06-10", got["event_date"])

	code = getJSON(t, ts.URL+"/api/build?start=1882-06-10&end=1882-06-12", &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1882-06-10/1882-06-12", got["event_date"])

	assert.Equal(t, http.StatusUnprocessableEntity, getJSON(t, ts.URL+"/api/build?verbatim=nothing", nil))
}

func TestConsistent(t *testing.T) {
	ts := newTestServer(t, nil)

	var got map[string]bool
	getJSON(t, ts.URL+"/api/consistent?event_date=1882-06-10&year=1882&month=6&day=10", &got)
	assert.True(t, got["consistent"])

	getJSON(t, ts.URL+"/api/consistent?event_date=1882-06-10&year=1883", &got)
	assert.False(t, got["consistent"])

	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/consistent?year=1882", nil))
}

func TestBasicAuth(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) {
		c.BasicAuth = &config.BasicAuth{Username: "curator", Password: "s3cret"}
	})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/interpret?date=1882")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/interpret?date=1882", nil)
	require.NoError(t, err)
	req.SetBasicAuth("curator", "s3cret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, secureCompare("abc", "abc"))
	assert.False(t, secureCompare("abc", "abd"))
	assert.False(t, secureCompare("abc", "ab"))
}
