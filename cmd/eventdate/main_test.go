package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appLog "eventdate/internal/log"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string) {
	t.Helper()
	appLog.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { appLog.SetOutput(os.Stderr) })

	var out bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out)
	return code, out.String()
}

func TestRunRequiresInput(t *testing.T) {
	code, out := runCLI(t, "")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}

func TestRunInlineDate(t *testing.T) {
	code, out := runCLI(t, "", "-date", "5/9/1985")
	require.Equal(t, 0, code)
	assert.Equal(t, "5/9/1985\tAMBIGUOUS\t1985-05-09/1985-09-05\n", out)

	code, out = runCLI(t, "", "-date", "5/9/1985", "-month-first")
	require.Equal(t, 0, code)
	assert.Equal(t, "5/9/1985\tDATE\t1985-05-09\n", out)
}

func TestRunConflictingOrder(t *testing.T) {
	code, _ := runCLI(t, "", "-date", "5/9/1985", "-month-first", "-day-first")
	assert.Equal(t, 1, code)
}

func TestRunStdinUnmatched(t *testing.T) {
	code, out := runCLI(t, "1882\nsometime\n10 June 1882\nlater\n", "-file", "-", "-unmatched")
	require.Equal(t, 0, code)
	assert.Equal(t, "sometime\nlater\n", out)
}

func TestRunJSON(t *testing.T) {
	code, out := runCLI(t, "Sept. 5 1901\n", "-file", "-", "-format", "json", "-threshold", "1950")
	require.Equal(t, 0, code)

	var got struct {
		Line     int    `json:"line"`
		Verbatim string `json:"verbatim"`
		Result   struct {
			State string `json:"state"`
			Value string `json:"value"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Line)
	assert.Equal(t, "Sept. 5 1901", got.Verbatim)
	assert.Equal(t, "SUSPECT", got.Result.State)
	assert.Equal(t, "1901-09-05", got.Result.Value)
}

func TestRunFileToICS(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dates.txt")
	require.NoError(t, os.WriteFile(in, []byte("10 June 1882\n"), 0o600))

	code, out := runCLI(t, "", "-file", in, "-format", "ics")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:18820610")

	ical := filepath.Join(dir, "export.ics")
	require.NoError(t, os.WriteFile(ical, []byte(out), 0o600))
	code, out = runCLI(t, "", "-file", ical)
	require.Equal(t, 0, code)
	assert.Equal(t, "1882-06-10\tDATE\t1882-06-10\n", out)
}

func TestRunDayPrecision(t *testing.T) {
	code, out := runCLI(t, "", "-date", "1890-032", "-day-precision")
	require.Equal(t, 0, code)
	assert.Equal(t, "1890-032\tDATE\t1890-02-01\n", out)
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assume_month_first: false\n"), 0o600))

	code, out := runCLI(t, "", "-config", path, "-date", "5/9/1985")
	require.Equal(t, 0, code)
	assert.Equal(t, "5/9/1985\tDATE\t1985-09-05\n", out)

	require.NoError(t, os.WriteFile(path, []byte("watch: nope\n"), 0o600))
	code, _ = runCLI(t, "", "-config", path, "-date", "5/9/1985")
	assert.Equal(t, 1, code)
}

func TestRunMissingFile(t *testing.T) {
	code, _ := runCLI(t, "", "-file", filepath.Join(t.TempDir(), "absent.txt"))
	assert.Equal(t, 1, code)
}
