package main

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/couchcryptid/firewatch/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockCSV = `latitude,longitude,acq_date,acq_time,satellite,confidence,frp,daynight
-23.5012,-46.6023,2026-08-28,1510,Terra,85,75.3,D
-23.6100,-46.7000,2026-08-28,151,Terra,30,8.2,N
`

func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("FIRMS_MAP_KEY", "test-key")
	t.Setenv("FIRMS_BASE_URL", baseURL)
	t.Setenv("FIRMS_SOURCES", "MODIS_NRT")
	newMetrics = observability.NewMetricsForTesting
	t.Cleanup(func() { newMetrics = observability.NewMetrics })
}

func TestRun_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, mockCSV)
	}))
	defer srv.Close()
	setupEnv(t, srv.URL)

	stdin := strings.NewReader("-23.55\n-46.63\n200\n7\n")
	var stdout, stderr bytes.Buffer

	code := run(stdin, &stdout, &stderr)

	assert.Equal(t, exitOK, code, "stderr: %s", stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "Enter latitude:")
	assert.Contains(t, out, "Detected 1 reliable fires")
	assert.Contains(t, out, "High")
	// The confidence-30 row never makes the table.
	assert.NotContains(t, out, "8.2")
}

func TestRun_InvalidNumericInput(t *testing.T) {
	setupEnv(t, "http://localhost:0")

	stdin := strings.NewReader("somewhere\n")
	var stdout, stderr bytes.Buffer

	code := run(stdin, &stdout, &stderr)

	assert.Equal(t, exitInput, code)
	assert.Contains(t, stderr.String(), "not a number")
}

func TestRun_OutOfRangeCoordinates(t *testing.T) {
	setupEnv(t, "http://localhost:0")

	stdin := strings.NewReader("123.0\n-46.63\n200\n7\n")
	var stdout, stderr bytes.Buffer

	code := run(stdin, &stdout, &stderr)

	assert.Equal(t, exitInput, code)
	assert.Contains(t, stderr.String(), "invalid input")
}

func TestRun_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	setupEnv(t, srv.URL)

	stdin := strings.NewReader("-23.55\n-46.63\n200\n7\n")
	var stdout, stderr bytes.Buffer

	code := run(stdin, &stdout, &stderr)

	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "scan failed")
}

func TestRun_MissingMapKey(t *testing.T) {
	t.Setenv("FIRMS_MAP_KEY", "")

	var stdout, stderr bytes.Buffer
	code := run(strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "configuration error")
}

func TestPromptParsing(t *testing.T) {
	t.Run("float with surrounding whitespace", func(t *testing.T) {
		v, err := promptFloat(bufReader(" -23.55 \n"), &bytes.Buffer{}, "lat: ")
		require.NoError(t, err)
		assert.Equal(t, -23.55, v)
	})

	t.Run("int rejects decimals", func(t *testing.T) {
		_, err := promptInt(bufReader("7.5\n"), &bytes.Buffer{}, "days: ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "whole number")
	})

	t.Run("last line without newline still reads", func(t *testing.T) {
		v, err := promptFloat(bufReader("200"), &bytes.Buffer{}, "radius: ")
		require.NoError(t, err)
		assert.Equal(t, 200.0, v)
	})

	t.Run("empty input errors", func(t *testing.T) {
		_, err := promptFloat(bufReader(""), &bytes.Buffer{}, "lat: ")
		require.Error(t, err)
	})
}

func bufReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
