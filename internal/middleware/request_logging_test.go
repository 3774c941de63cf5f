package middleware

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model_rankings/internal/logging"
)

func TestRequestLoggingRecordsStatus(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewRequestLogger(filepath.Join(dir, "requests-%s.jsonl"), 10_485_760, 5, 100, time.Second)
	require.NoError(t, err)

	handler := RequestLogging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rankings?search=gpt", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	logger.Shutdown()

	matches, err := filepath.Glob(filepath.Join(dir, "requests-*.jsonl"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	file, err := os.Open(matches[0])
	require.NoError(t, err)
	defer file.Close()

	scanner := bufio.NewScanner(file)
	require.True(t, scanner.Scan())

	var entry logging.RequestLog
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
	assert.Equal(t, http.StatusNotFound, entry.Status)
	assert.Equal(t, "/api/v1/rankings", entry.Path)
	assert.Equal(t, "search=gpt", entry.Query)
	assert.NotEmpty(t, entry.RequestID)
}

func TestRequestLoggingDefaultsTo200(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewRequestLogger(filepath.Join(dir, "requests-%s.jsonl"), 10_485_760, 5, 100, time.Second)
	require.NoError(t, err)

	handler := RequestLogging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Implicit 200 via the first Write.
		w.Write([]byte("OK"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	logger.Shutdown()

	matches, err := filepath.Glob(filepath.Join(dir, "requests-*.jsonl"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)

	var entry logging.RequestLog
	require.NoError(t, json.Unmarshal(data[:len(data)-1], &entry))
	assert.Equal(t, http.StatusOK, entry.Status)
}
