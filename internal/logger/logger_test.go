package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// capture routes console output to a buffer for the rest of the test.
func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
		_ = SetFile("")
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestConsoleOutput(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func()
		want    string
	}{
		{"debug", true, func() { Debug("GET %s", "/documents") }, "[DEBUG] GET /documents\n"},
		{"info", true, func() { Info("signed in as %s", "alice") }, "[INFO] signed in as alice\n"},
		{"warn", true, func() { Warn("retrying %d", 2) }, "[WARN] retrying 2\n"},
		{"section", true, func() { Section("Search") }, "[DEBUG] === Search ===\n"},
		{"quiet debug", false, func() { Debug("hidden") }, ""},
		{"quiet info", false, func() { Info("hidden") }, ""},
		{"quiet warn", false, func() { Warn("hidden") }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose)

			tt.log()

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestStructuredFields(t *testing.T) {
	buf := capture(t, true)

	L().Debug("request", zap.String("method", "GET"), zap.Int("status", 200))

	assert.Equal(t, "[DEBUG] request {\"method\": \"GET\", \"status\": 200}\n", buf.String())
}

func TestSetFile_WritesJSONAtInfo(t *testing.T) {
	capture(t, false)
	path := filepath.Join(t.TempDir(), "docdesk.log")
	require.NoError(t, SetFile(path))

	Debug("hidden")
	Info("document %s uploaded", "42")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "document 42 uploaded", entry["msg"])
	assert.Contains(t, entry, "timestamp")
	assert.NotContains(t, string(data), "hidden")
}

func TestSetFile_VerboseAlsoWritesDebug(t *testing.T) {
	capture(t, true)
	path := filepath.Join(t.TempDir(), "docdesk.log")
	require.NoError(t, SetFile(path))

	Debug("token refreshed")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "token refreshed")
}

func TestSetFile_EmptyStopsFileLogging(t *testing.T) {
	capture(t, false)
	path := filepath.Join(t.TempDir(), "docdesk.log")
	require.NoError(t, SetFile(path))
	require.NoError(t, SetFile(""))

	Info("not written")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestClose_WithoutFile(t *testing.T) {
	capture(t, false)

	assert.NoError(t, Close())
}
