package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func TestLoadFrom(t *testing.T) {
	o, err := LoadFrom(map[string]string{
		"DOCDESK_API_URL":  "https://docs.example.com/api/v1/",
		"DOCDESK_TIMEOUT":  "1500ms",
		"DOCDESK_HOME":     "/tmp/docdesk",
		"DOCDESK_LOG_FILE": "/tmp/docdesk.log",
		"DOCDESK_VERBOSE":  "true",
	})

	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, o.Timeout)
	assert.Equal(t, "/tmp/docdesk", o.Home)
	assert.True(t, o.Verbose)

	settings := domain.DefaultAppSettings()
	o.Apply(&settings)

	assert.Equal(t, "https://docs.example.com/api/v1", settings.API.BaseURL)
	assert.Equal(t, 2, settings.API.TimeoutSeconds, "partial seconds round up")
	assert.Equal(t, "/tmp/docdesk.log", settings.Log.File)
	assert.Equal(t, domain.DefaultAppSettings().Search, settings.Search)
}

func TestLoadFrom_Empty(t *testing.T) {
	o, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	settings := domain.DefaultAppSettings()
	o.Apply(&settings)

	assert.Equal(t, domain.DefaultAppSettings(), settings)
}

func TestLoadFrom_Invalid(t *testing.T) {
	_, err := LoadFrom(map[string]string{"DOCDESK_TIMEOUT": "soon"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoad(t *testing.T) {
	t.Setenv("DOCDESK_DEBOUNCE_MS", "120")

	o, err := Load()

	require.NoError(t, err)
	settings := domain.DefaultAppSettings()
	o.Apply(&settings)
	assert.Equal(t, 120, settings.Search.DebounceMS)
}
