package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "https://docs.example.com/api/v1/")
	_ = store.Set("api.timeout_seconds", 5)
	_ = store.Set("api.rate_per_second", 2.5)
	_ = store.Set("search.debounce_ms", 150)
	_ = store.Set("documents.page_size", 50)
	_ = store.Set("log.file", "/tmp/docdesk.log")
	_ = store.Set("log.verbose", true)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/api/v1", settings.API.BaseURL)
	assert.Equal(t, 5, settings.API.TimeoutSeconds)
	assert.InDelta(t, 2.5, settings.API.RatePerSecond, 0.001)
	assert.Equal(t, 150, settings.Search.DebounceMS)
	assert.Equal(t, 50, settings.Documents.PageSize)
	assert.Equal(t, "/tmp/docdesk.log", settings.Log.File)
	assert.True(t, settings.Log.Verbose)
}

func TestSettingsService_GetInt_WithZeroValue(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("search.debounce_ms", 0)
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 0, settings.Search.DebounceMS, "a stored zero is not replaced by the default")
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.API.BaseURL = "https://docs.example.com/api/v1"
	settings.Documents.PageSize = 10

	require.NoError(t, service.Save(&settings))

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *retrieved)
}

func TestSettingsService_SetBaseURL(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetBaseURL(" https://docs.example.com/api/v1/ "))
	assert.Equal(t, "https://docs.example.com/api/v1", store.GetString("api.base_url"))

	err := service.SetBaseURL("docs.example.com")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "https://docs.example.com/api/v1", store.GetString("api.base_url"))
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr bool
	}{
		{"defaults", "", nil, false},
		{"bad url", "api.base_url", "ftp://docs", true},
		{"zero timeout", "api.timeout_seconds", 0, true},
		{"negative rate", "api.rate_per_second", -1.0, true},
		{"negative debounce", "search.debounce_ms", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			if tt.key != "" {
				_ = store.Set(tt.key, tt.value)
			}
			err := NewSettingsService(store).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

// Mock config store that always fails on Set
type failingConfigStore struct {
	*memory.ConfigStore
	failOn string
}

func (f *failingConfigStore) Set(key string, value interface{}) error {
	if f.failOn == "" || key == f.failOn {
		return assert.AnError
	}
	return f.ConfigStore.Set(key, value)
}

func TestSettingsService_Save_Errors(t *testing.T) {
	for _, key := range []string{
		"api.base_url", "api.timeout_seconds", "api.rate_per_second",
		"search.debounce_ms", "documents.page_size", "log.file", "log.verbose",
	} {
		t.Run(key, func(t *testing.T) {
			store := &failingConfigStore{ConfigStore: memory.NewConfigStore(), failOn: key}
			service := NewSettingsService(store)
			settings := domain.DefaultAppSettings()

			err := service.Save(&settings)

			assert.ErrorIs(t, err, assert.AnError)
		})
	}
}
