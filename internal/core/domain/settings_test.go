package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultBaseURL, s.API.BaseURL)
	assert.Equal(t, 30*time.Second, s.API.Timeout())
	assert.Equal(t, 300*time.Millisecond, s.Search.Debounce())
	assert.Equal(t, 20, s.Documents.PageSize)
	assert.Empty(t, s.Log.File)
}

func TestAPISettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    bool
	}{
		{"default", DefaultBaseURL, true},
		{"https", "https://docs.example.com/api/v1", true},
		{"empty", "", false},
		{"no scheme", "docs.example.com", false},
		{"ftp", "ftp://docs.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, APISettings{BaseURL: tt.baseURL}.IsConfigured())
		})
	}
}

func TestStatusAndConcern_String(t *testing.T) {
	assert.Equal(t, "loading", StatusLoading.String())
	assert.True(t, StatusLoading.IsLoading())
	assert.False(t, StatusFailed.IsLoading())
	assert.Equal(t, "documents.list", ConcernDocumentsList.String())
}
