package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBaseURL       = "api.base_url"
	keyTimeout       = "api.timeout_seconds"
	keyRatePerSecond = "api.rate_per_second"
	keyDebounceMS    = "search.debounce_ms"
	keyPageSize      = "documents.page_size"
	keyLogFile       = "log.file"
	keyLogVerbose    = "log.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:        strings.TrimRight(s.getString(keyBaseURL, defaults.API.BaseURL), "/"),
			TimeoutSeconds: s.getInt(keyTimeout, defaults.API.TimeoutSeconds),
			RatePerSecond:  s.getFloat(keyRatePerSecond, defaults.API.RatePerSecond),
		},
		Search: domain.SearchSettings{
			DebounceMS: s.getInt(keyDebounceMS, defaults.Search.DebounceMS),
		},
		Documents: domain.DocumentSettings{
			PageSize: s.getInt(keyPageSize, defaults.Documents.PageSize),
		},
		Log: domain.LogSettings{
			File:    s.configStore.GetString(keyLogFile), // No default - empty disables file logging
			Verbose: s.configStore.GetBool(keyLogVerbose),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyBaseURL, settings.API.BaseURL); err != nil {
		return fmt.Errorf("save api base_url: %w", err)
	}
	if err := s.configStore.Set(keyTimeout, settings.API.TimeoutSeconds); err != nil {
		return fmt.Errorf("save api timeout: %w", err)
	}
	if err := s.configStore.Set(keyRatePerSecond, settings.API.RatePerSecond); err != nil {
		return fmt.Errorf("save api rate: %w", err)
	}
	if err := s.configStore.Set(keyDebounceMS, settings.Search.DebounceMS); err != nil {
		return fmt.Errorf("save search debounce: %w", err)
	}
	if err := s.configStore.Set(keyPageSize, settings.Documents.PageSize); err != nil {
		return fmt.Errorf("save page size: %w", err)
	}
	if err := s.configStore.Set(keyLogFile, settings.Log.File); err != nil {
		return fmt.Errorf("save log file: %w", err)
	}
	if err := s.configStore.Set(keyLogVerbose, settings.Log.Verbose); err != nil {
		return fmt.Errorf("save log verbose: %w", err)
	}
	return nil
}

// SetBaseURL updates the API root.
func (s *SettingsService) SetBaseURL(baseURL string) error {
	api := domain.APISettings{BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
	if !api.IsConfigured() {
		return fmt.Errorf("invalid base url %q: %w", baseURL, domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.API.BaseURL = api.BaseURL
	return s.Save(settings)
}

// Validate checks the current settings can reach an API.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if !settings.API.IsConfigured() {
		return fmt.Errorf("api.base_url %q is not an http(s) URL", settings.API.BaseURL)
	}
	if settings.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", settings.API.TimeoutSeconds)
	}
	if settings.API.RatePerSecond < 0 {
		return fmt.Errorf("api.rate_per_second must not be negative")
	}
	if settings.Search.DebounceMS < 0 {
		return fmt.Errorf("search.debounce_ms must not be negative")
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}
