package driving

import "github.com/custodia-labs/docdesk-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetBaseURL updates the API root.
	SetBaseURL(baseURL string) error

	// Validate checks the current settings can reach an API.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
