// Package tui provides an interactive terminal user interface for docdesk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auth holds the signed-in session.
	Auth driving.AuthService

	// Search runs searches and debounced suggestions.
	Search driving.SearchService

	// Documents lists, reviews and mutates documents.
	Documents driving.DocumentService

	// Notifications manages the notification inbox.
	Notifications driving.NotificationService

	// Dashboard provides the overview and analytics.
	Dashboard driving.DashboardService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	search driving.SearchService,
	documents driving.DocumentService,
	notifications driving.NotificationService,
) *Ports {
	return &Ports{
		Search:        search,
		Documents:     documents,
		Notifications: notifications,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Notifications == nil {
		return ErrMissingNotificationService
	}
	return nil
}
