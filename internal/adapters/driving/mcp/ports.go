package mcp

import (
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs searches.
	Search driving.SearchService

	// Documents lists, reads and reviews documents.
	Documents driving.DocumentService

	// Notifications exposes the inbox. Optional.
	Notifications driving.NotificationService

	// Dashboard exposes the overview. Optional.
	Dashboard driving.DashboardService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	return nil
}
