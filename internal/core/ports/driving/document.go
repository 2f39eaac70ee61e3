package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// DocumentService manages documents, their comments and their workflow.
type DocumentService interface {
	// List merges filters into the held filters and fetches that page.
	// Pass a zero value to refresh with the held filters.
	List(ctx context.Context, filters domain.DocumentFilters) error

	// SetFilters merges filters into the held filters without fetching.
	SetFilters(filters domain.DocumentFilters) domain.DocumentFilters

	// ClearFilters restores the default filters.
	ClearFilters()

	// Get loads a document into the detail slot.
	Get(ctx context.Context, id string) error

	// Upload creates a document and returns it.
	Upload(ctx context.Context, req domain.UploadRequest) (*domain.Document, error)

	Update(ctx context.Context, id string, update domain.DocumentUpdate) error
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id, comments string) error
	Reject(ctx context.Context, id, comments string) error
	ToggleBookmark(ctx context.Context, id string) error

	// Workflow loads the approval history of the detail document.
	Workflow(ctx context.Context, id string) error

	// RequestRevision sends a document back to draft and reloads it.
	RequestRevision(ctx context.Context, id string, req domain.RevisionRequest) error

	// DownloadLink returns a link to the document's file.
	DownloadLink(ctx context.Context, id string) (string, error)

	// Comments loads the comments of the detail document.
	Comments(ctx context.Context, documentID string) error

	AddComment(ctx context.Context, documentID, text string) error
	UpdateComment(ctx context.Context, id, text string, resolved *bool) error
	DeleteComment(ctx context.Context, id string) error

	// CloseDetail drops the detail document.
	CloseDetail()

	// ClearError removes the recorded error of a concern.
	ClearError(concern domain.Concern)

	// Snapshot returns the documents state.
	Snapshot() state.DocumentsSnapshot
}
