package driven

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// UploadJournal records files uploaded from a watched folder.
type UploadJournal interface {
	// HasUploaded returns true if a successful upload with this checksum exists.
	HasUploaded(ctx context.Context, checksum string) (bool, error)

	// Record appends an entry.
	Record(ctx context.Context, rec domain.UploadRecord) error

	// Recent returns the newest entries first.
	Recent(ctx context.Context, limit int) ([]domain.UploadRecord, error)
}
