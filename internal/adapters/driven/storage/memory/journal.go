package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
)

// Ensure UploadJournal implements the interface.
var _ driven.UploadJournal = (*UploadJournal)(nil)

// UploadJournal is an in-memory implementation of driven.UploadJournal.
type UploadJournal struct {
	mu      sync.RWMutex
	records []domain.UploadRecord
}

// NewUploadJournal creates a new in-memory upload journal.
func NewUploadJournal() *UploadJournal {
	return &UploadJournal{}
}

// HasUploaded returns true if a successful upload with this checksum exists.
func (j *UploadJournal) HasUploaded(_ context.Context, checksum string) (bool, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, r := range j.records {
		if r.Checksum == checksum && r.Succeeded() {
			return true, nil
		}
	}
	return false, nil
}

// Record appends an entry, assigning an ID if it has none.
func (j *UploadJournal) Record(_ context.Context, rec domain.UploadRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, rec)
	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero or
// less returns all entries.
func (j *UploadJournal) Recent(_ context.Context, limit int) ([]domain.UploadRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := len(j.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.UploadRecord, 0, n)
	for i := len(j.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, j.records[i])
	}
	return out, nil
}
