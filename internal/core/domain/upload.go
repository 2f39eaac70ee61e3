package domain

import "time"

// UploadRecord is a journal entry for a file uploaded from a watched folder.
type UploadRecord struct {
	ID         string
	Path       string
	Checksum   string
	DocumentID string
	Error      string
	UploadedAt time.Time
}

// Succeeded returns true if the upload produced a document.
func (r UploadRecord) Succeeded() bool {
	return r.Error == "" && r.DocumentID != ""
}
