package domain

import "time"

// DocumentType categorises a document.
type DocumentType string

// Available document types. The API also reports compliance, operations and
// training documents; those are accepted as-is.
const (
	DocumentTypeSafety      DocumentType = "safety"
	DocumentTypeMaintenance DocumentType = "maintenance"
	DocumentTypeFinance     DocumentType = "finance"
	DocumentTypeRegulatory  DocumentType = "regulatory"
	DocumentTypeHR          DocumentType = "hr"
	DocumentTypeCompliance  DocumentType = "compliance"
	DocumentTypeOperations  DocumentType = "operations"
	DocumentTypeTraining    DocumentType = "training"
)

// IsValid returns true if the type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeSafety, DocumentTypeMaintenance, DocumentTypeFinance,
		DocumentTypeRegulatory, DocumentTypeHR, DocumentTypeCompliance,
		DocumentTypeOperations, DocumentTypeTraining:
		return true
	default:
		return false
	}
}

// DocumentStatus is the approval workflow state of a document.
type DocumentStatus string

// Available document statuses.
const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
	DocumentStatusArchived DocumentStatus = "archived"
)

// IsValid returns true if the status is recognised.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusPending, DocumentStatusApproved,
		DocumentStatusRejected, DocumentStatusArchived:
		return true
	default:
		return false
	}
}

// Priority ranks documents and notifications.
type Priority string

// Available priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid returns true if the priority is recognised.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// FileInfo describes the stored file behind a document.
type FileInfo struct {
	Name      string
	Type      string
	Size      int64
	Version   string
	PageCount int
}

// Document is a managed document as the client sees it.
type Document struct {
	// ID is assigned by the server and unique.
	ID string

	Title      string
	Summary    string
	Type       DocumentType
	Department string
	Status     DocumentStatus
	Priority   Priority

	// UploadedBy is the id of the uploading user.
	UploadedBy string

	// Bookmarked is true if the current user bookmarked the document.
	Bookmarked bool

	// Comments is ordered oldest first. It is only populated on the
	// detail copy once comments have been fetched.
	Comments []Comment

	File FileInfo

	ViewCount     int
	DownloadCount int

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt time.Time
	Deadline   time.Time
}

// Comment is a remark on a document.
type Comment struct {
	ID         string
	DocumentID string
	Author     string
	Text       string
	Resolved   bool
	Timestamp  time.Time
}

// DocumentFilters narrows a document listing. The value "all" and the empty
// string both mean "no constraint"; the gateway never transmits them.
type DocumentFilters struct {
	Type       string `url:"type,omitempty"`
	Department string `url:"department,omitempty"`
	Status     string `url:"status,omitempty"`
	Priority   string `url:"priority,omitempty"`
	Search     string `url:"search,omitempty"`
	Page       int    `url:"page,omitempty"`
	Limit      int    `url:"limit,omitempty"`
}

// FilterAll is the sentinel value meaning "no constraint".
const FilterAll = "all"

// DefaultDocumentFilters returns filters with every constraint set to "all".
func DefaultDocumentFilters() DocumentFilters {
	return DocumentFilters{
		Type:       FilterAll,
		Department: FilterAll,
		Status:     FilterAll,
		Priority:   FilterAll,
	}
}

// Merge overlays the non-empty fields of other onto f.
func (f DocumentFilters) Merge(other DocumentFilters) DocumentFilters {
	if other.Type != "" {
		f.Type = other.Type
	}
	if other.Department != "" {
		f.Department = other.Department
	}
	if other.Status != "" {
		f.Status = other.Status
	}
	if other.Priority != "" {
		f.Priority = other.Priority
	}
	if other.Search != "" {
		f.Search = other.Search
	}
	if other.Page > 0 {
		f.Page = other.Page
	}
	if other.Limit > 0 {
		f.Limit = other.Limit
	}
	return f
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int
	Limit int
	Total int
	Pages int
}

// DefaultPagination is the pagination before the first fetch.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, Limit: 20}
}

// DocumentList is one page of documents. Pagination is nil when the server
// returned a bare list.
type DocumentList struct {
	Documents  []Document
	Pagination *Pagination
}

// MaxUploadSize is the largest file the server accepts.
const MaxUploadSize = 50 << 20

// UploadRequest is a new document submitted with its file.
type UploadRequest struct {
	// FileName is the name sent with the multipart file part.
	FileName string

	// Content is the file body. It is read once.
	Content []byte

	Title      string
	Summary    string
	Type       DocumentType
	Department string
	Priority   Priority
}

// Validate checks the required metadata.
func (r UploadRequest) Validate() error {
	if r.FileName == "" || r.Title == "" || r.Department == "" {
		return ErrInvalidInput
	}
	if !r.Type.IsValid() {
		return ErrInvalidInput
	}
	if r.Priority != "" && !r.Priority.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// DocumentUpdate is a partial update. Nil fields are left unchanged.
type DocumentUpdate struct {
	Title      *string
	Summary    *string
	Type       *DocumentType
	Department *string
	Priority   *Priority
	Deadline   *time.Time
}

// WorkflowEntry is one step of a document's approval history.
type WorkflowEntry struct {
	ID             string
	Action         string
	Comments       string
	PreviousStatus DocumentStatus
	NewStatus      DocumentStatus
	UserID         string
	Timestamp      time.Time
}

// RevisionRequest asks the owner of a document to revise it.
type RevisionRequest struct {
	Changes  []string
	Deadline time.Time
}

// DocumentStats are the counters shown alongside the document list.
type DocumentStats struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}
