package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentGateway is the remote surface DocumentService needs.
type DocumentGateway interface {
	driven.DocumentGateway
	driven.CommentGateway
}

// DocumentService manages documents, their comments and their workflow.
type DocumentService struct {
	sessionGuard
	gateway  DocumentGateway
	pageSize int
}

// NewDocumentService creates a new document service. A pageSize of zero
// leaves the page size to the server.
func NewDocumentService(
	store *state.Store,
	gateway DocumentGateway,
	tokens driven.TokenStore,
	pageSize int,
) *DocumentService {
	return &DocumentService{
		sessionGuard: sessionGuard{store: store, tokens: tokens},
		gateway:      gateway,
		pageSize:     pageSize,
	}
}

// List merges filters into the held filters and fetches that page.
func (s *DocumentService) List(ctx context.Context, filters domain.DocumentFilters) error {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsList)

	f := docs.SetFilters(filters)
	if f.Limit == 0 {
		f.Limit = s.pageSize
	}
	logger.Debug("Listing documents: %+v", f)

	list, err := s.gateway.ListDocuments(ctx, f)
	if err != nil {
		return s.fail(ctx, docs, tk, err)
	}
	docs.CompleteList(tk, list)
	return nil
}

// SetFilters merges filters into the held filters without fetching.
func (s *DocumentService) SetFilters(filters domain.DocumentFilters) domain.DocumentFilters {
	return s.store.Documents.SetFilters(filters)
}

// ClearFilters restores the default filters.
func (s *DocumentService) ClearFilters() {
	s.store.Documents.ClearFilters()
}

// Get loads a document into the detail slot.
func (s *DocumentService) Get(ctx context.Context, id string) error {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsDetail)

	doc, err := s.gateway.GetDocument(ctx, id)
	if err != nil {
		return s.fail(ctx, docs, tk, err)
	}
	docs.CompleteDetail(tk, doc)
	return nil
}

// Upload creates a document and returns it.
func (s *DocumentService) Upload(ctx context.Context, req domain.UploadRequest) (*domain.Document, error) {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsUpload)

	if err := req.Validate(); err != nil {
		err = fmt.Errorf("title, department, a file and a valid type are required: %w", err)
		docs.Fail(tk, err)
		return nil, err
	}

	logger.Debug("Uploading %s (%d bytes)", req.FileName, len(req.Content))
	doc, err := s.gateway.UploadDocument(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, docs, tk, err)
	}
	docs.CompleteUpload(tk, doc)
	return doc, nil
}

// Update applies a partial update.
func (s *DocumentService) Update(ctx context.Context, id string, update domain.DocumentUpdate) error {
	return s.mutate(ctx, func() (*domain.Document, error) {
		return s.gateway.UpdateDocument(ctx, id, update)
	})
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsDelete)

	if err := s.gateway.DeleteDocument(ctx, id); err != nil {
		return s.fail(ctx, docs, tk, err)
	}
	docs.CompleteDelete(tk, id)
	return nil
}

// Approve approves a pending document.
func (s *DocumentService) Approve(ctx context.Context, id, comments string) error {
	return s.mutate(ctx, func() (*domain.Document, error) {
		return s.gateway.ApproveDocument(ctx, id, comments)
	})
}

// Reject rejects a pending document.
func (s *DocumentService) Reject(ctx context.Context, id, comments string) error {
	return s.mutate(ctx, func() (*domain.Document, error) {
		return s.gateway.RejectDocument(ctx, id, comments)
	})
}

// ToggleBookmark flips the caller's bookmark on a document.
func (s *DocumentService) ToggleBookmark(ctx context.Context, id string) error {
	return s.mutate(ctx, func() (*domain.Document, error) {
		return s.gateway.BookmarkDocument(ctx, id)
	})
}

// RequestRevision sends a document back to draft and reloads it.
func (s *DocumentService) RequestRevision(ctx context.Context, id string, req domain.RevisionRequest) error {
	return s.mutate(ctx, func() (*domain.Document, error) {
		if err := s.gateway.RequestRevision(ctx, id, req); err != nil {
			return nil, err
		}
		return s.gateway.GetDocument(ctx, id)
	})
}

// mutate runs a call that returns a server-confirmed document and
// reconciles it under the action concern.
func (s *DocumentService) mutate(ctx context.Context, call func() (*domain.Document, error)) error {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsAction)

	doc, err := call()
	if err != nil {
		return s.fail(ctx, docs, tk, err)
	}
	docs.CompleteMutation(tk, doc)
	return nil
}

// Workflow loads the approval history of a document.
func (s *DocumentService) Workflow(ctx context.Context, id string) error {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsWorkflow)

	entries, err := s.gateway.WorkflowHistory(ctx, id)
	if err != nil {
		return s.fail(ctx, docs, tk, err)
	}
	docs.CompleteWorkflow(tk, id, entries)
	return nil
}

// DownloadLink returns a link to the document's file.
func (s *DocumentService) DownloadLink(ctx context.Context, id string) (string, error) {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsDownload)

	url, err := s.gateway.DownloadLink(ctx, id)
	if err != nil {
		return "", s.fail(ctx, docs, tk, err)
	}
	docs.CompleteDownload(tk, id, url)
	return url, nil
}

// Comments loads the comments of a document.
func (s *DocumentService) Comments(ctx context.Context, documentID string) error {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsComments)

	comments, err := s.gateway.ListComments(ctx, documentID)
	if err != nil {
		return s.fail(ctx, docs, tk, err)
	}
	docs.CompleteComments(tk, documentID, comments)
	return nil
}

// AddComment posts a comment and appends it to the detail document.
func (s *DocumentService) AddComment(ctx context.Context, documentID, text string) error {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsCommentAction)

	if strings.TrimSpace(text) == "" {
		err := fmt.Errorf("comment text is required: %w", domain.ErrInvalidInput)
		docs.Fail(tk, err)
		return err
	}

	comment, err := s.gateway.AddComment(ctx, documentID, text)
	if err != nil {
		return s.fail(ctx, docs, tk, err)
	}
	docs.CompleteCommentAdded(tk, comment)
	return nil
}

// UpdateComment edits a comment.
func (s *DocumentService) UpdateComment(ctx context.Context, id, text string, resolved *bool) error {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsCommentAction)

	comment, err := s.gateway.UpdateComment(ctx, id, text, resolved)
	if err != nil {
		return s.fail(ctx, docs, tk, err)
	}
	docs.CompleteCommentUpdated(tk, comment)
	return nil
}

// DeleteComment removes a comment.
func (s *DocumentService) DeleteComment(ctx context.Context, id string) error {
	docs := s.store.Documents
	tk := docs.Begin(domain.ConcernDocumentsCommentAction)

	if err := s.gateway.DeleteComment(ctx, id); err != nil {
		return s.fail(ctx, docs, tk, err)
	}
	docs.CompleteCommentDeleted(tk, id)
	return nil
}

// CloseDetail drops the detail document.
func (s *DocumentService) CloseDetail() {
	s.store.Documents.CloseDetail()
}

// ClearError removes the recorded error of a concern.
func (s *DocumentService) ClearError(concern domain.Concern) {
	s.store.Documents.ClearError(concern)
}

// Snapshot returns the documents state.
func (s *DocumentService) Snapshot() state.DocumentsSnapshot {
	return s.store.Documents.Snapshot()
}
