package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// ListDocuments returns one page of documents.
func (c *Client) ListDocuments(ctx context.Context, filters domain.DocumentFilters) (*domain.DocumentList, error) {
	q, err := encodeQuery(filters)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.get(ctx, "/documents", q, &raw, "Failed to fetch documents"); err != nil {
		return nil, err
	}
	return c.decodeDocumentList(raw)
}

// decodeDocumentList accepts the paginated envelope or a bare array.
func (c *Client) decodeDocumentList(raw json.RawMessage) (*domain.DocumentList, error) {
	userID := c.currentUser()
	raw = bytes.TrimSpace(raw)

	if len(raw) > 0 && raw[0] == '[' {
		var docs []documentDTO
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, decodeError(http.StatusOK, err)
		}
		return &domain.DocumentList{Documents: documentsToDomain(docs, userID)}, nil
	}

	var resp documentListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, decodeError(http.StatusOK, err)
	}
	return &domain.DocumentList{
		Documents: documentsToDomain(resp.Documents, userID),
		Pagination: &domain.Pagination{
			Page:  resp.Page,
			Limit: resp.Limit,
			Total: resp.Total,
			Pages: resp.Pages,
		},
	}, nil
}

// GetDocument fetches one document.
func (c *Client) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	var resp documentDTO
	if err := c.get(ctx, "/documents/"+escape(id), nil, &resp, "Failed to fetch document"); err != nil {
		return nil, err
	}
	doc := resp.toDomain(c.currentUser())
	return &doc, nil
}

// UploadDocument creates a document from a multipart form.
func (c *Client) UploadDocument(ctx context.Context, req domain.UploadRequest) (*domain.Document, error) {
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"title", req.Title},
		{"summary", req.Summary},
		{"type", string(req.Type)},
		{"department", req.Department},
		{"priority", string(priority)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	part, err := w.CreateFormFile("file", req.FileName)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(req.Content); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	var resp documentDTO
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/documents",
		body:        &buf,
		contentType: w.FormDataContentType(),
		fallback:    "Failed to upload document",
	}, &resp)
	if err != nil {
		return nil, err
	}
	doc := resp.toDomain(c.currentUser())
	return &doc, nil
}

// UpdateDocument applies a partial update.
func (c *Client) UpdateDocument(ctx context.Context, id string, update domain.DocumentUpdate) (*domain.Document, error) {
	body := documentUpdateBody{
		Title:      update.Title,
		Summary:    update.Summary,
		Department: update.Department,
		Deadline:   update.Deadline,
	}
	if update.Type != nil {
		t := string(*update.Type)
		body.Type = &t
	}
	if update.Priority != nil {
		p := string(*update.Priority)
		body.Priority = &p
	}

	var resp documentDTO
	if err := c.send(ctx, http.MethodPut, "/documents/"+escape(id), body, &resp, "Failed to update document"); err != nil {
		return nil, err
	}
	doc := resp.toDomain(c.currentUser())
	return &doc, nil
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/documents/"+escape(id), nil, nil, "Failed to delete document")
}

// ApproveDocument approves a document and returns it as stored.
func (c *Client) ApproveDocument(ctx context.Context, id, comments string) (*domain.Document, error) {
	return c.act(ctx, id, "approve", comments, "Failed to approve document")
}

// RejectDocument rejects a document and returns it as stored.
func (c *Client) RejectDocument(ctx context.Context, id, comments string) (*domain.Document, error) {
	return c.act(ctx, id, "reject", comments, "Failed to reject document")
}

// act posts a workflow action. The server answers with a receipt, so the
// document is fetched again.
func (c *Client) act(ctx context.Context, id, action, comments, fallback string) (*domain.Document, error) {
	path := "/documents/" + escape(id) + "/" + action
	if err := c.send(ctx, http.MethodPost, path, actionBody{Comments: comments}, nil, fallback); err != nil {
		return nil, err
	}
	return c.GetDocument(ctx, id)
}

// BookmarkDocument toggles the caller's bookmark.
func (c *Client) BookmarkDocument(ctx context.Context, id string) (*domain.Document, error) {
	var resp documentDTO
	path := "/documents/" + escape(id) + "/bookmark"
	if err := c.send(ctx, http.MethodPost, path, nil, &resp, "Failed to update bookmark"); err != nil {
		return nil, err
	}
	doc := resp.toDomain(c.currentUser())
	return &doc, nil
}

// WorkflowHistory returns the approval history of a document.
func (c *Client) WorkflowHistory(ctx context.Context, id string) ([]domain.WorkflowEntry, error) {
	var resp workflowResponse
	path := "/documents/" + escape(id) + "/workflow"
	if err := c.get(ctx, path, nil, &resp, "Failed to fetch workflow history"); err != nil {
		return nil, err
	}

	entries := make([]domain.WorkflowEntry, 0, len(resp.Workflow))
	for _, w := range resp.Workflow {
		entries = append(entries, domain.WorkflowEntry{
			ID:             w.ID.String(),
			Action:         w.Action,
			Comments:       w.Comments,
			PreviousStatus: domain.DocumentStatus(w.PreviousStatus),
			NewStatus:      domain.DocumentStatus(w.NewStatus),
			UserID:         w.UserID.String(),
			Timestamp:      w.Timestamp.Time,
		})
	}
	return entries, nil
}

// RequestRevision asks the owner to revise a document.
func (c *Client) RequestRevision(ctx context.Context, id string, req domain.RevisionRequest) error {
	body := revisionBody{RequestedChanges: req.Changes}
	if body.RequestedChanges == nil {
		body.RequestedChanges = []string{}
	}
	if !req.Deadline.IsZero() {
		body.Deadline = &req.Deadline
	}
	path := "/documents/" + escape(id) + "/request-revision"
	return c.send(ctx, http.MethodPost, path, body, nil, "Failed to request revision")
}

// DownloadLink returns the download URL of a document's file. Relative
// links are resolved against the API host.
func (c *Client) DownloadLink(ctx context.Context, id string) (string, error) {
	var resp downloadResponse
	path := "/documents/" + escape(id) + "/download"
	if err := c.get(ctx, path, nil, &resp, "Failed to download document"); err != nil {
		return "", err
	}
	return c.resolve(resp.DownloadURL), nil
}
