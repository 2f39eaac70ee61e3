package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query matched against titles and summaries"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string   `json:"document_id"`
	Title      string   `json:"title"`
	URI        string   `json:"uri"`
	Status     string   `json:"status"`
	Score      float64  `json:"score"`
	Snippet    string   `json:"snippet,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Status     string `json:"status,omitempty" jsonschema:"draft, pending, approved, rejected or archived"`
	Type       string `json:"type,omitempty" jsonschema:"document type, e.g. safety or policy"`
	Department string `json:"department,omitempty" jsonschema:"owning department"`
	Page       int    `json:"page,omitempty" jsonschema:"page number starting at 1"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Page      int              `json:"page"`
	Pages     int              `json:"pages"`
	Total     int              `json:"total"`
}

// DocumentOutput is the document summary returned by tools.
type DocumentOutput struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Department string `json:"department"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	URI        string `json:"uri"`
}

// ReviewInput is the input schema for the approve and reject tools.
type ReviewInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to review"`
	Comments   string `json:"comments,omitempty" jsonschema:"optional review comment"`
}

// ReviewOutput reports the document after a review.
type ReviewOutput struct {
	Document DocumentOutput `json:"document"`
}

// ListNotificationsInput is the input schema for the list_notifications tool.
type ListNotificationsInput struct {
	UnreadOnly bool `json:"unread_only,omitempty" jsonschema:"only return unread notifications"`
}

// ListNotificationsOutput is the output schema for the list_notifications tool.
type ListNotificationsOutput struct {
	Notifications []NotificationOutput `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
}

// NotificationOutput is a single notification.
type NotificationOutput struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Priority   string `json:"priority"`
	DocumentID string `json:"document_id,omitempty"`
	Read       bool   `json:"read"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search documents by title and summary",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List one page of documents, optionally filtered",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "approve_document",
		Description: "Approve a pending document",
	}, s.handleApprove)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reject_document",
		Description: "Reject a pending document",
	}, s.handleReject)

	if s.ports.Notifications != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_notifications",
			Description: "List notifications for the signed-in user",
		}, s.handleListNotifications)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	if err := s.ports.Search.Submit(ctx, input.Query); err != nil {
		return nil, SearchOutput{}, err
	}
	results := s.ports.Search.Snapshot().Results
	if len(results) > limit {
		results = results[:limit]
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		r := &results[i]
		output.Results[i] = SearchResultOutput{
			DocumentID: r.Document.ID,
			Title:      r.Document.Title,
			URI:        documentURI(r.Document.ID),
			Status:     string(r.Document.Status),
			Score:      r.Score,
			Snippet:    r.Snippet,
			Highlights: highlightedTerms(r.Snippet, r.Highlights),
		}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	filters := domain.DocumentFilters{
		Status:     orAll(input.Status),
		Type:       orAll(input.Type),
		Department: orAll(input.Department),
		Page:       max(input.Page, 1),
	}
	if err := s.ports.Documents.List(ctx, filters); err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	snap := s.ports.Documents.Snapshot()
	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(snap.Documents)),
		Page:      snap.Pagination.Page,
		Pages:     snap.Pagination.Pages,
		Total:     snap.Pagination.Total,
	}
	for i := range snap.Documents {
		output.Documents[i] = toDocumentOutput(&snap.Documents[i])
	}
	return nil, output, nil
}

func (s *Server) handleApprove(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReviewInput,
) (*mcp.CallToolResult, ReviewOutput, error) {
	return s.review(ctx, input, s.ports.Documents.Approve)
}

func (s *Server) handleReject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReviewInput,
) (*mcp.CallToolResult, ReviewOutput, error) {
	return s.review(ctx, input, s.ports.Documents.Reject)
}

// review applies an approve or reject and reports the reloaded document.
func (s *Server) review(
	ctx context.Context,
	input ReviewInput,
	apply func(ctx context.Context, id, comments string) error,
) (*mcp.CallToolResult, ReviewOutput, error) {
	if input.DocumentID == "" {
		return nil, ReviewOutput{}, fmt.Errorf("document_id is required: %w", domain.ErrInvalidInput)
	}
	if err := apply(ctx, input.DocumentID, input.Comments); err != nil {
		return nil, ReviewOutput{}, err
	}
	if err := s.ports.Documents.Get(ctx, input.DocumentID); err != nil {
		return nil, ReviewOutput{}, err
	}
	doc := s.ports.Documents.Snapshot().Current
	if doc == nil {
		return nil, ReviewOutput{}, errors.New("document not loaded")
	}
	return nil, ReviewOutput{Document: toDocumentOutput(doc)}, nil
}

// handleListNotifications handles the list_notifications tool invocation.
func (s *Server) handleListNotifications(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListNotificationsInput,
) (*mcp.CallToolResult, ListNotificationsOutput, error) {
	svc := s.ports.Notifications
	f := svc.Snapshot().Filters
	f.UnreadOnly = input.UnreadOnly
	svc.SetFilters(f)
	if err := svc.List(ctx); err != nil {
		return nil, ListNotificationsOutput{}, err
	}

	snap := svc.Snapshot()
	output := ListNotificationsOutput{
		Notifications: make([]NotificationOutput, len(snap.Notifications)),
		UnreadCount:   snap.UnreadCount,
	}
	for i, n := range snap.Notifications {
		output.Notifications[i] = NotificationOutput{
			ID:         n.ID,
			Type:       string(n.Type),
			Title:      n.Title,
			Message:    n.Message,
			Priority:   string(n.Priority),
			DocumentID: n.DocumentID,
			Read:       n.IsRead,
		}
	}
	return nil, output, nil
}

func toDocumentOutput(d *domain.Document) DocumentOutput {
	return DocumentOutput{
		ID:         d.ID,
		Title:      d.Title,
		Type:       string(d.Type),
		Department: d.Department,
		Status:     string(d.Status),
		Priority:   string(d.Priority),
		URI:        documentURI(d.ID),
	}
}

// highlightedTerms returns the text covered by each valid span.
func highlightedTerms(text string, spans []domain.Span) []string {
	var out []string
	for _, sp := range spans {
		if sp.Start < 0 || sp.End > len(text) || sp.Start >= sp.End {
			continue
		}
		out = append(out, text[sp.Start:sp.End])
	}
	return out
}

func orAll(v string) string {
	if v == "" {
		return domain.FilterAll
	}
	return v
}
