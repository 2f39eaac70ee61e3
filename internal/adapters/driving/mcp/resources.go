package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docdesk resources.
	uriScheme = "docdesk://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for a single document with its comments.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document",
		Description: "A document with its metadata and comments",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)

	if s.ports.Notifications != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "notifications",
			Name:        "notifications",
			Description: "Notifications for the signed-in user",
			MIMEType:    "application/json",
		}, s.handleNotificationsResource)
	}

	if s.ports.Dashboard != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "dashboard",
			Name:        "dashboard",
			Description: "Document statistics, alerts and pending actions",
			MIMEType:    "application/json",
		}, s.handleDashboardResource)
	}
}

// documentInfo is the document resource body.
type documentInfo struct {
	DocumentOutput
	Summary  string        `json:"summary,omitempty"`
	FileName string        `json:"file_name,omitempty"`
	Comments []commentInfo `json:"comments"`
}

type commentInfo struct {
	Author   string `json:"author"`
	Text     string `json:"text"`
	Resolved bool   `json:"resolved"`
}

// handleDocumentResource returns a document with its comments.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract documentId from URI: docdesk://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs := s.ports.Documents
	if err := docs.Get(ctx, docID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}
	if err := docs.Comments(ctx, docID); err != nil {
		return nil, fmt.Errorf("getting comments: %w", err)
	}

	doc := docs.Snapshot().Current
	if doc == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	info := documentInfo{
		DocumentOutput: toDocumentOutput(doc),
		Summary:        doc.Summary,
		FileName:       doc.File.Name,
		Comments:       make([]commentInfo, len(doc.Comments)),
	}
	for i, c := range doc.Comments {
		info.Comments[i] = commentInfo{Author: c.Author, Text: c.Text, Resolved: c.Resolved}
	}

	return jsonResult(req.Params.URI, info)
}

// handleNotificationsResource returns the inbox with the held filters.
func (s *Server) handleNotificationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, out, err := s.handleListNotifications(ctx, nil, ListNotificationsInput{})
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return jsonResult(req.Params.URI, out)
}

// handleDashboardResource returns the dashboard overview.
func (s *Server) handleDashboardResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.ports.Dashboard.Overview(ctx); err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}
	overview := s.ports.Dashboard.Snapshot().Overview
	if overview == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, overview)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// documentURI returns the resource URI of a document.
func documentURI(id string) string {
	return uriScheme + "documents/" + id
}

// extractDocumentID extracts the document ID from a URI like docdesk://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
