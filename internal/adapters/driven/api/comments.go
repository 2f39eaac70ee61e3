package api

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// commentPageLimit is the largest page the server serves.
const commentPageLimit = 100

// ListComments returns the comments of a document, oldest first.
func (c *Client) ListComments(ctx context.Context, documentID string) ([]domain.Comment, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(commentPageLimit))

	var resp commentListResponse
	path := "/documents/" + escape(documentID) + "/comments"
	if err := c.get(ctx, path, q, &resp, "Failed to fetch comments"); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(resp.Comments))
	for i := range resp.Comments {
		cm := resp.Comments[i].toDomain()
		if cm.DocumentID == "" {
			cm.DocumentID = documentID
		}
		comments = append(comments, cm)
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Timestamp.Before(comments[j].Timestamp)
	})
	return comments, nil
}

// AddComment posts a comment on a document.
func (c *Client) AddComment(ctx context.Context, documentID, text string) (*domain.Comment, error) {
	var resp commentDTO
	path := "/documents/" + escape(documentID) + "/comments"
	if err := c.send(ctx, http.MethodPost, path, commentBody{Content: text}, &resp, "Failed to add comment"); err != nil {
		return nil, err
	}
	cm := resp.toDomain()
	if cm.DocumentID == "" {
		cm.DocumentID = documentID
	}
	return &cm, nil
}

// UpdateComment changes the text and/or resolved flag of a comment.
func (c *Client) UpdateComment(ctx context.Context, id, text string, resolved *bool) (*domain.Comment, error) {
	var resp commentDTO
	body := commentBody{Content: text, IsResolved: resolved}
	if err := c.send(ctx, http.MethodPut, "/comments/"+escape(id), body, &resp, "Failed to update comment"); err != nil {
		return nil, err
	}
	cm := resp.toDomain()
	return &cm, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/comments/"+escape(id), nil, nil, "Failed to delete comment")
}
