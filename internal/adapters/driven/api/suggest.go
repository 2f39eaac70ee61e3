package api

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// Suggest offers document titles matching a partial query.
func (c *Client) Suggest(ctx context.Context, q string, limit int) ([]domain.Suggestion, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}

	query, err := encodeQuery(domain.DocumentFilters{Search: q, Limit: limit})
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := c.get(ctx, "/documents", query, &raw, "Failed to fetch suggestions"); err != nil {
		return nil, err
	}
	list, err := c.decodeDocumentList(raw)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(list.Documents))
	out := make([]domain.Suggestion, 0, len(list.Documents))
	for _, d := range list.Documents {
		key := strings.ToLower(d.Title)
		if d.Title == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, domain.Suggestion{Text: d.Title, DocumentID: d.ID})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
