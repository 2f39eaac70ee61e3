package driven

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// TokenStore persists the session token across runs.
type TokenStore interface {
	// LoadToken returns the stored token.
	// Returns domain.ErrNotFound if no token is stored.
	LoadToken(ctx context.Context) (domain.Token, error)

	// SaveToken replaces the stored token.
	SaveToken(ctx context.Context, token domain.Token) error

	// ClearToken erases the stored token. Clearing an empty store is not an error.
	ClearToken(ctx context.Context) error
}
