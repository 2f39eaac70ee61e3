package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
)

// Ensure TokenStore implements the interface.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore is an in-memory implementation of driven.TokenStore.
// The session does not outlive the process.
type TokenStore struct {
	mu    sync.RWMutex
	token *domain.Token
}

// NewTokenStore creates a new in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// LoadToken returns the stored token.
func (s *TokenStore) LoadToken(_ context.Context) (domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return domain.Token{}, domain.ErrNotFound
	}
	return *s.token, nil
}

// SaveToken replaces the stored token.
func (s *TokenStore) SaveToken(_ context.Context, token domain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = &token
	return nil
}

// ClearToken erases the stored token.
func (s *TokenStore) ClearToken(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	return nil
}
