package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// failer is implemented by every state container.
type failer interface {
	Fail(tk state.Ticket, err error) bool
}

// sessionGuard ends the session when any call fails authentication.
type sessionGuard struct {
	store  *state.Store
	tokens driven.TokenStore
}

// fail records err against tk and, for authentication failures, signs the
// user out and erases the stored token. It returns err.
func (g *sessionGuard) fail(ctx context.Context, c failer, tk state.Ticket, err error) error {
	c.Fail(tk, err)
	if domain.IsAuthentication(err) {
		g.expire(ctx, tk.Concern, err)
	}
	return err
}

// expire clears the session, every domain snapshot and the stored token.
// The error stays visible on the auth concern that failed, or on the
// profile concern when a non-auth call failed.
func (g *sessionGuard) expire(ctx context.Context, c domain.Concern, err error) {
	logger.Warn("Session ended: %v", err)
	if !strings.HasPrefix(c.String(), "auth.") {
		c = domain.ConcernAuthProfile
	}
	g.store.Auth.ClearWithError(c, err)
	g.store.Reset()
	if g.tokens == nil {
		return
	}
	if cerr := g.tokens.ClearToken(ctx); cerr != nil {
		logger.Warn("Failed to erase stored token: %v", cerr)
	}
}
