package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// AuthService manages the session.
type AuthService interface {
	// Login exchanges credentials for a token, persists it and fetches the
	// profile.
	Login(ctx context.Context, creds domain.Credentials) error

	// Logout ends the session and erases the stored token, even if the
	// server cannot be reached.
	Logout(ctx context.Context) error

	// Restore loads a stored token and verifies it with a profile fetch.
	// Returns false if no usable token was stored.
	Restore(ctx context.Context) (bool, error)

	// RefreshProfile re-fetches the signed-in user.
	RefreshProfile(ctx context.Context) error

	// UpdateProfile applies self-service profile changes.
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error

	// Snapshot returns the session state.
	Snapshot() state.AuthSnapshot
}
