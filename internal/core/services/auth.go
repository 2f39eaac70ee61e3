package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService manages the session.
type AuthService struct {
	sessionGuard
	gateway driven.AuthGateway
}

// NewAuthService creates a new auth service.
func NewAuthService(store *state.Store, gateway driven.AuthGateway, tokens driven.TokenStore) *AuthService {
	return &AuthService{
		sessionGuard: sessionGuard{store: store, tokens: tokens},
		gateway:      gateway,
	}
}

// Login exchanges credentials for a token, persists it and fetches the
// profile.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) error {
	auth := s.store.Auth
	tk := auth.Begin(domain.ConcernAuthLogin)

	if err := creds.Validate(); err != nil {
		err = fmt.Errorf("username and password are required: %w", err)
		auth.Fail(tk, err)
		return err
	}

	logger.Debug("Logging in as %s", creds.Username)
	res, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return s.fail(ctx, auth, tk, err)
	}
	if !auth.CompleteLogin(tk, res) {
		return nil
	}

	if err := s.tokens.SaveToken(ctx, res.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	return s.RefreshProfile(ctx)
}

// Logout ends the session and erases the stored token, even if the server
// cannot be reached.
func (s *AuthService) Logout(ctx context.Context) error {
	auth := s.store.Auth
	auth.Begin(domain.ConcernAuthLogout)

	if !auth.Token().IsEmpty() {
		if err := s.gateway.Logout(ctx); err != nil {
			logger.Warn("Server logout failed: %v", err)
		}
	}

	auth.Clear()
	s.store.Reset()
	if err := s.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("erase token: %w", err)
	}
	return nil
}

// Restore loads a stored token and verifies it with a profile fetch.
func (s *AuthService) Restore(ctx context.Context) (bool, error) {
	token, err := s.tokens.LoadToken(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load token: %w", err)
	}
	if token.IsEmpty() {
		return false, nil
	}
	if token.IsExpired() {
		logger.Debug("Stored token expired at %s", token.Expiry)
		if err := s.tokens.ClearToken(ctx); err != nil {
			return false, fmt.Errorf("erase token: %w", err)
		}
		return false, nil
	}

	s.store.Auth.RestoreToken(token)
	if err := s.RefreshProfile(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// RefreshProfile re-fetches the signed-in user.
func (s *AuthService) RefreshProfile(ctx context.Context) error {
	auth := s.store.Auth
	tk := auth.Begin(domain.ConcernAuthProfile)

	if auth.Token().IsEmpty() {
		return s.fail(ctx, profileFailer{auth}, tk, domain.ErrNotAuthenticated)
	}

	user, err := s.gateway.CurrentUser(ctx)
	if err != nil {
		return s.fail(ctx, profileFailer{auth}, tk, err)
	}
	auth.CompleteProfile(tk, user)
	return nil
}

// profileFailer routes profile failures to FailProfile.
type profileFailer struct{ auth *state.Auth }

func (f profileFailer) Fail(tk state.Ticket, err error) bool {
	return f.auth.FailProfile(tk, err)
}

// UpdateProfile applies self-service profile changes.
func (s *AuthService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error {
	auth := s.store.Auth
	tk := auth.Begin(domain.ConcernAuthUpdate)

	user, err := s.gateway.UpdateProfile(ctx, update)
	if err != nil {
		return s.fail(ctx, auth, tk, err)
	}
	auth.CompleteProfileUpdate(tk, user)
	return nil
}

// Snapshot returns the session state.
func (s *AuthService) Snapshot() state.AuthSnapshot {
	return s.store.Auth.Snapshot()
}
