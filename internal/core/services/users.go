package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService manages users.
type UserService struct {
	sessionGuard
	gateway driven.UserGateway
}

// NewUserService creates a new user service.
func NewUserService(store *state.Store, gateway driven.UserGateway, tokens driven.TokenStore) *UserService {
	return &UserService{
		sessionGuard: sessionGuard{store: store, tokens: tokens},
		gateway:      gateway,
	}
}

// List fetches users.
func (s *UserService) List(ctx context.Context, filters domain.UserFilters) error {
	u := s.store.Users
	tk := u.Begin(domain.ConcernUsersList)

	users, err := s.gateway.ListUsers(ctx, filters)
	if err != nil {
		return s.fail(ctx, u, tk, err)
	}
	u.CompleteList(tk, users)
	return nil
}

// Get selects a user.
func (s *UserService) Get(ctx context.Context, id string) error {
	u := s.store.Users
	tk := u.Begin(domain.ConcernUsersDetail)

	user, err := s.gateway.GetUser(ctx, id)
	if err != nil {
		return s.fail(ctx, u, tk, err)
	}
	u.CompleteDetail(tk, user)
	return nil
}

// Create adds a user.
func (s *UserService) Create(ctx context.Context, user domain.NewUser) (*domain.User, error) {
	u := s.store.Users
	tk := u.Begin(domain.ConcernUsersAction)

	if err := user.Validate(); err != nil {
		err = fmt.Errorf("username, email, password and a valid role are required: %w", err)
		u.Fail(tk, err)
		return nil, err
	}

	created, err := s.gateway.CreateUser(ctx, user)
	if err != nil {
		return nil, s.fail(ctx, u, tk, err)
	}
	u.CompleteSaved(tk, created)
	return created, nil
}

// Update changes a user.
func (s *UserService) Update(ctx context.Context, id string, update domain.UserUpdate) error {
	u := s.store.Users
	tk := u.Begin(domain.ConcernUsersAction)

	user, err := s.gateway.UpdateUser(ctx, id, update)
	if err != nil {
		return s.fail(ctx, u, tk, err)
	}
	u.CompleteSaved(tk, user)
	return nil
}

// Deactivate disables a user's account.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	u := s.store.Users
	tk := u.Begin(domain.ConcernUsersAction)

	if err := s.gateway.DeactivateUser(ctx, id); err != nil {
		return s.fail(ctx, u, tk, err)
	}
	u.CompleteDeactivated(tk, id)
	return nil
}

// Snapshot returns the users state.
func (s *UserService) Snapshot() state.UsersSnapshot {
	return s.store.Users.Snapshot()
}
