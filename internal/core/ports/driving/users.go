package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// UserService manages users. Admin only on the server side.
type UserService interface {
	List(ctx context.Context, filters domain.UserFilters) error
	Get(ctx context.Context, id string) error
	Create(ctx context.Context, user domain.NewUser) (*domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) error
	Deactivate(ctx context.Context, id string) error

	// Snapshot returns the users state.
	Snapshot() state.UsersSnapshot
}
