package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// NotificationService manages the notification surface.
type NotificationService interface {
	// List fetches notifications with the held filters.
	List(ctx context.Context) error

	// SetFilters replaces the held filters.
	SetFilters(filters domain.NotificationFilters)

	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error

	// Settings loads the delivery preferences.
	Settings(ctx context.Context) error

	UpdateSettings(ctx context.Context, settings domain.NotificationSettings) error

	// Snapshot returns the notifications state.
	Snapshot() state.NotificationsSnapshot
}
