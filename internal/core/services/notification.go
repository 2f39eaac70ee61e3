package services

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// Ensure NotificationService implements the interface.
var _ driving.NotificationService = (*NotificationService)(nil)

// NotificationService manages the notification surface.
type NotificationService struct {
	sessionGuard
	gateway driven.NotificationGateway
}

// NewNotificationService creates a new notification service.
func NewNotificationService(
	store *state.Store,
	gateway driven.NotificationGateway,
	tokens driven.TokenStore,
) *NotificationService {
	return &NotificationService{
		sessionGuard: sessionGuard{store: store, tokens: tokens},
		gateway:      gateway,
	}
}

// List fetches notifications with the held filters.
func (s *NotificationService) List(ctx context.Context) error {
	n := s.store.Notifications
	tk := n.Begin(domain.ConcernNotificationsList)

	list, err := s.gateway.ListNotifications(ctx, n.Filters())
	if err != nil {
		return s.fail(ctx, n, tk, err)
	}
	n.CompleteList(tk, list)
	return nil
}

// SetFilters replaces the held filters.
func (s *NotificationService) SetFilters(filters domain.NotificationFilters) {
	s.store.Notifications.SetFilters(filters)
}

// MarkAsRead marks one notification read once the server confirms.
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) error {
	n := s.store.Notifications
	tk := n.Begin(domain.ConcernNotificationsRead)

	if err := s.gateway.MarkAsRead(ctx, id); err != nil {
		return s.fail(ctx, n, tk, err)
	}
	n.CompleteMarkAsRead(tk, id)
	return nil
}

// MarkAllAsRead marks every notification read once the server confirms.
func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	n := s.store.Notifications
	tk := n.Begin(domain.ConcernNotificationsRead)

	if err := s.gateway.MarkAllAsRead(ctx); err != nil {
		return s.fail(ctx, n, tk, err)
	}
	n.CompleteMarkAllAsRead(tk)
	return nil
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	n := s.store.Notifications
	tk := n.Begin(domain.ConcernNotificationsDelete)

	if err := s.gateway.DeleteNotification(ctx, id); err != nil {
		return s.fail(ctx, n, tk, err)
	}
	n.CompleteDelete(tk, id)
	return nil
}

// Settings loads the delivery preferences.
func (s *NotificationService) Settings(ctx context.Context) error {
	n := s.store.Notifications
	tk := n.Begin(domain.ConcernNotificationsSettings)

	settings, err := s.gateway.NotificationSettings(ctx)
	if err != nil {
		return s.fail(ctx, n, tk, err)
	}
	n.CompleteSettings(tk, settings)
	return nil
}

// UpdateSettings saves the delivery preferences.
func (s *NotificationService) UpdateSettings(ctx context.Context, settings domain.NotificationSettings) error {
	n := s.store.Notifications
	tk := n.Begin(domain.ConcernNotificationsSettings)

	saved, err := s.gateway.UpdateNotificationSettings(ctx, settings)
	if err != nil {
		return s.fail(ctx, n, tk, err)
	}
	n.CompleteSettings(tk, saved)
	return nil
}

// Snapshot returns the notifications state.
func (s *NotificationService) Snapshot() state.NotificationsSnapshot {
	return s.store.Notifications.Snapshot()
}
