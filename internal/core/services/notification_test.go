package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

func newNotificationFixture() (*NotificationService, *mockGateway) {
	store := state.NewStore()
	store.Auth.RestoreToken(domain.Token{AccessToken: "tok"})
	gw := newMockGateway()
	gw.notifications = []domain.Notification{
		{ID: "1", Title: "Approval needed"},
		{ID: "2", Title: "Deadline", IsRead: true},
		{ID: "3", Title: "New comment"},
		{ID: "4", Title: "System update"},
	}
	return NewNotificationService(store, gw, memory.NewTokenStore()), gw
}

func TestNotificationService_UnreadAccounting(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNotificationFixture()

	require.NoError(t, svc.List(ctx))
	assert.Equal(t, 3, svc.Snapshot().UnreadCount)

	require.NoError(t, svc.MarkAsRead(ctx, "1"))
	assert.Equal(t, 2, svc.Snapshot().UnreadCount)

	// Already read.
	require.NoError(t, svc.MarkAsRead(ctx, "1"))
	assert.Equal(t, 2, svc.Snapshot().UnreadCount)

	require.NoError(t, svc.Delete(ctx, "3"))
	snap := svc.Snapshot()
	assert.Equal(t, 1, snap.UnreadCount)
	assert.Len(t, snap.Notifications, 3)

	require.NoError(t, svc.MarkAllAsRead(ctx))
	assert.Zero(t, svc.Snapshot().UnreadCount)
}

func TestNotificationService_MarkAsRead_FailureChangesNothing(t *testing.T) {
	ctx := context.Background()
	svc, gw := newNotificationFixture()
	require.NoError(t, svc.List(ctx))
	gw.failWith("MarkAsRead", &domain.RemoteError{Kind: domain.ErrorKindNetwork, Message: "Network error"})

	err := svc.MarkAsRead(ctx, "1")

	assert.ErrorIs(t, err, domain.ErrNetwork)
	snap := svc.Snapshot()
	assert.Equal(t, 3, snap.UnreadCount)
	assert.Equal(t, domain.StatusFailed, snap.Concerns.Status(domain.ConcernNotificationsRead))
}

func TestNotificationService_Settings(t *testing.T) {
	ctx := context.Background()
	svc, gw := newNotificationFixture()
	defaults := domain.DefaultNotificationSettings()
	gw.settings = &defaults

	require.NoError(t, svc.Settings(ctx))
	assert.Equal(t, defaults, svc.Snapshot().Settings)

	updated := defaults
	updated.Frequency = "weekly"
	require.NoError(t, svc.UpdateSettings(ctx, updated))
	assert.Equal(t, "weekly", svc.Snapshot().Settings.Frequency)
}
