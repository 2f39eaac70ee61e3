package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/services/servicestest"
)

func TestNotificationList(t *testing.T) {
	out, err := execute(t, servicestest.SignedIn(t), "notification", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Approval needed")
	assert.Contains(t, out, "Downtime at 22:00")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "2 unread of 3")
}

func TestNotificationList_UnreadOnly(t *testing.T) {
	out, err := execute(t, servicestest.SignedIn(t), "inbox", "list", "--unread")

	require.NoError(t, err)
	assert.Contains(t, out, "Approval needed")
	assert.NotContains(t, out, "Maintenance tonight")
}

func TestNotificationList_NotSignedIn(t *testing.T) {
	_, err := execute(t, servicestest.New(t), "notification", "list")

	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestNotificationRead(t *testing.T) {
	sess := servicestest.SignedIn(t)

	out, err := execute(t, sess, "notification", "read", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Notification 1 marked as read.")
	for _, n := range sess.Server.Notifications() {
		if n.ID == 1 {
			assert.True(t, n.IsRead)
		}
	}
}

func TestNotificationReadAll(t *testing.T) {
	sess := servicestest.SignedIn(t)

	out, err := execute(t, sess, "notification", "read-all")

	require.NoError(t, err)
	assert.Contains(t, out, "All notifications marked as read.")
	assert.Equal(t, 0, sess.Notifications.Snapshot().UnreadCount)
}

func TestNotificationDelete(t *testing.T) {
	sess := servicestest.SignedIn(t)

	out, err := execute(t, sess, "notification", "delete", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "Notification 3 deleted.")
	assert.Len(t, sess.Server.Notifications(), 2)
}

func TestNotificationSettings(t *testing.T) {
	out, err := execute(t, servicestest.SignedIn(t), "notification", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Frequency: immediate")
	assert.Contains(t, out, "Email  Push")
}

func TestNotificationSettings_UpdateFrequency(t *testing.T) {
	sess := servicestest.SignedIn(t)

	out, err := execute(t, sess, "notification", "settings", "--frequency", "daily")

	require.NoError(t, err)
	assert.Contains(t, out, "Frequency: daily")
}
