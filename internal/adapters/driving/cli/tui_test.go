package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/services/servicestest"
)

func TestTUICmd_Exists(t *testing.T) {
	// Verify the tui command is registered
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescription(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "interactive terminal user interface")
	assert.Contains(t, tuiCmd.Long, "Controls:")
}

func TestTUIPorts(t *testing.T) {
	sess := servicestest.New(t)
	SetServices(servicesFor(sess))
	t.Cleanup(func() { SetServices(Services{}) })

	ports := tuiPorts()

	require.NoError(t, ports.Validate())
	assert.Equal(t, sess.Search, ports.Search)
	assert.Equal(t, sess.Documents, ports.Documents)
	assert.Equal(t, sess.Notifications, ports.Notifications)
	assert.Equal(t, sess.Dashboard, ports.Dashboard)
	assert.Equal(t, sess.Settings, ports.Settings)
}

func TestTUIPorts_Unwired(t *testing.T) {
	SetServices(Services{})

	assert.Error(t, tuiPorts().Validate())
}

func TestTUICmd_NotSignedIn(t *testing.T) {
	_, err := execute(t, servicestest.New(t), "tui")

	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestTUICmd_HelpOutput(t *testing.T) {
	out, err := execute(t, servicestest.New(t), "tui", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "interactive terminal user interface")
	assert.Contains(t, out, "Controls:")
}
