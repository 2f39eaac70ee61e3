package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func readyView() *View {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	return v
}

func press(v *View, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := v.Update(msg)
	return cmd
}

func TestNewView(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v.styles)
	assert.Len(t, v.items, 7)
	assert.Nil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())

	keys := make(map[string]bool)
	for _, it := range v.items {
		assert.False(t, keys[it.Key], "duplicate key %q", it.Key)
		keys[it.Key] = true
	}
}

func TestView_WindowSizeMakesReady(t *testing.T) {
	v := NewView(nil)

	_, cmd := v.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Nil(t, cmd)
	assert.True(t, v.ready)
	assert.Equal(t, 100, v.width)
	assert.Contains(t, v.View(), "DocDesk")
}

func TestView_CursorClamps(t *testing.T) {
	v := readyView()

	press(v, "up")
	assert.Equal(t, 0, v.Selected())

	for range 10 {
		press(v, "j")
	}
	assert.Equal(t, len(v.items)-1, v.Selected())

	press(v, "k")
	press(v, "down")
	assert.Equal(t, len(v.items)-1, v.Selected())
}

func TestView_EnterChangesView(t *testing.T) {
	v := readyView()
	press(v, "down")
	press(v, "down")

	cmd := press(v, "enter")

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDocuments}, cmd())
}

func TestView_Hotkeys(t *testing.T) {
	tests := []struct {
		key  string
		want messages.ViewType
	}{
		{"d", messages.ViewDashboard},
		{"/", messages.ViewSearch},
		{"o", messages.ViewDocuments},
		{"n", messages.ViewNotifications},
		{"s", messages.ViewSettings},
		{"?", messages.ViewHelp},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := readyView()

			cmd := press(v, tt.key)

			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
			assert.Equal(t, tt.want, v.items[v.Selected()].View)
		})
	}
}

func TestView_Quit(t *testing.T) {
	v := readyView()

	cmd := press(v, "q")

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_UnknownKeyIgnored(t *testing.T) {
	v := readyView()

	assert.Nil(t, press(v, "z"))
	assert.Equal(t, 0, v.Selected())
}

func TestView_SignedOutSubtitle(t *testing.T) {
	v := readyView()

	assert.Contains(t, v.View(), "not signed in")
}

func TestView_UserAndUnreadBadge(t *testing.T) {
	v := readyView()
	v.SetUser(&domain.User{Username: "bob", Role: domain.RoleFinance})
	v.SetUnread(2)

	out := v.View()

	assert.Contains(t, out, "bob (finance)")
	assert.Contains(t, out, "Notifications (2)")

	v.SetUnread(0)
	assert.NotContains(t, v.View(), "Notifications (")
}

func TestView_PendingApprovalsOnlyForApprovers(t *testing.T) {
	v := readyView()
	v.SetUser(&domain.User{FullName: "Bob Finance", Role: domain.RoleFinance})
	v.SetPendingApprovals(4)
	assert.NotContains(t, v.View(), "Dashboard (4)")

	v.SetUser(&domain.User{FullName: "Alice Admin", Role: domain.RoleAdmin})
	v.SetPendingApprovals(4)
	assert.Contains(t, v.View(), "Dashboard (4)")
	assert.Contains(t, v.View(), "Alice Admin (admin)")

	v.SetUser(nil)
	assert.NotContains(t, v.View(), "Dashboard (4)")
}
