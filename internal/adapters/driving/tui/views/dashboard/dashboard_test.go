package dashboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/services/servicestest"
)

func loadedView(t *testing.T) (*View, *servicestest.Session) {
	t.Helper()
	sess := servicestest.SignedIn(t)
	view := NewView(nil, nil, sess.Dashboard)
	view.SetDimensions(120, 40)
	run(t, view, view.Init())
	return view, sess
}

func run(t *testing.T, view *View, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	view.Update(msg)
	return msg
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := run(t, view, view.Init())

	assert.Equal(t, messages.OverviewLoaded{Err: ErrNoDashboardService}, msg)
	out := view.View()
	assert.Contains(t, out, "No dashboard data.")
	assert.Contains(t, out, "Error:")

	_, cmd := view.Update(key("t"))
	assert.Nil(t, cmd)
	_, cmd = view.Update(key("d"))
	assert.Nil(t, cmd)
}

func TestView_Load(t *testing.T) {
	view, _ := loadedView(t)

	require.NoError(t, view.Err())
	out := view.View()
	assert.Contains(t, out, "Documents 3")
	assert.Contains(t, out, "Pending 1")
	assert.Contains(t, out, "Compliance 87.5%")
	assert.Contains(t, out, "1 documents awaiting approval")
	assert.Contains(t, out, "approval [high] Safety Manual")
	assert.Contains(t, out, "Analytics (30d)")
	assert.Contains(t, out, "3 documents: 1 approved, 0 rejected, 1 pending")
	assert.Contains(t, out, "engineering")
}

func TestView_Load_OverviewError(t *testing.T) {
	sess := servicestest.SignedIn(t)
	sess.Server.Fail("GET /api/v1/dashboard/overview", 500, 1)
	view := NewView(nil, nil, sess.Dashboard)

	run(t, view, view.Init())

	require.Error(t, view.Err())
	assert.Zero(t, sess.Server.Calls("GET /api/v1/dashboard/analytics"))
}

func TestView_RangeCycle(t *testing.T) {
	view, sess := loadedView(t)

	_, cmd := view.Update(key("t"))
	msg := run(t, view, cmd)

	assert.Equal(t, messages.AnalyticsLoaded{Metric: "overview"}, msg)
	assert.Equal(t, "90d", sess.Dashboard.Snapshot().DateRange)
	assert.Equal(t, "quarter", sess.Dashboard.Snapshot().Analytics["overview"].Period)
	assert.Contains(t, view.View(), "Analytics (90d)")
}

func TestNextRange(t *testing.T) {
	assert.Equal(t, "30d", nextRange("7d"))
	assert.Equal(t, "7d", nextRange("1y"))
	assert.Equal(t, "7d", nextRange("custom"))
}

func TestView_DismissAlert(t *testing.T) {
	view, _ := loadedView(t)

	view.Update(key("d"))
	assert.NotContains(t, view.View(), "awaiting approval")

	// Dismissed alerts stay hidden across reloads
	_, cmd := view.Update(key("r"))
	run(t, view, cmd)
	assert.NotContains(t, view.View(), "awaiting approval")
}

func TestView_OpenPendingAction(t *testing.T) {
	view, _ := loadedView(t)

	_, cmd := view.Update(key("enter"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentSelected{ID: "1"}, cmd())
}

func TestView_NavigationAndBack(t *testing.T) {
	view, _ := loadedView(t)

	view.Update(key("j"))
	assert.Equal(t, 0, view.SelectedIndex())
	view.Update(key("k"))
	assert.Equal(t, 0, view.SelectedIndex())

	_, cmd := view.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_NoPendingActions(t *testing.T) {
	view, sess := loadedView(t)
	require.NoError(t, sess.Documents.Approve(t.Context(), "1", ""))

	_, cmd := view.Update(key("r"))
	run(t, view, cmd)

	out := view.View()
	assert.Contains(t, out, "Nothing waiting on you.")
	assert.Equal(t, 0, sess.Dashboard.Snapshot().Overview.Stats.PendingApprovals)
	assert.NoError(t, sess.Dashboard.Snapshot().Concerns.Err(domain.ConcernDashboardOverview))
}
