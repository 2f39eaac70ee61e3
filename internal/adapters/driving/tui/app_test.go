package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/services/servicestest"
)

func portsFor(sess *servicestest.Session) *Ports {
	return &Ports{
		Auth:          sess.Auth,
		Search:        sess.Search,
		Documents:     sess.Documents,
		Notifications: sess.Notifications,
		Dashboard:     sess.Dashboard,
		Settings:      sess.Settings,
	}
}

func newTestApp(t *testing.T) (*App, *servicestest.Session) {
	t.Helper()
	sess := servicestest.SignedIn(t)
	app, err := NewApp(portsFor(sess))
	require.NoError(t, err)
	app.WithContext(t.Context())
	app.SetDimensions(100, 40)
	return app, sess
}

// run executes cmd once and feeds every resulting message back into the app.
// Commands returned by those updates are not followed.
func run(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			run(app, c)
		}
		return
	}
	app.Update(msg)
}

// step sends msg and runs the command it returns.
func step(app *App, msg tea.Msg) {
	_, cmd := app.Update(msg)
	run(app, cmd)
}

func goTo(app *App, view messages.ViewType) {
	step(app, messages.ViewChanged{View: view})
}

func typeText(app *App, text string) {
	for _, r := range text {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func statusOf(sess *servicestest.Session, id int) string {
	for _, d := range sess.Server.Documents() {
		if d.ID == id {
			return d.Status
		}
	}
	return ""
}

func TestNewApp_Success(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(nil)
	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.Nil(t, app)

	sess := servicestest.New(t)
	ports := portsFor(sess)
	ports.Search = nil

	app, err = NewApp(ports)
	assert.ErrorIs(t, err, ErrMissingSearchService)
	assert.Nil(t, app)
}

func TestApp_Init_LoadsUnreadBadge(t *testing.T) {
	app, _ := newTestApp(t)

	run(app, app.Init())

	out := app.View()
	assert.Contains(t, out, "Notifications (2)")
	assert.Contains(t, out, "Alice Admin (admin)")
}

func TestApp_View_NotReady(t *testing.T) {
	sess := servicestest.New(t)
	app, err := NewApp(portsFor(sess))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	sess := servicestest.New(t)
	app, err := NewApp(portsFor(sess))
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_MenuNavigation(t *testing.T) {
	app, _ := newTestApp(t)

	// Dashboard, Search, Documents, Notifications
	for range 3 {
		app.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, load := app.Update(cmd())
	require.Equal(t, messages.ViewNotifications, app.CurrentView())
	run(app, load)

	assert.Contains(t, app.View(), "Notifications (2 unread)")
}

func TestApp_Search_SubmitAndOpen(t *testing.T) {
	app, _ := newTestApp(t)
	goTo(app, messages.ViewSearch)
	require.Equal(t, messages.ViewSearch, app.CurrentView())

	typeText(app, "safety")
	assert.Equal(t, "safety", app.Query())

	step(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NoError(t, app.Err())
	require.NotEmpty(t, app.Results())
	assert.Equal(t, 0, app.SelectedIndex())

	top := app.Results()[0].Document
	step(app, messages.DocumentSelected{ID: top.ID})
	assert.Equal(t, messages.ViewDocDetails, app.CurrentView())
	assert.Contains(t, app.View(), top.Title)

	step(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_Search_Suggestions(t *testing.T) {
	app, sess := newTestApp(t)
	goTo(app, messages.ViewSearch)

	typeText(app, "sa")
	step(app, messages.QueryChanged{Query: "sa"})

	snap := sess.Search.Snapshot()
	require.NotEmpty(t, snap.Suggestions)
	assert.Contains(t, app.View(), "Suggestions")
}

func TestApp_Documents_ApproveAndOpen(t *testing.T) {
	app, sess := newTestApp(t)
	goTo(app, messages.ViewDocuments)
	require.NoError(t, app.Err())
	assert.Contains(t, app.View(), "Safety Manual")

	step(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	require.NoError(t, app.Err())
	assert.Equal(t, string(domain.DocumentStatusApproved), statusOf(sess, 1))

	step(app, messages.DocumentSelected{ID: "1"})
	assert.Equal(t, messages.ViewDocDetails, app.CurrentView())
	step(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
}

func TestApp_Notifications_BadgeFollowsReads(t *testing.T) {
	app, _ := newTestApp(t)
	goTo(app, messages.ViewNotifications)

	step(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("A")})
	require.NoError(t, app.Err())

	goTo(app, messages.ViewMenu)
	out := app.View()
	assert.Contains(t, out, "Notifications")
	assert.NotContains(t, out, "Notifications (")
}

func TestApp_Notifications_OpenDocument(t *testing.T) {
	app, _ := newTestApp(t)
	goTo(app, messages.ViewNotifications)

	step(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})

	assert.Equal(t, messages.ViewDocDetails, app.CurrentView())
	assert.Contains(t, app.View(), "Safety Manual")
	step(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewNotifications, app.CurrentView())
}

func TestApp_Dashboard(t *testing.T) {
	app, sess := newTestApp(t)
	goTo(app, messages.ViewDashboard)

	require.NoError(t, app.Err())
	assert.Contains(t, app.View(), "Compliance 87.5%")

	step(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	assert.Equal(t, "90d", sess.Dashboard.Snapshot().DateRange)
}

func TestApp_Dashboard_Error(t *testing.T) {
	app, sess := newTestApp(t)
	sess.Server.Fail("GET /api/v1/dashboard/overview", 500, 1)

	goTo(app, messages.ViewDashboard)

	assert.Error(t, app.Err())
}

func TestApp_Settings(t *testing.T) {
	app, sess := newTestApp(t)
	goTo(app, messages.ViewSettings)

	assert.Contains(t, app.View(), sess.Server.BaseURL())

	step(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_HelpView(t *testing.T) {
	app, _ := newTestApp(t)
	goTo(app, messages.ViewHelp)

	assert.Contains(t, app.View(), "Help")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Update_CtrlC(t *testing.T) {
	app, _ := newTestApp(t)
	goTo(app, messages.ViewSearch)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_Quit(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)
	goTo(app, messages.ViewDocuments)
	boom := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: boom})

	assert.ErrorIs(t, app.Err(), boom)
	assert.Contains(t, app.View(), "boom")
}
