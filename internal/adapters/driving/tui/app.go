package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/docdetails"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/notifications"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView          *menu.View
	searchView        *search.View
	documentsView     *documents.View
	docDetailsView    *docdetails.View
	notificationsView *notifications.View
	dashboardView     *dashboard.View
	settingsView      *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:             ports,
		ctx:               context.Background(),
		styles:            s,
		keymap:            km,
		menuView:          menu.NewView(s),
		searchView:        search.NewView(s, km, ports.Search, ports.Documents),
		documentsView:     documents.NewView(s, km, ports.Documents),
		docDetailsView:    docdetails.NewView(s, km, ports.Documents),
		notificationsView: notifications.NewView(s, km, ports.Notifications),
		dashboardView:     dashboard.NewView(s, km, ports.Dashboard),
		settingsView:      settings.NewView(s, km, ports.Settings),
		currentView:       messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and every view.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.documentsView.WithContext(ctx)
	a.docDetailsView.WithContext(ctx)
	a.notificationsView.WithContext(ctx)
	a.dashboardView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It enters the alt screen and fetches notifications for the menu badge.
func (a *App) Init() tea.Cmd {
	a.syncMenu()
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("docdesk - Document Management"),
		a.notificationsView.Load(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.DocumentSelected:
		a.docDetailsView.SetReturn(a.currentView)
		a.currentView = messages.ViewDocDetails
		return a, a.docDetailsView.Open(msg.ID)

	case messages.DocumentLoaded:
		a.docDetailsView, cmd = a.docDetailsView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.DocumentsLoaded:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.QueryChanged, messages.SuggestionsLoaded:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.DocumentActionDone:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.NotificationsLoaded, messages.NotificationChanged:
		a.notificationsView, cmd = a.notificationsView.Update(msg)
		a.err = a.notificationsView.Err()
		a.syncMenu()
		return a, cmd

	case messages.OverviewLoaded, messages.AnalyticsLoaded:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		a.err = a.dashboardView.Err()
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward hands msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocDetails:
		a.docDetailsView, cmd = a.docDetailsView.Update(msg)
	case messages.ViewNotifications:
		a.notificationsView, cmd = a.notificationsView.Update(msg)
	case messages.ViewDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return cmd
}

// switchTo activates view and returns the command that loads its data.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewSearch:
		a.searchView.Reset()
		return a.searchView.Init()
	case messages.ViewDocuments:
		return a.documentsView.Load(domain.DocumentFilters{})
	case messages.ViewNotifications:
		return a.notificationsView.Load()
	case messages.ViewDashboard:
		return a.dashboardView.Load()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu:
		a.syncMenu()
	case messages.ViewHelp, messages.ViewDocDetails:
		// Nothing to load
	}
	return nil
}

// syncMenu copies the signed-in user and the badge counts onto the menu.
func (a *App) syncMenu() {
	if a.ports.Auth != nil {
		a.menuView.SetUser(a.ports.Auth.Snapshot().Session.User)
	}
	if a.ports.Notifications != nil {
		a.menuView.SetUnread(a.ports.Notifications.Snapshot().UnreadCount)
	}
	if a.ports.Dashboard != nil {
		if ov := a.ports.Dashboard.Snapshot().Overview; ov != nil {
			a.menuView.SetPendingApprovals(ov.Stats.PendingApprovals)
		}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewDocDetails:
		return a.docDetailsView.View()
	case messages.ViewNotifications:
		return a.notificationsView.View()
	case messages.ViewDashboard:
		return a.dashboardView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Search:
  (type)      Suggestions after a short pause
  tab         Accept top suggestion
  enter       Submit search
  n, /        New search from results

Documents:
  ←/→         Previous / next page
  s           Cycle status filter
  a, x, b     Approve, reject, bookmark
  enter       Actions

Document:
  a, x, b     Approve, reject, bookmark
  c           Comment

Notifications:
  m, enter    Mark read
  A           Mark all read
  u           Unread only
  d           Delete
  o           Open document

Dashboard:
  t           Cycle date range
  d           Dismiss alert
  enter       Open pending action

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.docDetailsView.SetDimensions(width, height)
	a.notificationsView.SetDimensions(width, height)
	a.dashboardView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
