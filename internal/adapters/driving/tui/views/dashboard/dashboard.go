// Package dashboard provides the overview and analytics view for the TUI.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// ErrNoDashboardService indicates that no dashboard service was provided.
var ErrNoDashboardService = errors.New("dashboard service not available")

// metric is the analytics metric the view shows.
const metric = "overview"

// dateRanges is the order the range key steps through.
var dateRanges = []string{"7d", "30d", "90d", "1y"}

// View is the dashboard view.
type View struct {
	styles           *styles.Styles
	keymap           *keymap.KeyMap
	dashboardService driving.DashboardService
	ctx              context.Context

	selected int
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new dashboard view.
func NewView(s *styles.Styles, km *keymap.KeyMap, dashboardService driving.DashboardService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:           s,
		keymap:           km,
		dashboardService: dashboardService,
		ctx:              context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads the overview.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that fetches the overview and the analytics for
// the selected range.
func (v *View) Load() tea.Cmd {
	ctx := v.ctx
	svc := v.dashboardService
	return func() tea.Msg {
		if svc == nil {
			return messages.OverviewLoaded{Err: ErrNoDashboardService}
		}
		if err := svc.Overview(ctx); err != nil {
			return messages.OverviewLoaded{Err: err}
		}
		return messages.OverviewLoaded{Err: svc.Analytics(ctx, metric)}
	}
}

func (v *View) loadAnalytics() tea.Cmd {
	ctx := v.ctx
	svc := v.dashboardService
	return func() tea.Msg {
		return messages.AnalyticsLoaded{Metric: metric, Err: svc.Analytics(ctx, metric)}
	}
}

// Update handles messages for the dashboard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.OverviewLoaded:
		v.err = msg.Err
		if n := len(v.pendingActions()); v.selected >= n {
			v.selected = max(n-1, 0)
		}
		return v, nil

	case messages.AnalyticsLoaded:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	actions := v.pendingActions()

	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(actions)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Open):
		if v.selected < len(actions) && actions[v.selected].DocumentID != "" {
			id := actions[v.selected].DocumentID
			return v, func() tea.Msg {
				return messages.DocumentSelected{ID: id}
			}
		}
	case keymap.Matches(k, v.keymap.Range):
		if v.dashboardService != nil {
			v.dashboardService.SetDateRange(nextRange(v.dashboardService.Snapshot().DateRange))
			return v, v.loadAnalytics()
		}
	case keymap.Matches(k, v.keymap.Delete):
		if alerts := v.alerts(); len(alerts) > 0 {
			v.dashboardService.DismissAlert(alerts[0].ID)
		}
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.Load()
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

func nextRange(current string) string {
	for i, r := range dateRanges {
		if r == current {
			return dateRanges[(i+1)%len(dateRanges)]
		}
	}
	return dateRanges[0]
}

// View renders the dashboard view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Dashboard"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	snap := v.snapshot()
	if snap.Overview == nil {
		if snap.Concerns.Loading(domain.ConcernDashboardOverview) {
			b.WriteString(v.styles.Muted.Render("Loading dashboard..."))
		} else {
			b.WriteString(v.styles.Muted.Render("No dashboard data."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	st := snap.Overview.Stats
	b.WriteString(fmt.Sprintf("Documents %d   Pending %d   Recent uploads %d   Compliance %.1f%%   Unread %d\n\n",
		st.TotalDocuments, st.PendingApprovals, st.RecentUploads, st.ComplianceRate, st.UnreadNotifications))

	for _, a := range snap.Overview.Alerts {
		b.WriteString(v.styles.ForStatus(a.Severity).Render(fmt.Sprintf("! %s", a.Message)))
		b.WriteString("\n")
	}
	if len(snap.Overview.Alerts) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Subtitle.Render("Pending actions"))
	b.WriteString("\n")
	if len(snap.Overview.PendingActions) == 0 {
		b.WriteString(v.styles.Muted.Render("  Nothing waiting on you."))
		b.WriteString("\n")
	}
	for i, a := range snap.Overview.PendingActions {
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("> %s [%s] %s", a.Type, a.Priority, a.Title)))
		} else {
			b.WriteString(v.styles.Normal.Render("  "+a.Type+" ") +
				v.styles.ForPriority(a.Priority).Render("["+string(a.Priority)+"]") +
				v.styles.Normal.Render(" "+a.Title))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderAnalytics(snap))
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderAnalytics renders approval metrics and department stats.
func (v *View) renderAnalytics(snap state.DashboardSnapshot) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Analytics (%s)", snap.DateRange)))
	b.WriteString("\n")

	a, ok := snap.Analytics[metric]
	if !ok {
		b.WriteString(v.styles.Muted.Render("  No analytics loaded."))
		return b.String()
	}

	m := a.Approvals
	b.WriteString(fmt.Sprintf("  %d documents: %d approved, %d rejected, %d pending (approval %.1f%%)\n",
		m.Total, m.Approved, m.Rejected, m.Pending, m.ApprovalRate))

	names := make([]string, 0, len(a.Departments))
	for name := range a.Departments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := a.Departments[name]
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %-12s total %d  approved %d  pending %d", name, d.Total, d.Approved, d.Pending)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] open  [t] date range  [d] dismiss alert  [r] reload  [esc] back")
}

func (v *View) snapshot() state.DashboardSnapshot {
	if v.dashboardService == nil {
		return state.DashboardSnapshot{DateRange: domain.DefaultDateRange}
	}
	return v.dashboardService.Snapshot()
}

func (v *View) pendingActions() []domain.PendingAction {
	if o := v.snapshot().Overview; o != nil {
		return o.PendingActions
	}
	return nil
}

func (v *View) alerts() []domain.Alert {
	if o := v.snapshot().Overview; o != nil {
		return o.Alerts
	}
	return nil
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SelectedIndex returns the selected pending action.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
