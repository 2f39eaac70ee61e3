// Package notifications provides the notification inbox view for the TUI.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// ErrNoNotificationService indicates that no notification service was provided.
var ErrNoNotificationService = errors.New("notification service not available")

// View is the notification inbox.
type View struct {
	styles              *styles.Styles
	keymap              *keymap.KeyMap
	notificationService driving.NotificationService
	ctx                 context.Context

	selected int
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new notifications view.
func NewView(s *styles.Styles, km *keymap.KeyMap, notificationService driving.NotificationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:              s,
		keymap:              km,
		notificationService: notificationService,
		ctx:                 context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads notifications.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that fetches notifications with the held filters.
func (v *View) Load() tea.Cmd {
	ctx := v.ctx
	svc := v.notificationService
	return func() tea.Msg {
		if svc == nil {
			return messages.NotificationsLoaded{Err: ErrNoNotificationService}
		}
		return messages.NotificationsLoaded{Err: svc.List(ctx)}
	}
}

// Update handles messages for the notifications view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.NotificationsLoaded:
		v.err = msg.Err
		v.clampSelection()
		return v, nil

	case messages.NotificationChanged:
		v.err = msg.Err
		v.clampSelection()
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	items := v.Notifications()

	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(items)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.MarkRead):
		if n := v.SelectedNotification(); n != nil && !n.IsRead {
			return v, v.change(n.ID, v.notificationService.MarkAsRead)
		}
	case keymap.Matches(k, v.keymap.MarkAllRead):
		if v.UnreadCount() > 0 {
			return v, v.change("", func(ctx context.Context, _ string) error {
				return v.notificationService.MarkAllAsRead(ctx)
			})
		}
	case keymap.Matches(k, v.keymap.Delete):
		if n := v.SelectedNotification(); n != nil {
			return v, v.change(n.ID, v.notificationService.Delete)
		}
	case keymap.Matches(k, v.keymap.UnreadOnly):
		if v.notificationService != nil {
			f := v.notificationService.Snapshot().Filters
			f.UnreadOnly = !f.UnreadOnly
			v.notificationService.SetFilters(f)
			v.selected = 0
			return v, v.Load()
		}
	case k == "o":
		if n := v.SelectedNotification(); n != nil && n.DocumentID != "" {
			id := n.DocumentID
			return v, func() tea.Msg {
				return messages.DocumentSelected{ID: id}
			}
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

// change runs a mutation against one notification.
func (v *View) change(id string, call func(context.Context, string) error) tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		return messages.NotificationChanged{ID: id, Err: call(ctx, id)}
	}
}

func (v *View) clampSelection() {
	if n := len(v.Notifications()); v.selected >= n {
		v.selected = max(n-1, 0)
	}
}

// View renders the notifications view.
func (v *View) View() string {
	var b strings.Builder

	title := "Notifications"
	if unread := v.UnreadCount(); unread > 0 {
		title = fmt.Sprintf("Notifications (%d unread)", unread)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.UnreadOnly() {
		b.WriteString(v.styles.Muted.Render("showing unread only"))
	}
	b.WriteString("\n\n")

	if v.loading() {
		b.WriteString(v.styles.Muted.Render("Loading notifications..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	items := v.Notifications()
	if len(items) == 0 {
		b.WriteString(v.styles.Muted.Render("No notifications."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	for i := range items {
		b.WriteString(v.renderNotification(i, &items[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderNotification renders a single notification with its message.
func (v *View) renderNotification(index int, n *domain.Notification) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	dot := "  "
	if !n.IsRead {
		dot = v.styles.Unread.Render("● ")
	}

	title := n.Title
	maxLen := max(v.width-30, 10)
	if len(title) > maxLen {
		title = title[:maxLen-3] + "..."
	}

	var head string
	if index == v.selected {
		head = v.styles.Selected.Render(indicator + title)
	} else {
		head = v.styles.Normal.Render(indicator + title)
	}
	head = dot + head + "  " + v.styles.ForPriority(n.Priority).Render("["+string(n.Priority)+"]") +
		" " + v.styles.Muted.Render(n.Timestamp.Format("Jan 02 15:04"))

	return head + "\n" + v.styles.Muted.Render("      "+n.Message)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render(strings.Join(keymap.Hints(v.keymap.InboxHelp()), "  ") + "  o: open document")
}

func (v *View) loading() bool {
	if v.notificationService == nil {
		return false
	}
	return v.notificationService.Snapshot().Concerns.Loading(domain.ConcernNotificationsList)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Notifications returns the loaded notifications.
func (v *View) Notifications() []domain.Notification {
	if v.notificationService == nil {
		return nil
	}
	return v.notificationService.Snapshot().Notifications
}

// UnreadCount returns the unread count held by the service.
func (v *View) UnreadCount() int {
	if v.notificationService == nil {
		return 0
	}
	return v.notificationService.Snapshot().UnreadCount
}

// UnreadOnly reports whether read notifications are filtered out.
func (v *View) UnreadOnly() bool {
	if v.notificationService == nil {
		return false
	}
	return v.notificationService.Snapshot().Filters.UnreadOnly
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedNotification returns the selected notification, nil if none.
func (v *View) SelectedNotification() *domain.Notification {
	items := v.Notifications()
	if v.selected < len(items) {
		return &items[v.selected]
	}
	return nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
