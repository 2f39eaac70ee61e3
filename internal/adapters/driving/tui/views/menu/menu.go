// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// Item is one menu entry. Key jumps straight to it.
type Item struct {
	Label string
	Key   string
	View  messages.ViewType
	Quit  bool
}

// View is the landing menu. It shows who is signed in and a count badge
// next to entries that have something waiting.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	badges   map[messages.ViewType]int
	user     *domain.User
	width    int
	height   int
	ready    bool
}

// NewView returns the menu. A nil s uses the default styles.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		items: []Item{
			{Label: "Dashboard", Key: "d", View: messages.ViewDashboard},
			{Label: "Search", Key: "/", View: messages.ViewSearch},
			{Label: "Documents", Key: "o", View: messages.ViewDocuments},
			{Label: "Notifications", Key: "n", View: messages.ViewNotifications},
			{Label: "Settings", Key: "s", View: messages.ViewSettings},
			{Label: "Help", Key: "?", View: messages.ViewHelp},
			{Label: "Quit", Key: "q", Quit: true},
		},
		badges: make(map[messages.ViewType]int),
		width:  80,
		height: 24,
	}
}

// Init implements the view contract; the menu loads nothing.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor or activates an entry.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "up", "k":
			v.selected = max(v.selected-1, 0)
		case "down", "j":
			v.selected = min(v.selected+1, len(v.items)-1)
		case "enter":
			return v, v.activate(v.selected)
		default:
			for i, it := range v.items {
				if it.Key == k {
					v.selected = i
					return v, v.activate(i)
				}
			}
		}
	}
	return v, nil
}

func (v *View) activate(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("DocDesk"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render(v.subtitle()))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := fmt.Sprintf("[%s] %s", item.Key, item.Label)
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(label))
		}
		if n := v.badges[item.View]; n > 0 && !item.Quit {
			b.WriteString(" " + v.styles.Unread.Render(fmt.Sprintf("(%d)", n)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))
	return b.String()
}

func (v *View) subtitle() string {
	if v.user == nil {
		return "Document Management · not signed in"
	}
	return fmt.Sprintf("Document Management · %s (%s)", v.user.DisplayName(), v.user.Role)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SetUser sets the signed-in user. Nil means signed out, which also drops
// the approvals badge.
func (v *View) SetUser(u *domain.User) {
	v.user = u
	if u == nil || !u.Role.CanApprove() {
		delete(v.badges, messages.ViewDashboard)
	}
}

// SetUnread sets the badge on the notifications entry.
func (v *View) SetUnread(n int) {
	v.badges[messages.ViewNotifications] = n
}

// SetPendingApprovals sets the badge on the dashboard entry. It is only
// shown to users who can approve.
func (v *View) SetPendingApprovals(n int) {
	if v.user == nil || !v.user.Role.CanApprove() {
		return
	}
	v.badges[messages.ViewDashboard] = n
}

// Selected returns the cursor index.
func (v *View) Selected() int {
	return v.selected
}
