// Package documents provides the paged document list view for the TUI.
package documents

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

// ErrNoDocumentService indicates that no document service was provided.
var ErrNoDocumentService = errors.New("document service not available")

// ActionOption represents a document action.
type ActionOption int

const (
	ActionOpen ActionOption = iota
	ActionApprove
	ActionReject
	ActionBookmark
	ActionDelete
	ActionCancel
)

// statusCycle is the order the status filter steps through.
var statusCycle = []string{
	domain.FilterAll,
	string(domain.DocumentStatusPending),
	string(domain.DocumentStatusApproved),
	string(domain.DocumentStatusDraft),
	string(domain.DocumentStatusRejected),
	string(domain.DocumentStatusArchived),
}

// View is the documents list view.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService
	ctx             context.Context

	selected     int
	width        int
	height       int
	ready        bool
	err          error
	notice       string
	showingMenu  bool
	menuSelected ActionOption
	scrollOffset int
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:          s,
		keymap:          km,
		documentService: documentService,
		ctx:             context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command that fetches the page for the given filters.
// A zero value refreshes with the held filters.
func (v *View) Load(filters domain.DocumentFilters) tea.Cmd {
	ctx := v.ctx
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentsLoaded{Err: ErrNoDocumentService}
		}
		return messages.DocumentsLoaded{Err: svc.List(ctx, filters)}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.showingMenu {
			return v.handleMenuKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.err = msg.Err
		v.clampSelection()
		return v, nil

	case messages.DocumentActionDone:
		v.err = msg.Err
		if msg.Err == nil {
			v.notice = fmt.Sprintf("Document %s: %s done", msg.ID, msg.Action)
		}
		v.clampSelection()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	docs := v.Documents()
	v.notice = ""

	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(docs)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Select):
		if len(docs) > 0 {
			v.showingMenu = true
			v.menuSelected = ActionOpen
		}
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.Load(domain.DocumentFilters{})
	case keymap.Matches(k, v.keymap.NextPage):
		p := v.pagination()
		if p.Page < p.Pages {
			return v, v.gotoPage(p.Page + 1)
		}
	case keymap.Matches(k, v.keymap.PrevPage):
		p := v.pagination()
		if p.Page > 1 {
			return v, v.gotoPage(p.Page - 1)
		}
	case k == "s":
		return v, v.cycleStatus()
	case k == "c":
		return v, v.clearFilters()
	case keymap.Matches(k, v.keymap.Approve):
		return v, v.act(ActionApprove)
	case keymap.Matches(k, v.keymap.Reject):
		return v, v.act(ActionReject)
	case keymap.Matches(k, v.keymap.Bookmark):
		return v, v.act(ActionBookmark)
	}

	return v, nil
}

// handleMenuKeyMsg handles key presses in action menu mode.
func (v *View) handleMenuKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.menuSelected > ActionOpen {
			v.menuSelected--
		}
	case "down", "j":
		if v.menuSelected < ActionCancel {
			v.menuSelected++
		}
	case "enter":
		v.showingMenu = false
		return v, v.act(v.menuSelected)
	case "esc":
		v.showingMenu = false
	}

	return v, nil
}

// act runs an action against the selected document.
func (v *View) act(action ActionOption) tea.Cmd {
	doc := v.SelectedDocument()
	if doc == nil || action == ActionCancel {
		return nil
	}
	id := doc.ID

	if action == ActionOpen {
		return func() tea.Msg {
			return messages.DocumentSelected{ID: id}
		}
	}

	ctx := v.ctx
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoDocumentService}
		}
		switch action {
		case ActionApprove:
			return messages.DocumentActionDone{ID: id, Action: messages.ActionApprove, Err: svc.Approve(ctx, id, "")}
		case ActionReject:
			return messages.DocumentActionDone{ID: id, Action: messages.ActionReject, Err: svc.Reject(ctx, id, "")}
		case ActionBookmark:
			return messages.DocumentActionDone{ID: id, Action: messages.ActionBookmark, Err: svc.ToggleBookmark(ctx, id)}
		case ActionDelete:
			return messages.DocumentActionDone{ID: id, Action: messages.ActionDelete, Err: svc.Delete(ctx, id)}
		}
		return nil
	}
}

func (v *View) gotoPage(page int) tea.Cmd {
	v.selected = 0
	v.scrollOffset = 0
	return v.Load(domain.DocumentFilters{Page: page})
}

// cycleStatus steps the status filter and reloads from the first page.
func (v *View) cycleStatus() tea.Cmd {
	current := v.filters().Status
	next := statusCycle[0]
	for i, s := range statusCycle {
		if s == current {
			next = statusCycle[(i+1)%len(statusCycle)]
			break
		}
	}
	v.selected = 0
	v.scrollOffset = 0
	return v.Load(domain.DocumentFilters{Status: next, Page: 1})
}

func (v *View) clampSelection() {
	n := len(v.Documents())
	if v.selected >= n {
		v.selected = max(n-1, 0)
	}
	v.adjustScroll()
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, filters, help, and padding
	return max(v.height-9, 1)
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder
	docs := v.Documents()
	p := v.pagination()

	title := fmt.Sprintf("Documents (%d)", p.Total)
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("status: %s · page %d of %d", v.filters().Status, p.Page, max(p.Pages, 1))))
	b.WriteString("\n\n")

	if v.loading() {
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if len(docs) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents match the current filters."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.showingMenu {
		b.WriteString(v.renderActionMenu())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(docs) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderDocument(i, &docs[i]))
		b.WriteString("\n")
	}

	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderDocument renders a single document line.
func (v *View) renderDocument(index int, doc *domain.Document) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	title := doc.Title
	if title == "" {
		title = doc.ID
	}
	if doc.Bookmarked {
		title = "★ " + title
	}

	maxTitleLen := max(v.width/2-4, 10)
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	status := string(doc.Status)
	meta := fmt.Sprintf("%-10s %s", doc.Department, doc.Type)

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %-9s %s", indicator, maxTitleLen, title, status, meta))
	}

	return v.styles.Normal.Render(indicator) +
		v.styles.Normal.Render(fmt.Sprintf("%-*s  ", maxTitleLen, title)) +
		v.styles.ForStatus(status).Render(fmt.Sprintf("%-9s", status)) + " " +
		v.styles.Muted.Render(meta)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	var b strings.Builder

	if doc := v.SelectedDocument(); doc != nil {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Actions for: %s", doc.Title)))
		b.WriteString("\n\n")
	}

	options := []struct {
		action ActionOption
		label  string
	}{
		{ActionOpen, "Open"},
		{ActionApprove, "Approve"},
		{ActionReject, "Reject"},
		{ActionBookmark, "Toggle Bookmark"},
		{ActionDelete, "Delete"},
		{ActionCancel, "Cancel"},
	}

	for _, opt := range options {
		if v.menuSelected == opt.action {
			b.WriteString(v.styles.Selected.Render("> " + opt.label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + opt.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [←/→] page  [s] status  [c] clear  [a/x/b] approve/reject/bookmark  [r] reload  [esc] back")
}

func (v *View) snapshotOK() bool {
	return v.documentService != nil
}

func (v *View) loading() bool {
	if !v.snapshotOK() {
		return false
	}
	return v.documentService.Snapshot().Concerns.Loading(domain.ConcernDocumentsList)
}

// clearFilters drops every filter and reloads.
func (v *View) clearFilters() tea.Cmd {
	if v.documentService == nil {
		return nil
	}
	v.documentService.ClearFilters()
	v.selected = 0
	v.scrollOffset = 0
	return v.Load(domain.DocumentFilters{})
}

func (v *View) pagination() domain.Pagination {
	if !v.snapshotOK() {
		return domain.DefaultPagination()
	}
	return v.documentService.Snapshot().Pagination
}

func (v *View) filters() domain.DocumentFilters {
	if !v.snapshotOK() {
		return domain.DefaultDocumentFilters()
	}
	return v.documentService.Snapshot().Filters
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the current page of documents.
func (v *View) Documents() []domain.Document {
	if !v.snapshotOK() {
		return nil
	}
	return v.documentService.Snapshot().Documents
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.Document {
	docs := v.Documents()
	if v.selected < len(docs) {
		return &docs[v.selected]
	}
	return nil
}

// IsShowingMenu returns true if the action menu is visible.
func (v *View) IsShowingMenu() bool {
	return v.showingMenu
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
