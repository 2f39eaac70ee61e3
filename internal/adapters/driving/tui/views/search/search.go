// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// Result actions offered in the action menu.
const (
	actionOpen     = "Open Document"
	actionBookmark = "Toggle Bookmark"
	actionCancel   = "Cancel"
)

// ActionMenu represents a simple action selection overlay.
type ActionMenu struct {
	actions  []string
	selected int
	visible  bool
	result   *domain.SearchResult
}

// View represents the search view with input, suggestions, results list,
// and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.ResultList
	statusbar *status.Bar

	searchService   driving.SearchService
	documentService driving.DocumentService
	ctx             context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
	actionMenu *ActionMenu
}

// NewView creates a new search view. The document service is optional and
// enables bookmarking from the results.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	documentService driving.DocumentService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		input:           input.NewSearch(s),
		list:            list.NewResultList(s),
		statusbar:       status.NewBar(s, km),
		searchService:   searchService,
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
		focusInput:      true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryChanged:
		return v, v.scheduleSuggestions(msg.Query)

	case messages.SuggestionsLoaded:
		if msg.Err != nil && msg.Fetched {
			v.statusbar.Note("Suggestions: " + msg.Err.Error())
		}
		return v, nil

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.DocumentActionDone:
		if msg.Err != nil {
			v.statusbar.Note("Bookmark failed: " + msg.Err.Error())
		} else {
			v.statusbar.Note("Bookmark updated")
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetRequest(domain.StatusFailed, msg.Err)
		return v, nil
	}

	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.actionMenu != nil && v.actionMenu.visible {
		return v.handleActionMenuKey(msg)
	}

	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		result := v.list.SelectedResult()
		if result != nil {
			actions := []string{actionOpen}
			if v.documentService != nil {
				actions = append(actions, actionBookmark)
			}
			v.actionMenu = &ActionMenu{
				actions: append(actions, actionCancel),
				visible: true,
				result:  result,
			}
		}
		return v, nil
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
	case "j":
		v.list.MoveDown()
	case "n", "/":
		v.focusInput = true
		v.input.Focus()
		v.input.SetValue("")
		if v.searchService != nil {
			v.searchService.ClearQuery()
		}
	}

	return v, nil
}

// handleInputKey processes keys while the query input has focus.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.statusbar.SetRequest(domain.StatusLoading, nil)
		v.focusInput = false
		v.input.Blur()
		return v, v.performSearch(query)

	case tea.KeyTab:
		if text := v.topSuggestion(); text != "" {
			v.input.SetValue(text)
			return v, v.queryChanged(text)
		}
		return v, nil

	case tea.KeyDown:
		if !v.list.IsEmpty() {
			v.focusInput = false
			v.input.Blur()
		}
		return v, nil

	case tea.KeyCtrlX:
		if v.searchService != nil {
			v.searchService.ClearHistory()
		}
		return v, nil
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if after := v.input.Value(); after != before {
		return v, tea.Batch(cmd, v.queryChanged(after))
	}
	return v, cmd
}

func (v *View) queryChanged(q string) tea.Cmd {
	return func() tea.Msg {
		return messages.QueryChanged{Query: q}
	}
}

// scheduleSuggestions records the keystroke and, when the query is long
// enough, waits out the debounce in a command before fetching.
func (v *View) scheduleSuggestions(q string) tea.Cmd {
	if v.searchService == nil {
		return nil
	}
	ticket, ok := v.searchService.SetQuery(q)
	if !ok {
		return nil
	}
	ctx := v.ctx
	svc := v.searchService
	return func() tea.Msg {
		fetched, err := svc.AwaitSuggestions(ctx, ticket)
		return messages.SuggestionsLoaded{Fetched: fetched, Err: err}
	}
}

func (v *View) topSuggestion() string {
	if v.searchService == nil {
		return ""
	}
	snap := v.searchService.Snapshot()
	if len(snap.Suggestions) == 0 {
		return ""
	}
	return snap.Suggestions[0].Text
}

// handleActionMenuKey processes keyboard input when action menu is visible.
func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.menuUp()
		return v, nil
	case tea.KeyDown:
		v.menuDown()
		return v, nil
	case tea.KeyEnter:
		action := v.actionMenu.actions[v.actionMenu.selected]
		result := v.actionMenu.result
		v.actionMenu = nil
		return v.executeAction(action, result)
	case tea.KeyEsc:
		v.actionMenu = nil
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.menuUp()
	case "j":
		v.menuDown()
	}
	return v, nil
}

func (v *View) menuUp() {
	if v.actionMenu.selected > 0 {
		v.actionMenu.selected--
	}
}

func (v *View) menuDown() {
	if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
		v.actionMenu.selected++
	}
}

// executeAction performs the selected action on a search result.
func (v *View) executeAction(action string, result *domain.SearchResult) (*View, tea.Cmd) {
	if result == nil {
		return v, nil
	}
	id := result.Document.ID

	switch action {
	case actionOpen:
		return v, func() tea.Msg {
			return messages.DocumentSelected{ID: id}
		}
	case actionBookmark:
		ctx := v.ctx
		svc := v.documentService
		return v, func() tea.Msg {
			return messages.DocumentActionDone{
				ID:     id,
				Action: messages.ActionBookmark,
				Err:    svc.ToggleBookmark(ctx, id),
			}
		}
	}
	return v, nil
}

// performSearch executes a search; results are read from the snapshot.
func (v *View) performSearch(query string) tea.Cmd {
	ctx := v.ctx
	svc := v.searchService
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		return messages.SearchCompleted{Query: query, Err: svc.Submit(ctx, query)}
	}
}

// handleSearchCompleted processes a finished search.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetRequest(domain.StatusFailed, msg.Err)
		return
	}

	snap := v.searchService.Snapshot()
	v.err = nil
	v.list.SetResults(snap.Results)
	v.statusbar.SetRequest(domain.StatusSucceeded, nil)
	v.statusbar.SetCount(len(snap.Results))

	v.focusInput = false
	v.input.Blur()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("Search"), "", v.input.View(), "")

	if v.focusInput {
		if hint := v.renderHints(); hint != "" {
			sections = append(sections, hint, "")
		}
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View())

	if v.actionMenu != nil && v.actionMenu.visible {
		sections = append(sections, "", v.renderActionMenu())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHints shows suggestions for the typed query, or the recent history
// when the input is empty.
func (v *View) renderHints() string {
	if v.searchService == nil {
		return ""
	}
	snap := v.searchService.Snapshot()

	if strings.TrimSpace(v.input.Value()) == "" {
		if len(snap.Recent) == 0 {
			return ""
		}
		return v.styles.Muted.Render("Recent: " + strings.Join(snap.Recent, " · ") + "  [ctrl+x] clear")
	}

	if snap.Concerns.Loading(domain.ConcernSearchSuggestions) {
		return v.styles.Muted.Render("Looking up suggestions...")
	}
	if len(snap.Suggestions) == 0 {
		return ""
	}

	lines := make([]string, 0, len(snap.Suggestions)+1)
	lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("Suggestions (%d, tab to accept):", len(snap.Suggestions))))
	for _, s := range snap.Suggestions {
		lines = append(lines, "  "+v.styles.Normal.Render(s.Text))
	}
	return strings.Join(lines, "\n")
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	if v.actionMenu == nil {
		return ""
	}

	lines := make([]string, 0, len(v.actionMenu.actions))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+action))
		}
	}

	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-14) // header, input, suggestions, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetRequest(domain.StatusIdle, nil)
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.Reset()
	if v.searchService != nil {
		v.searchService.ClearQuery()
	}
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
