// Package docdetails provides the document detail view for the TUI.
package docdetails

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// ErrNoDocumentService indicates that no document service was provided.
var ErrNoDocumentService = errors.New("document service not available")

const timeLayout = "2006-01-02 15:04"

// View is the document details view.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService
	ctx             context.Context

	comment   *input.Field
	composing bool
	returnTo  messages.ViewType

	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	notice       string
}

// NewView creates a new document details view.
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
		comment:         input.NewComment(s),
		returnTo:        messages.ViewDocuments,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetReturn sets the view esc navigates back to.
func (v *View) SetReturn(view messages.ViewType) {
	v.returnTo = view
}

// Open returns a command that loads the document with its workflow
// history and comments.
func (v *View) Open(id string) tea.Cmd {
	v.scrollOffset = 0
	v.err = nil
	v.notice = ""
	ctx := v.ctx
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentLoaded{ID: id, Err: ErrNoDocumentService}
		}
		if err := svc.Get(ctx, id); err != nil {
			return messages.DocumentLoaded{ID: id, Err: err}
		}
		err := errors.Join(svc.Workflow(ctx, id), svc.Comments(ctx, id))
		return messages.DocumentLoaded{ID: id, Err: err}
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the document details view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.composing {
			return v.handleCommentKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		v.err = msg.Err
		return v, nil

	case messages.DocumentActionDone:
		v.err = msg.Err
		if msg.Err == nil {
			v.notice = string(msg.Action) + " done"
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	v.notice = ""

	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case keymap.Matches(k, v.keymap.Approve):
		return v, v.act(messages.ActionApprove)
	case keymap.Matches(k, v.keymap.Reject):
		return v, v.act(messages.ActionReject)
	case keymap.Matches(k, v.keymap.Bookmark):
		return v, v.act(messages.ActionBookmark)
	case k == "c":
		if v.Document() != nil {
			v.composing = true
			v.comment.SetValue("")
			return v, v.comment.Focus()
		}
	case keymap.Matches(k, v.keymap.Back):
		if v.documentService != nil {
			v.documentService.CloseDetail()
		}
		target := v.returnTo
		return v, func() tea.Msg {
			return messages.ViewChanged{View: target}
		}
	}

	return v, nil
}

// handleCommentKey handles key presses while composing a comment.
func (v *View) handleCommentKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.composing = false
		v.comment.Blur()
		return v, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(v.comment.Value())
		v.composing = false
		v.comment.Blur()
		if text == "" {
			return v, nil
		}
		return v, v.addComment(text)
	}

	var cmd tea.Cmd
	v.comment, cmd = v.comment.Update(msg)
	return v, cmd
}

// act runs a workflow action on the open document.
func (v *View) act(action messages.DocumentAction) tea.Cmd {
	doc := v.Document()
	if doc == nil {
		return nil
	}
	id := doc.ID
	ctx := v.ctx
	svc := v.documentService
	return func() tea.Msg {
		var err error
		switch action {
		case messages.ActionApprove:
			err = svc.Approve(ctx, id, "")
		case messages.ActionReject:
			err = svc.Reject(ctx, id, "")
		case messages.ActionBookmark:
			err = svc.ToggleBookmark(ctx, id)
		}
		if err == nil && action != messages.ActionBookmark {
			err = svc.Workflow(ctx, id)
		}
		return messages.DocumentActionDone{ID: id, Action: action, Err: err}
	}
}

func (v *View) addComment(text string) tea.Cmd {
	doc := v.Document()
	if doc == nil {
		return nil
	}
	id := doc.ID
	ctx := v.ctx
	svc := v.documentService
	return func() tea.Msg {
		return messages.DocumentActionDone{
			ID:     id,
			Action: messages.ActionComment,
			Err:    svc.AddComment(ctx, id, text),
		}
	}
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, help, and padding
	return max(v.height-8, 1)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.buildContent())-v.visibleLines(), 0)
}

// buildContent builds the content lines for display.
func (v *View) buildContent() []string {
	doc := v.Document()
	if doc == nil {
		return nil
	}

	bookmarked := "no"
	if doc.Bookmarked {
		bookmarked = "yes"
	}

	lines := []string{
		v.formatField("ID", doc.ID),
		v.formatField("Title", doc.Title),
		v.formatField("Status", string(doc.Status)),
		v.formatField("Type", string(doc.Type)),
		v.formatField("Department", doc.Department),
		v.formatField("Priority", string(doc.Priority)),
		v.formatField("Bookmarked", bookmarked),
	}
	if doc.File.Name != "" {
		lines = append(lines, v.formatField("File", fmt.Sprintf("%s (%d bytes)", doc.File.Name, doc.File.Size)))
	}
	if !doc.CreatedAt.IsZero() {
		lines = append(lines, v.formatField("Created", doc.CreatedAt.Format(timeLayout)))
	}
	if !doc.Deadline.IsZero() {
		lines = append(lines, v.formatField("Deadline", doc.Deadline.Format(timeLayout)))
	}
	if doc.Summary != "" {
		lines = append(lines, "", doc.Summary)
	}

	if wf := v.documentService.Snapshot().Workflow; len(wf) > 0 {
		lines = append(lines, "", "Workflow:")
		for _, e := range wf {
			line := fmt.Sprintf("  %s %s: %s -> %s", e.Timestamp.Format(timeLayout), e.Action, e.PreviousStatus, e.NewStatus)
			if e.Comments != "" {
				line += " (" + e.Comments + ")"
			}
			lines = append(lines, line)
		}
	}

	if len(doc.Comments) > 0 {
		lines = append(lines, "", "Comments:")
		for _, c := range doc.Comments {
			mark := ""
			if c.Resolved {
				mark = " [resolved]"
			}
			lines = append(lines, fmt.Sprintf("  %s %s: %s%s", c.Timestamp.Format(timeLayout), c.Author, c.Text, mark))
		}
	}

	return lines
}

// formatField formats a field for display.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s", label+":", value)
}

// View renders the document details view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document Details"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 0)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.Document() == nil {
		if v.loading() {
			b.WriteString(v.styles.Muted.Render("Loading document..."))
		} else {
			b.WriteString(v.styles.Muted.Render("No document selected"))
		}
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(lines)),
			len(lines))))
	}

	if v.composing {
		b.WriteString("\n")
		b.WriteString(v.comment.View())
	}
	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderLine(line string) string {
	switch {
	case line == "Workflow:" || line == "Comments:":
		return v.styles.Subtitle.Render(line)
	case strings.HasPrefix(line, "  "):
		return v.styles.Muted.Render(line)
	case strings.HasPrefix(line, "Status:"):
		status := strings.TrimSpace(strings.TrimPrefix(line, "Status:"))
		return v.styles.Subtitle.Render("Status:") + strings.Repeat(" ", 6) + v.styles.ForStatus(status).Render(status)
	}
	if label, value, ok := strings.Cut(line, ":"); ok && len(label) <= 12 {
		return v.styles.Subtitle.Render(label+":") + v.styles.Normal.Render(value)
	}
	return v.styles.Normal.Render(line)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	if v.composing {
		return v.styles.Help.Render("[enter] post comment  [esc] cancel")
	}
	return v.styles.Help.Render("[↑/↓] scroll  [a] approve  [x] reject  [b] bookmark  [c] comment  [esc] back")
}

func (v *View) loading() bool {
	if v.documentService == nil {
		return false
	}
	return v.documentService.Snapshot().Concerns.Loading(domain.ConcernDocumentsDetail)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.comment.SetWidth(width)
}

// Document returns the open document, nil if none.
func (v *View) Document() *domain.Document {
	if v.documentService == nil {
		return nil
	}
	return v.documentService.Snapshot().Current
}

// Composing returns true while a comment is being typed.
func (v *View) Composing() bool {
	return v.composing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
