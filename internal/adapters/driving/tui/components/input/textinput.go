// Package input provides labelled single-line text fields for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
)

// Character limits for the fields the views use.
const (
	QueryLimit   = 256
	CommentLimit = 2000
)

// minWidth is the narrowest the editable area gets.
const minWidth = 20

// Field is a bubbles textinput with a label in front of it.
type Field struct {
	model  textinput.Model
	styles *styles.Styles
	label  string
	width  int
}

// NewSearch returns the focused query field of the search view.
func NewSearch(s *styles.Styles) *Field {
	f := New(s, "Search", "Enter search query...", QueryLimit)
	f.model.Focus()
	return f
}

// NewComment returns the blurred comment field of the details view.
func NewComment(s *styles.Styles) *Field {
	return New(s, "Comment", "Add a comment...", CommentLimit)
}

// New returns a blurred field. A nil s uses the default styles.
func New(s *styles.Styles, label, placeholder string, limit int) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = limit
	m.Width = 50

	return &Field{model: m, styles: s, label: label, width: 50}
}

// Init starts the cursor blinking.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the text model.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.model, cmd = f.model.Update(msg)
	return f, cmd
}

// View renders the label and the bordered text area side by side.
func (f *Field) View() string {
	label := f.styles.Title.Render(f.label + ": ")
	box := f.styles.InputField.Render(f.model.View())
	//nolint:misspell // lipgloss constant
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

// Value returns the text.
func (f *Field) Value() string { return f.model.Value() }

// SetValue replaces the text.
func (f *Field) SetValue(v string) { f.model.SetValue(v) }

// Focus gives the field keyboard focus.
func (f *Field) Focus() tea.Cmd { return f.model.Focus() }

// Blur drops keyboard focus.
func (f *Field) Blur() { f.model.Blur() }

// Focused reports whether the field has keyboard focus.
func (f *Field) Focused() bool { return f.model.Focused() }

// Limit returns the character limit.
func (f *Field) Limit() int { return f.model.CharLimit }

// SetWidth sizes the field to width columns including the label.
func (f *Field) SetWidth(width int) {
	f.width = width
	f.model.Width = max(width-len(f.label)-8, minWidth)
}

// Width returns the width last set.
func (f *Field) Width() int { return f.width }
