// Package status provides the one-line status bar shown under a view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// Bar mirrors the request status of the view's main concern on the left
// and keybinding hints on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	width  int

	status domain.RequestStatus
	err    error
	count  int
	noun   string
	note   string

	// hints overrides the status-derived hints when set.
	hints []key.Binding
}

// NewBar returns an idle bar. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, width: 80, status: domain.StatusIdle, noun: "results"}
}

// SetRequest records the outcome of the concern the bar follows. It clears
// any note.
func (b *Bar) SetRequest(st domain.RequestStatus, err error) {
	b.status = st
	b.err = err
	b.note = ""
}

// Status returns the last recorded request status.
func (b *Bar) Status() domain.RequestStatus {
	return b.status
}

// SetCount sets the item count shown after a successful request.
func (b *Bar) SetCount(n int) {
	b.count = n
}

// SetNoun names what is counted, such as "results" or "documents".
func (b *Bar) SetNoun(noun string) {
	b.noun = noun
}

// Note shows msg until the next SetRequest.
func (b *Bar) Note(msg string) {
	b.note = msg
}

// SetHints replaces the keybinding hints. Pass nil to restore the defaults.
func (b *Bar) SetHints(bindings []key.Binding) {
	b.hints = bindings
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the rendered width.
func (b *Bar) Width() int {
	return b.width
}

// Reset returns the bar to idle.
func (b *Bar) Reset() {
	b.SetRequest(domain.StatusIdle, nil)
	b.count = 0
}

// View renders the bar padded to its width.
func (b *Bar) View() string {
	left := b.left()
	right := b.styles.Muted.Render(strings.Join(keymap.Hints(b.bindings()), " | "))
	inner := b.width - b.styles.StatusBar.GetHorizontalPadding()
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) left() string {
	switch {
	case b.status == domain.StatusFailed:
		if b.err != nil {
			return b.styles.Error.Render("Error: " + b.err.Error())
		}
		return b.styles.Error.Render("Error")
	case b.status.IsLoading():
		return b.styles.Muted.Render("Loading...")
	case b.note != "":
		return b.styles.Success.Render(b.note)
	case b.status == domain.StatusSucceeded:
		return b.styles.Normal.Render(fmt.Sprintf("%d %s", b.count, b.noun))
	default:
		return b.styles.Muted.Render("Ready")
	}
}

func (b *Bar) bindings() []key.Binding {
	switch {
	case len(b.hints) > 0:
		return b.hints
	case b.status == domain.StatusSucceeded && b.count > 0:
		return b.keymap.ResultsHelp()
	default:
		return b.keymap.ShortHelp()
	}
}
