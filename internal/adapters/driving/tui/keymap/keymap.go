// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Search triggers a search.
	Search key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Cancel cancels the current operation.
	Cancel key.Binding

	// NewSearch starts a new search from results view.
	NewSearch key.Binding

	// Open opens the selected document.
	Open key.Binding

	// NextPage and PrevPage page through document lists.
	NextPage key.Binding
	PrevPage key.Binding

	// Approve, Reject and Bookmark act on the current document.
	Approve  key.Binding
	Reject   key.Binding
	Bookmark key.Binding

	// MarkRead marks the selected notification read; MarkAllRead marks
	// the whole inbox.
	MarkRead    key.Binding
	MarkAllRead key.Binding

	// UnreadOnly toggles the unread filter.
	UnreadOnly key.Binding

	// Delete removes the selected item.
	Delete key.Binding

	// Reload refetches the current view.
	Reload key.Binding

	// Range cycles the dashboard date range.
	Range key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new search"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("enter", "m"),
			key.WithHelp("m", "mark read"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "mark all read"),
		),
		UnreadOnly: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unread only"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Range: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "date range"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Up, k.Open, k.Back}
}

// DocumentHelp returns keybindings for a single document.
func (k *KeyMap) DocumentHelp() []key.Binding {
	return []key.Binding{k.Approve, k.Reject, k.Bookmark, k.Back}
}

// InboxHelp returns keybindings for the notification inbox.
func (k *KeyMap) InboxHelp() []key.Binding {
	return []key.Binding{k.MarkRead, k.MarkAllRead, k.UnreadOnly, k.Delete, k.Reload, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Search, k.Back, k.Cancel},
		{k.NextPage, k.PrevPage, k.Reload},
		{k.Approve, k.Reject, k.Bookmark},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}

// Hints renders bindings as "key: desc" pairs.
func Hints(bindings []key.Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, h.Key+": "+h.Desc)
	}
	return out
}
