package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(f *Field, text string) {
	for _, r := range text {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewSearch(t *testing.T) {
	f := NewSearch(nil)

	require.NotNil(t, f.styles)
	assert.True(t, f.Focused())
	assert.Equal(t, QueryLimit, f.Limit())
	assert.Contains(t, f.View(), "Search:")
	assert.NotNil(t, f.Init())
}

func TestNewComment(t *testing.T) {
	f := NewComment(nil)

	assert.False(t, f.Focused())
	assert.Equal(t, CommentLimit, f.Limit())
	assert.Contains(t, f.View(), "Comment:")
	assert.NotContains(t, f.View(), "Search:")
}

func TestField_TypingWhenFocused(t *testing.T) {
	f := NewSearch(nil)

	typeText(f, "audit")

	assert.Equal(t, "audit", f.Value())
}

func TestField_IgnoresKeysWhenBlurred(t *testing.T) {
	f := NewComment(nil)

	typeText(f, "ignored")
	assert.Empty(t, f.Value())

	f.Focus()
	typeText(f, "ok")
	assert.Equal(t, "ok", f.Value())

	f.Blur()
	assert.False(t, f.Focused())
}

func TestField_SetValue(t *testing.T) {
	f := NewSearch(nil)

	f.SetValue("safety manual")
	assert.Equal(t, "safety manual", f.Value())

	f.SetValue("")
	assert.Empty(t, f.Value())
}

func TestField_CharLimit(t *testing.T) {
	f := New(nil, "Note", "", 5)
	f.Focus()

	typeText(f, "abcdefgh")

	assert.Equal(t, "abcde", f.Value())
}

func TestField_SetWidth(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		wantModel int
	}{
		{"wide", 100, 86},
		{"narrow clamps", 10, minWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSearch(nil)

			f.SetWidth(tt.width)

			assert.Equal(t, tt.width, f.Width())
			assert.Equal(t, tt.wantModel, f.model.Width)
		})
	}
}

func TestField_ViewShowsPlaceholder(t *testing.T) {
	f := NewComment(nil)

	assert.Contains(t, f.View(), "dd a comment...")
}
