package status

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	b := NewBar(nil, nil)

	assert.Equal(t, domain.StatusIdle, b.Status())
	assert.Equal(t, 80, b.Width())
	assert.Contains(t, b.View(), "Ready")
	assert.Contains(t, b.View(), "q: quit | ?: help")
}

func TestBar_Left(t *testing.T) {
	tests := []struct {
		name   string
		status domain.RequestStatus
		err    error
		count  int
		note   string
		want   string
	}{
		{"idle", domain.StatusIdle, nil, 0, "", "Ready"},
		{"loading", domain.StatusLoading, nil, 0, "", "Loading..."},
		{"failed with error", domain.StatusFailed, errors.New("server unavailable"), 0, "", "Error: server unavailable"},
		{"failed without error", domain.StatusFailed, nil, 0, "", "Error"},
		{"succeeded", domain.StatusSucceeded, nil, 3, "", "3 results"},
		{"succeeded empty", domain.StatusSucceeded, nil, 0, "", "0 results"},
		{"note over success", domain.StatusSucceeded, nil, 3, "Bookmark updated", "Bookmark updated"},
		{"failure beats note", domain.StatusFailed, errors.New("boom"), 0, "Bookmark updated", "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBar(nil, nil)
			b.SetRequest(tt.status, tt.err)
			b.SetCount(tt.count)
			if tt.note != "" {
				b.Note(tt.note)
			}

			assert.Contains(t, b.View(), tt.want)
		})
	}
}

func TestBar_SetRequestClearsNote(t *testing.T) {
	b := NewBar(nil, nil)
	b.Note("Bookmark updated")

	b.SetRequest(domain.StatusLoading, nil)

	assert.NotContains(t, b.View(), "Bookmark updated")
}

func TestBar_Noun(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetNoun("documents")
	b.SetRequest(domain.StatusSucceeded, nil)
	b.SetCount(12)

	assert.Contains(t, b.View(), "12 documents")
}

func TestBar_Hints(t *testing.T) {
	km := keymap.DefaultKeyMap()
	b := NewBar(nil, km)
	b.SetWidth(120)

	b.SetRequest(domain.StatusSucceeded, nil)
	b.SetCount(2)
	assert.Contains(t, b.View(), "n: new search")

	b.SetHints(km.InboxHelp())
	assert.Contains(t, b.View(), "A: mark all read")

	b.SetHints(nil)
	b.SetCount(0)
	assert.Contains(t, b.View(), "q: quit")
}

func TestBar_Reset(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetRequest(domain.StatusFailed, errors.New("boom"))
	b.SetCount(4)

	b.Reset()

	assert.Equal(t, domain.StatusIdle, b.Status())
	assert.Contains(t, b.View(), "Ready")
}

func TestBar_ViewFillsWidth(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(100)

	assert.Equal(t, 100, lipgloss.Width(b.View()))
}
