// Package list renders scrollable result lists for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// rowLines is the height of one rendered result: title, metadata, snippet.
const rowLines = 3

// ResultList is a cursor over search results. The scroll window follows
// the cursor so the selected row is always visible.
type ResultList struct {
	styles  *styles.Styles
	results []domain.SearchResult
	cursor  int
	offset  int
	width   int
	height  int
}

// NewResultList returns an empty list. A nil s uses the default styles.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 10}
}

// SetResults replaces the rows and moves the cursor to the top.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.cursor = 0
	r.offset = 0
}

// Results returns the current rows.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the cursor index.
func (r *ResultList) Selected() int {
	return r.cursor
}

// SelectedResult returns the row under the cursor, or nil when empty.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.cursor < 0 || r.cursor >= len(r.results) {
		return nil
	}
	return &r.results[r.cursor]
}

// IsEmpty reports whether there are no rows.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}

// MoveUp moves the cursor up one row.
func (r *ResultList) MoveUp() {
	r.moveTo(r.cursor - 1)
}

// MoveDown moves the cursor down one row.
func (r *ResultList) MoveDown() {
	r.moveTo(r.cursor + 1)
}

// SetSelected moves the cursor to index. Out of range indexes are ignored.
func (r *ResultList) SetSelected(index int) {
	r.moveTo(index)
}

func (r *ResultList) moveTo(index int) {
	if index < 0 || index >= len(r.results) {
		return
	}
	r.cursor = index
	visible := r.visibleRows()
	switch {
	case r.cursor < r.offset:
		r.offset = r.cursor
	case r.cursor >= r.offset+visible:
		r.offset = r.cursor - visible + 1
	}
}

// SetDimensions resizes the list and keeps the cursor in view.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
	r.offset = 0
	r.moveTo(r.cursor)
}

// visibleRows is how many results fit below the header.
func (r *ResultList) visibleRows() int {
	return max((r.height-2)/rowLines, 1)
}

// View renders the header and the visible rows.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	var b strings.Builder
	b.WriteString(r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))))
	b.WriteString("\n")

	end := min(r.offset+r.visibleRows(), len(r.results))
	for i := r.offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(r.renderRow(i))
	}
	return b.String()
}

func (r *ResultList) renderRow(i int) string {
	res := r.results[i]
	doc := res.Document

	title := doc.Title
	if title == "" {
		title = "(Untitled)"
	}
	titleWidth := max(r.width-20, 10)
	title = truncate(title, titleWidth)
	score := fmt.Sprintf("%.2f", res.Score)

	var head string
	if i == r.cursor {
		head = r.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", titleWidth, title, score))
	} else {
		head = r.styles.Normal.Render(fmt.Sprintf("  %-*s  ", titleWidth, title)) + r.styles.Muted.Render(score)
	}

	meta := r.styles.Subtitle.Render(fmt.Sprintf("    %s · %s · ", dash(string(doc.Type)), dash(doc.Department))) +
		r.styles.ForStatus(string(doc.Status)).Render(string(doc.Status))

	snippet := "    " + Highlight(r.styles, res.Snippet, res.Highlights, max(r.width-6, 20))

	return head + "\n" + meta + "\n" + snippet
}

// Highlight renders text with spans in the highlight style, cut to maxLen
// bytes. Spans past the cut are dropped.
func Highlight(s *styles.Styles, text string, spans []domain.Span, maxLen int) string {
	cut := false
	if maxLen > 3 && len(text) > maxLen {
		text = text[:maxLen-3]
		cut = true
	}

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.Start < pos || sp.Start >= len(text) || sp.End <= sp.Start {
			continue
		}
		end := min(sp.End, len(text))
		b.WriteString(s.Muted.Render(text[pos:sp.Start]))
		b.WriteString(s.Highlight.Render(text[sp.Start:end]))
		pos = end
	}
	b.WriteString(s.Muted.Render(text[pos:]))
	if cut {
		b.WriteString(s.Muted.Render("..."))
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func dash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
