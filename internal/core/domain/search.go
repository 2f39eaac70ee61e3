package domain

import "time"

// RecentLimit caps the recent-query history.
const RecentLimit = 10

// MinSuggestLength is the shortest query that triggers suggestions.
const MinSuggestLength = 2

// DefaultSuggestDebounce is the quiet period after the last keystroke before
// suggestions are fetched.
const DefaultSuggestDebounce = 300 * time.Millisecond

// Span marks a highlighted byte range [Start, End) in a field.
type Span struct {
	Start int
	End   int
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// Score is the relevance score computed on the client.
	Score float64

	// Snippet is the text the highlights refer to.
	Snippet string

	// Highlights are the matched term ranges within Snippet.
	Highlights []Span
}

// Suggestion is a completion offered while typing.
type Suggestion struct {
	Text       string
	DocumentID string
}

// SearchOptions configures a submitted search.
type SearchOptions struct {
	// Filters narrow the search. Search is overwritten with the query.
	Filters DocumentFilters

	// Limit is the maximum number of results. Zero means the server default.
	Limit int
}

// PushRecent returns history with q front-inserted, duplicates of q removed
// and the length capped at RecentLimit. history is not modified.
func PushRecent(history []string, q string) []string {
	out := make([]string, 0, RecentLimit)
	out = append(out, q)
	for _, h := range history {
		if len(out) == RecentLimit {
			break
		}
		if h == q {
			continue
		}
		out = append(out, h)
	}
	return out
}
