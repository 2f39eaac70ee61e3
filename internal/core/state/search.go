package state

import (
	"slices"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// SearchSnapshot is a copy of the search session.
type SearchSnapshot struct {
	// Query is the text in the search box.
	Query string

	// Submitted is the query the current results belong to.
	Submitted string

	Results     []domain.SearchResult
	Suggestions []domain.Suggestion

	// Recent is most-recent-first, deduplicated and at most
	// domain.RecentLimit long.
	Recent []string

	Filters  domain.DocumentFilters
	Concerns Concerns
}

// Search is the state container for search orchestration.
type Search struct {
	tracker

	query       string
	submitted   string
	results     []domain.SearchResult
	suggestions []domain.Suggestion
	recent      []string
	filters     domain.DocumentFilters
}

// NewSearch returns an empty search session.
func NewSearch() *Search {
	return &Search{
		tracker: newTracker(),
		filters: domain.DefaultDocumentFilters(),
	}
}

// Snapshot returns a copy of the current state.
func (s *Search) Snapshot() SearchSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SearchSnapshot{
		Query:       s.query,
		Submitted:   s.submitted,
		Results:     slices.Clone(s.results),
		Suggestions: slices.Clone(s.suggestions),
		Recent:      slices.Clone(s.recent),
		Filters:     s.filters,
		Concerns:    s.snapshot(),
	}
}

// Query returns the text in the search box.
func (s *Search) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Filters returns the search filters.
func (s *Search) Filters() domain.DocumentFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetQuery records a keystroke. Every call invalidates suggestion work
// started for earlier keystrokes. The returned ticket may be passed to
// BeginSuggestions once the debounce delay has elapsed; ok is false when
// the query is too short to suggest for, in which case suggestions are
// cleared.
func (s *Search) SetQuery(q string) (tk Ticket, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = q
	tk = s.bump(domain.ConcernSearchSuggestions)
	if !suggestible(q) {
		s.suggestions = nil
		return tk, false
	}
	return tk, true
}

// BeginSuggestions moves a debounced ticket to loading. Returns false if a
// later keystroke superseded it or the held query is too short to suggest.
func (s *Search) BeginSuggestions(tk Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !suggestible(s.query) {
		return false
	}
	return s.activate(tk)
}

func suggestible(q string) bool {
	return len(strings.TrimSpace(q)) >= domain.MinSuggestLength
}

// CompleteSuggestions replaces the suggestion list.
func (s *Search) CompleteSuggestions(tk Ticket, sugg []domain.Suggestion) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.succeed(tk) {
		return false
	}
	s.suggestions = slices.Clone(sugg)
	return true
}

// BeginSearch starts an explicit search for q.
func (s *Search) BeginSearch(q string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	return s.begin(domain.ConcernSearchResults)
}

// CompleteSearch replaces the results and records q in the recent history.
func (s *Search) CompleteSearch(tk Ticket, q string, results []domain.SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.succeed(tk) {
		return false
	}
	s.submitted = q
	s.results = slices.Clone(results)
	s.recent = domain.PushRecent(s.recent, q)
	return true
}

// SetFilters merges f into the search filters and returns the result.
func (s *Search) SetFilters(f domain.DocumentFilters) domain.DocumentFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filters.Merge(f)
	return s.filters
}

// ClearFilters restores the default search filters.
func (s *Search) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = domain.DefaultDocumentFilters()
}

// ClearQuery empties the query and the suggestions. Results and the recent
// history are kept.
func (s *Search) ClearQuery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.suggestions = nil
	s.bump(domain.ConcernSearchSuggestions)
}

// ClearResults drops the results of the last search.
func (s *Search) ClearResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.submitted = ""
	s.bump(domain.ConcernSearchResults)
}

// ClearHistory empties the recent-query history.
func (s *Search) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = nil
}

// Reset returns the container to its initial state.
func (s *Search) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.query = ""
	s.submitted = ""
	s.results = nil
	s.suggestions = nil
	s.recent = nil
	s.filters = domain.DefaultDocumentFilters()
}
