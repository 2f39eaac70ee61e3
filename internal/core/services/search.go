package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// suggestLimit caps the completions fetched per keystroke.
const suggestLimit = 5

// SearchService orchestrates typeahead suggestions and submitted searches.
type SearchService struct {
	sessionGuard
	documents   driven.DocumentGateway
	suggestions driven.SuggestionSource
	debounce    time.Duration
	limit       int
}

// NewSearchService creates a new search service.
// The suggestions source is optional (can be nil). A debounce of zero uses
// domain.DefaultSuggestDebounce.
func NewSearchService(
	store *state.Store,
	documents driven.DocumentGateway,
	suggestions driven.SuggestionSource,
	tokens driven.TokenStore,
	debounce time.Duration,
) *SearchService {
	if debounce <= 0 {
		debounce = domain.DefaultSuggestDebounce
	}
	return &SearchService{
		sessionGuard: sessionGuard{store: store, tokens: tokens},
		documents:    documents,
		suggestions:  suggestions,
		debounce:     debounce,
	}
}

// SetLimit caps the number of results a submitted search returns.
func (s *SearchService) SetLimit(limit int) {
	s.limit = limit
}

// SetQuery records a keystroke.
func (s *SearchService) SetQuery(q string) (state.Ticket, bool) {
	return s.store.Search.SetQuery(q)
}

// AwaitSuggestions waits out the debounce delay and fetches suggestions for
// the query as it stands, unless a later keystroke superseded tk.
func (s *SearchService) AwaitSuggestions(ctx context.Context, tk state.Ticket) (bool, error) {
	search := s.store.Search
	if s.suggestions == nil || !search.IsLatest(tk) {
		return false, nil
	}
	if len(strings.TrimSpace(search.Query())) < domain.MinSuggestLength {
		return false, nil
	}

	timer := time.NewTimer(s.debounce)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
	}

	if !search.BeginSuggestions(tk) {
		return false, nil
	}

	q := strings.TrimSpace(search.Query())
	logger.Debug("Fetching suggestions for %q", q)
	sugg, err := s.suggestions.Suggest(ctx, q, suggestLimit)
	if err != nil {
		return true, s.fail(ctx, search, tk, err)
	}
	search.CompleteSuggestions(tk, sugg)
	return true, nil
}

// Submit searches for q with the held filters, ranks the hits and records
// q in the recent history.
func (s *SearchService) Submit(ctx context.Context, q string) error {
	logger.Section("Search Execution")
	search := s.store.Search
	q = strings.TrimSpace(q)
	tk := search.BeginSearch(q)

	if q == "" {
		err := fmt.Errorf("query is required: %w", domain.ErrInvalidInput)
		search.Fail(tk, err)
		return err
	}

	opts := domain.SearchOptions{Filters: search.Filters(), Limit: s.limit}
	opts.Filters.Search = q
	if opts.Limit > 0 {
		opts.Filters.Limit = opts.Limit
	}
	logger.Debug("Query: %q, filters: %+v", q, opts.Filters)

	list, err := s.documents.ListDocuments(ctx, opts.Filters)
	if err != nil {
		return s.fail(ctx, search, tk, err)
	}

	var docs []domain.Document
	if list != nil {
		docs = list.Documents
	}
	results := rank(q, docs)
	logger.Debug("Ranked %d results", len(results))

	search.CompleteSearch(tk, q, results)
	return nil
}

// SetFilters merges filters into the search filters.
func (s *SearchService) SetFilters(filters domain.DocumentFilters) domain.DocumentFilters {
	return s.store.Search.SetFilters(filters)
}

// ClearQuery resets the query and suggestions.
func (s *SearchService) ClearQuery() {
	s.store.Search.ClearQuery()
}

// ClearHistory empties the recent-query history.
func (s *SearchService) ClearHistory() {
	s.store.Search.ClearHistory()
}

// Snapshot returns the search state.
func (s *SearchService) Snapshot() state.SearchSnapshot {
	return s.store.Search.Snapshot()
}
