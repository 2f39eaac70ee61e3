package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// SearchService orchestrates search: debounced suggestions while typing,
// explicit submission, and the recent-query history.
type SearchService interface {
	// SetQuery records a keystroke. When ok is true the caller should
	// schedule AwaitSuggestions with the returned ticket.
	SetQuery(q string) (ticket state.Ticket, ok bool)

	// AwaitSuggestions waits out the debounce delay and fetches suggestions
	// unless a later keystroke superseded the ticket. Returns whether a
	// fetch was made.
	AwaitSuggestions(ctx context.Context, ticket state.Ticket) (bool, error)

	// Submit runs a search for q. Only Submit searches; suggestions never do.
	Submit(ctx context.Context, q string) error

	// SetFilters merges filters into the search filters.
	SetFilters(filters domain.DocumentFilters) domain.DocumentFilters

	// ClearQuery resets the query and suggestions, keeping the history.
	ClearQuery()

	// ClearHistory empties the recent-query history.
	ClearHistory()

	// Snapshot returns the search state.
	Snapshot() state.SearchSnapshot
}
