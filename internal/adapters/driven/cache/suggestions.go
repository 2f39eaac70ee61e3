// Package cache provides caching decorators for driven ports.
package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
)

// Ensure Suggestions implements the interface.
var _ driven.SuggestionSource = (*Suggestions)(nil)

const (
	// DefaultTTL is how long a completion list is reused.
	DefaultTTL = time.Minute

	// cleanupInterval is how often expired entries are purged.
	cleanupInterval = 5 * time.Minute
)

// Suggestions caches typeahead completions in memory. Typing back over a
// prefix reuses the earlier answer instead of querying the server again.
// Entries are keyed by owner, so completions fetched for one user are never
// served to the next one signed in.
type Suggestions struct {
	next  driven.SuggestionSource
	owner func() string
	cache *gocache.Cache
}

// NewSuggestions wraps next. owner names the signed-in user and may be nil
// for an unscoped cache. A non-positive ttl uses DefaultTTL.
func NewSuggestions(next driven.SuggestionSource, owner func() string, ttl time.Duration) *Suggestions {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if owner == nil {
		owner = func() string { return "" }
	}
	return &Suggestions{
		next:  next,
		owner: owner,
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Suggest returns cached completions for query, fetching them on a miss.
// Failures are not cached.
func (s *Suggestions) Suggest(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	key := cacheKey(s.owner(), query, limit)
	if x, found := s.cache.Get(key); found {
		return x.([]domain.Suggestion), nil
	}

	out, err := s.next.Suggest(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}

// Flush drops every cached entry.
func (s *Suggestions) Flush() {
	s.cache.Flush()
}

// Len returns the number of cached queries.
func (s *Suggestions) Len() int {
	return s.cache.ItemCount()
}

func cacheKey(owner, query string, limit int) string {
	return owner + "\x00" + strconv.Itoa(limit) + ":" + strings.ToLower(strings.TrimSpace(query))
}
