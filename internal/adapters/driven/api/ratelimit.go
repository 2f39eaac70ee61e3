package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRatePerSecond is the sustained request rate.
	DefaultRatePerSecond = 10.0

	// DefaultBurst is the maximum burst size.
	DefaultBurst = 5

	// DefaultBackoff applies when a 429 carries no Retry-After header.
	DefaultBackoff = 5 * time.Second

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests with a token bucket and backs off after
// the server answers 429.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter. A non-positive rate disables the
// token bucket but keeps the 429 backoff.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, DefaultBurst)}
}

// Wait blocks until a request can be made.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		timer := time.NewTimer(time.Until(retryAt))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimited sets a backoff period from a 429 response.
func (r *RateLimiter) RecordRateLimited(resp *http.Response) {
	backoff := DefaultBackoff
	if v := resp.Header.Get(HeaderRetryAfter); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			backoff = time.Duration(seconds) * time.Second
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(backoff)
}

// RetryAt returns the end of the current backoff period.
func (r *RateLimiter) RetryAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}
