package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Gateway = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// HeaderRequestID correlates a request with server logs.
	HeaderRequestID = "X-Request-ID"
)

// TokenFunc returns the current session token. An empty token means no
// session.
type TokenFunc func() domain.Token

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api/v1.
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RatePerSecond throttles requests (default: 10). Negative disables.
	RatePerSecond float64

	// Token supplies the bearer token for authenticated calls.
	Token TokenFunc

	// Transport overrides the underlying round tripper.
	Transport http.RoundTripper
}

// Client is the document API gateway.
type Client struct {
	baseURL string
	anon    *http.Client
	authed  *http.Client
	limiter *RateLimiter

	// userID is the id of the signed-in user, used to derive bookmarks.
	mu     sync.RWMutex
	userID string
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, domain.ErrInvalidInput)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerSecond == 0 {
		cfg.RatePerSecond = DefaultRatePerSecond
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}
	if cfg.Token == nil {
		cfg.Token = func() domain.Token { return domain.Token{} }
	}

	return &Client{
		baseURL: base,
		anon:    &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		authed: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &oauth2.Transport{
				Source: tokenSource{token: cfg.Token},
				Base:   cfg.Transport,
			},
		},
		limiter: NewRateLimiter(cfg.RatePerSecond),
	}, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) setUser(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = id
}

func (c *Client) currentUser() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// tokenSource adapts a TokenFunc to oauth2.TokenSource.
type tokenSource struct {
	token TokenFunc
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	t := s.token()
	if t.IsEmpty() {
		return nil, domain.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: t.AccessToken, TokenType: t.TokenType, Expiry: t.Expiry}, nil
}

// request describes one API call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string

	// anonymous skips the bearer token.
	anonymous bool

	// fallback is the message used when the error body has none.
	fallback string
}

// do sends r and decodes a JSON response into out, which may be nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return transportError(err, r.fallback)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	client := c.authed
	if r.anonymous {
		client = c.anon
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		logger.L().Debug("api request failed",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return transportError(err, r.fallback)
	}
	defer resp.Body.Close()

	logger.L().Debug("api request",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.RecordRateLimited(resp)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp, r.fallback)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return decodeError(resp.StatusCode, err)
	}
	return nil
}

// get issues an authenticated GET.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any, fallback string) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query, fallback: fallback}, out)
}

// send issues an authenticated request with an optional JSON body.
func (c *Client) send(ctx context.Context, method, path string, in, out any, fallback string) error {
	r := request{method: method, path: path, fallback: fallback}
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		r.body = bytes.NewReader(body)
		r.contentType = "application/json"
	}
	return c.do(ctx, r, out)
}

// resolve makes link absolute against the API host.
func (c *Client) resolve(link string) string {
	if link == "" {
		return ""
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}

// escape returns a path segment for id.
func escape(id string) string {
	return url.PathEscape(id)
}
