// Package client is the single point of egress for all Smart Bills server
// communication. It enforces the two cross-cutting policies every request
// shares: a fresh bearer token is attached to each outgoing request while a
// session is active, and any 401/403 response tears the session down before
// the call returns.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies bearer tokens for outgoing requests. Tokens are
// short-lived, so Token is called once per request rather than cached.
type TokenSource interface {
	// Active reports whether a session exists at all. When false, requests
	// go out unauthenticated.
	Active() bool

	// Token returns a fresh bearer token for the current session.
	Token(ctx context.Context) (string, error)
}

// Client is a configured HTTP client for the Smart Bills API. All request
// paths are relative to a single base address.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	onInvalidate   func()
	invalidateOnce sync.Once
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource attaches the credential provider used to authenticate
// outgoing requests.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithInvalidationHook sets the callback fired when the server rejects the
// session (401/403). The hook runs at most once per Client; several in-flight
// requests can all observe an expired token simultaneously and the teardown
// must not be repeated.
func WithInvalidationHook(fn func()) Option {
	return func(c *Client) { c.onInvalidate = fn }
}

// New creates a Client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base address %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// invalidate fires the session-teardown hook exactly once.
func (c *Client) invalidate() {
	c.invalidateOnce.Do(func() {
		slog.Warn("session invalidated by server")
		if c.onInvalidate != nil {
			c.onInvalidate()
		}
	})
}

// do sends one request and decodes the JSON response into out (when out is
// non-nil). It owns token attachment, status policy, and error shaping.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.New().String())

	// Fetch a fresh token per request; short-lived tokens must not be
	// cached or a request could go out with an expired one.
	if c.tokens != nil && c.tokens.Active() {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to obtain bearer token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("request failed",
			"method", method,
			"path", path,
			"error", err,
		)
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.invalidate()
		return &APIError{Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// serverMessage pulls the "message" field out of an error response body,
// if there is one.
func serverMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Message
}
