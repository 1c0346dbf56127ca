// Package httpapi is the JSON-over-HTTP client shared by the embedding and
// LLM provider adapters. It maps transport failures and HTTP statuses onto
// the domain's capability sentinels.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 512

// Client sends JSON requests to one provider.
type Client struct {
	http        *http.Client
	provider    string
	baseURL     string
	headers     map[string]string
	unavailable error
}

// Config configures a Client.
type Config struct {
	// Provider names the API in errors and spans (e.g. "openai").
	Provider string

	// BaseURL is prefixed to every request path.
	BaseURL string

	// Timeout bounds each request. Zero means no client-side limit.
	Timeout time.Duration

	// Headers are sent with every request.
	Headers map[string]string

	// Unavailable is the sentinel wrapped into transport and 5xx failures,
	// e.g. domain.ErrLLMUnavailable.
	Unavailable error
}

// New creates a client. Requests are traced through otelhttp.
func New(cfg Config) *Client {
	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		provider:    cfg.Provider,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		headers:     cfg.Headers,
		unavailable: cfg.Unavailable,
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostJSON sends in as JSON to path and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", c.provider, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// Get sends a GET to path and decodes the response into out when out is non-nil.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.provider, err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", c.provider, ctxErr)
		}
		return fmt.Errorf("%s: %w: %w", c.provider, c.unavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", c.provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Provider:    c.provider,
			Status:      resp.StatusCode,
			Body:        truncate(string(body), maxErrorBody),
			unavailable: c.unavailable,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.provider, err)
	}
	return nil
}

// StatusError is a non-2xx response.
type StatusError struct {
	Provider    string
	Status      int
	Body        string
	unavailable error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: API returned status %d: %s", e.Provider, e.Status, e.Body)
}

// Unwrap maps the status to a domain sentinel: 429 to ErrRateLimited,
// 5xx and auth failures to the client's unavailable sentinel.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case e.Status >= 500, e.Status == http.StatusUnauthorized, e.Status == http.StatusForbidden:
		return e.unavailable
	default:
		return nil
	}
}

// IsStatus reports whether err is a StatusError with the given status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
