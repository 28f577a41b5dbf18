// Package shopapi is the HTTP client for the dashboard REST API.
//
// A Client holds the bearer token attached to every outbound request and
// reacts to 401 responses by dropping that token and invoking the
// registered unauthorized hook before the caller sees the error.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/observability/metrics"
	"github.com/shopdash/shopdash-ui/internal/observability/statsd"
	"github.com/shopdash/shopdash-ui/internal/ports"
)

const (
	// DefaultBaseURL is used when no API_URL is configured.
	DefaultBaseURL = "http://localhost:3001"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 30 * time.Second

	apiPrefix       = "/api"
	maxResponseSize = 4 << 20
)

// Config captures how to reach the dashboard API.
type Config struct {
	// BaseURL is the API origin; "/api" is appended.
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Transport is the underlying round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
	Logger    *slog.Logger
	Metrics   statsd.Sink
}

// Client issues JSON requests against the dashboard API.
// It is safe for concurrent use.
type Client struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	base      http.RoundTripper
	logger    *slog.Logger
	metrics   statsd.Sink
	http      *http.Client

	mu             sync.RWMutex
	token          string
	onUnauthorized ports.UnauthorizedHook
}

var _ ports.AuthAPI = (*Client)(nil)

// NewClient builds an API client. The returned client carries no token.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api base url %q has no host", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	c := &Client{
		baseURL:   strings.TrimRight(u.String(), "/") + apiPrefix,
		timeout:   timeout,
		userAgent: fallbackString(strings.TrimSpace(cfg.UserAgent), "shopdash-ui"),
		base:      base,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
	c.http = c.newHTTPClient()
	return c, nil
}

func (c *Client) newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: c.timeout,
		Transport: &unauthorizedTransport{
			client: c,
			next:   &bearerTransport{client: c, next: c.base},
		},
	}
}

// Fork returns a client that shares configuration and the underlying transport
// but has its own token and unauthorized hook. The fork starts without a token.
func (c *Client) Fork() *Client {
	f := &Client{
		baseURL:   c.baseURL,
		timeout:   c.timeout,
		userAgent: c.userAgent,
		base:      c.base,
		logger:    c.logger,
		metrics:   c.metrics,
	}
	f.http = f.newHTTPClient()
	return f
}

// BaseURL returns the API root including the "/api" prefix.
func (c *Client) BaseURL() string { return c.baseURL }

// SetToken replaces the bearer token. An empty token stops attaching the header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the bearer token currently attached to outbound requests.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnUnauthorized registers the hook run synchronously on every 401 response,
// after the client token has been cleared. Passing nil removes it.
func (c *Client) OnUnauthorized(hook ports.UnauthorizedHook) {
	c.mu.Lock()
	c.onUnauthorized = hook
	c.mu.Unlock()
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	c.mu.Lock()
	c.token = ""
	hook := c.onUnauthorized
	c.mu.Unlock()

	c.log().InfoContext(ctx, "api rejected credential; tearing down session")
	if hook != nil {
		hook(ctx)
	}
}

func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		mapped := apperrors.MapTransportError(err)
		c.observe(ctx, method, path, 0, time.Since(start), mapped)
		return mapped
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		mapped := apperrors.MapTransportError(err)
		c.observe(ctx, method, path, resp.StatusCode, time.Since(start), mapped)
		return mapped
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp.StatusCode, payload)
		c.observe(ctx, method, path, resp.StatusCode, time.Since(start), apiErr)
		return apiErr
	}

	c.observe(ctx, method, path, resp.StatusCode, time.Since(start), nil)

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s %s response", method, path)
	}
	return nil
}

func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) observe(ctx context.Context, method, path string, status int, took time.Duration, err error) {
	endpoint := endpointTag(path)
	metrics.EmitAPIRequest(c.metrics, metrics.APIRequestMetric{
		Method:   method,
		Endpoint: endpoint,
		Status:   status,
		Duration: took,
		Err:      err,
	})

	attrs := []any{"method", method, "path", endpoint, "status", status, "duration", took}
	switch {
	case err == nil:
		c.log().DebugContext(ctx, "api request", attrs...)
	case errors.Is(err, context.Canceled) || apperrors.IsCanceled(err):
		c.log().DebugContext(ctx, "api request canceled", attrs...)
	default:
		c.log().DebugContext(ctx, "api request failed", append(attrs, "error", err)...)
	}
}

// endpointTag strips identifiers so metric cardinality stays bounded.
func endpointTag(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := 1; i < len(segments); i++ {
		if segments[i-1] == "users" || segments[i-1] == "logs" {
			segments[i] = ":id"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
