package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	apierrors "github.com/NexBuild-Agency/ops-app-mobile/client/internal/errors"
)

const (
	// DefaultBaseURL is used when EXPO_PUBLIC_API_URL is unset or empty.
	DefaultBaseURL = "https://api.example.com"

	// DefaultTimeout bounds each attempt.
	DefaultTimeout = 15 * time.Second

	// DefaultRetryDelay is the fixed wait before the single retry.
	DefaultRetryDelay = 1 * time.Second

	// MaxRetries is the number of automatic retries per request.
	MaxRetries = 1
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client issues JSON requests against a base URL. It owns its default
// headers; construct one per backend and share the pointer with every
// caller that needs authenticated requests.
type Client struct {
	baseURL    string
	http       *http.Client
	rest       *resty.Client
	headers    *headerStore
	timeout    time.Duration
	retryDelay time.Duration
	debug      bool
	logger     zerolog.Logger
	middleware []Middleware

	handler HandlerFunc
}

// New constructs a Client for baseURL with the default JSON content type,
// a 15s per-attempt timeout and a 1s retry delay.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}

	c := &Client{
		baseURL:    baseURL,
		http:       &http.Client{},
		headers:    newHeaderStore(),
		timeout:    DefaultTimeout,
		retryDelay: DefaultRetryDelay,
		logger:     log.Logger.With().Str("component", "apiclient").Logger(),
	}
	c.headers.set("Content-Type", "application/json")

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// Work on a copy so a caller-supplied http.Client is left untouched.
	hc := *c.http
	hc.Timeout = c.timeout
	if c.debug {
		hc.Transport = &debugTransport{base: hc.Transport, logger: c.logger}
	}
	c.http = &hc
	c.rest = newRestClient(c.http, c.timeout, c.logger)
	c.handler = c.buildPipeline()
	return c, nil
}

// NewFromConfig constructs a Client from cfg. A zero Timeout keeps the
// default. Options are applied after the config values, so they take
// precedence.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	var base []Option
	if cfg.Timeout > 0 {
		base = append(base, WithHTTPTimeout(cfg.Timeout))
	}
	if cfg.Debug {
		base = append(base, WithDebugLogging(true))
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}

// NewFromEnv loads Config from the environment and constructs a Client.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// BaseURL returns the URL every relative path is joined to.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-attempt time limit.
func (c *Client) Timeout() time.Duration { return c.timeout }

// --------------------------------------------------------------------
// Default headers
// --------------------------------------------------------------------

// SetAuthHeader makes every subsequent request carry
// "Authorization: Bearer <token>" until ClearAuthHeader is called.
func (c *Client) SetAuthHeader(token string) {
	c.headers.set("Authorization", "Bearer "+token)
}

// ClearAuthHeader removes the Authorization default header.
func (c *Client) ClearAuthHeader() {
	c.headers.del("Authorization")
}

// SetHeader sets a default header sent with every subsequent request.
func (c *Client) SetHeader(name, value string) {
	c.headers.set(name, value)
}

// DelHeader removes a default header.
func (c *Client) DelHeader(name string) {
	c.headers.del(name)
}

// Headers returns a copy of the current default headers.
func (c *Client) Headers() http.Header {
	return c.headers.snapshot()
}

// --------------------------------------------------------------------
// Requests
// --------------------------------------------------------------------

// Do sends req through the middleware pipeline.
//
// Statuses below 500 are returned as a *Response, including 4xx. Failures
// are returned as a *Error: network errors and 5xx responses are retried
// once after the retry delay before surfacing; timeouts, cancellations and
// request setup errors surface immediately.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	call, err := c.newCall(ctx, req)
	if err != nil {
		e := apierrors.NewSetupError(req.Method, req.Path, err)
		c.logger.Error().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("error setting up request")
		requestsTotal.WithLabelValues(metricMethod(req.Method), apierrors.KindRequestSetup.String()).Inc()
		return nil, e
	}
	return c.handler(ctx, call)
}

// Get issues a GET for path.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

// Post issues a POST for path with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT for path with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH for path with body encoded as JSON.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE for path.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}
