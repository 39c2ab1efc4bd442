package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options are applied in order; an option returning an error aborts New.
// Transport-level settings (timeout, debug logging) are applied to the final
// http.Client after every option has run, so their relative order does not
// matter.
type Option func(*Client) error

// WithHTTPTimeout sets the per-attempt time limit.
//
// The limit covers connection, TLS handshake, redirects and reading the
// response body. An attempt exceeding it fails with KindTimeout and is not
// retried. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. The client is copied;
// its Timeout is overridden by WithHTTPTimeout (or the default).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// WithRetryDelay sets the wait before the single automatic retry.
// The value must be greater than zero.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("retry delay must be > 0")
		}
		c.retryDelay = d
		return nil
	}
}

// WithLogger sets the logger used for failure and retry logging.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// dumped at debug level when enabled is true.
//
// Do not enable this option in production environments: dumps include
// headers and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.debug = true
		}
		return nil
	}
}

// WithDefaultHeader adds a default header sent with every request.
func WithDefaultHeader(name, value string) Option {
	return func(c *Client) error {
		if name == "" {
			return fmt.Errorf("header name cannot be empty")
		}
		c.headers.set(name, value)
		return nil
	}
}

// WithMiddleware appends request interceptors. The first middleware given is
// the outermost; all of them run once per Do call, outside the retry stage.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *Client) error {
		for _, m := range mw {
			if m == nil {
				return fmt.Errorf("middleware cannot be nil")
			}
		}
		c.middleware = append(c.middleware, mw...)
		return nil
	}
}
