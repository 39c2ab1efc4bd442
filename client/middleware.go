package client

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/NexBuild-Agency/ops-app-mobile/client/internal/errors"
)

// HandlerFunc sends a call and returns its outcome.
type HandlerFunc func(ctx context.Context, call *Call) (*Response, error)

// Middleware wraps a HandlerFunc with cross-cutting behaviour. A middleware
// may inspect or derive the call, short-circuit, or post-process the outcome
// returned by next.
type Middleware func(next HandlerFunc) HandlerFunc

// chain wraps h so that mw[0] runs first.
func chain(h HandlerFunc, mw ...Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// buildPipeline assembles the fixed stages around the wire transport.
//
//	caller middleware -> log failures -> request metrics -> retry
//	  -> default headers -> attempt metrics -> transport
func (c *Client) buildPipeline() HandlerFunc {
	stages := append([]Middleware(nil), c.middleware...)
	stages = append(stages,
		logFailures(c),
		instrumentRequest(),
		retryOnce(c.retryDelay, c.logger),
		applyDefaultHeaders(c.headers),
		instrumentAttempt(),
	)
	return chain(c.send, stages...)
}

// applyDefaultHeaders merges the default-header store under each attempt's
// own headers. The store is read per attempt, so a retry observes a header
// change made during the backoff.
func applyDefaultHeaders(store *headerStore) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *Call) (*Response, error) {
			return next(ctx, call.WithHeader(store.merge(call.Header)))
		}
	}
}

// logFailures logs every failure that reaches the caller, once.
func logFailures(c *Client) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *Call) (*Response, error) {
			resp, err := next(ctx, call)
			if err == nil {
				return resp, nil
			}

			var apiErr *apierrors.Error
			if !errors.As(err, &apiErr) {
				c.logger.Error().Err(err).Str("request_id", call.ID).Str("method", call.Method).Str("url", call.URL.String()).Msg("API request failed")
				return resp, err
			}

			switch apiErr.Kind {
			case apierrors.KindServer:
				c.logger.Error().
					Str("request_id", call.ID).
					Str("method", call.Method).
					Str("url", call.URL.String()).
					Int("status", apiErr.StatusCode).
					Str("body", string(apiErr.Body)).
					Int("attempts", apiErr.Attempts).
					Msg("API error")
			case apierrors.KindTimeout:
				c.logger.Error().
					Err(apiErr.Err).
					Str("request_id", call.ID).
					Str("method", call.Method).
					Str("url", call.URL.String()).
					Dur("timeout", c.timeout).
					Msg("request timed out")
			default:
				c.logger.Error().
					Err(apiErr.Err).
					Str("request_id", call.ID).
					Str("method", call.Method).
					Str("url", call.URL.String()).
					Interface("headers", redactHeaders(call.Header)).
					Int("body_bytes", len(call.Body)).
					Int("attempts", apiErr.Attempts).
					Str("kind", apiErr.Kind.String()).
					Msg("no response received")
			}
			return resp, err
		}
	}
}

func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	if out != nil && out.Get("Authorization") != "" {
		out.Set("Authorization", "REDACTED")
	}
	return out
}
