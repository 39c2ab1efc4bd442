package client

import (
	"context"
	"errors"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	apierrors "github.com/NexBuild-Agency/ops-app-mobile/client/internal/errors"
)

// retryOnce re-issues a call at most MaxRetries times after a fixed delay
// when the attempt failed with a network error or a 5xx response. Each
// attempt is a fresh Call derived from the original; the attempt number is
// the only retry state.
func retryOnce(delay time.Duration, logger zerolog.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *Call) (*Response, error) {
			policy := backoff.WithContext(
				backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), MaxRetries),
				ctx,
			)

			attempt := 1
			for {
				resp, err := next(ctx, call.withAttempt(attempt))
				if err == nil {
					if resp != nil {
						resp.Attempts = attempt
					}
					return resp, nil
				}

				var apiErr *apierrors.Error
				if errors.As(err, &apiErr) {
					apiErr.Attempts = attempt
				}
				if !apierrors.IsRetryable(err) {
					return nil, err
				}

				wait := policy.NextBackOff()
				if wait == backoff.Stop {
					return nil, err
				}

				retriesTotal.WithLabelValues(metricMethod(call.Method), apierrors.KindOf(err).String()).Inc()
				logger.Warn().
					Err(err).
					Str("request_id", call.ID).
					Str("method", call.Method).
					Str("url", call.URL.String()).
					Int("attempt", attempt).
					Dur("backoff", wait).
					Msg("retrying request")

				timer := time.NewTimer(wait)
				select {
				case <-timer.C:
				case <-ctx.Done():
					timer.Stop()
					canceled := apierrors.FromTransport(ctx, call.Method, call.URL.String(), ctx.Err())
					canceled.Attempts = attempt
					return nil, canceled
				}
				attempt++
			}
		}
	}
}
