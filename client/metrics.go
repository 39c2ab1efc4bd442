package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apierrors "github.com/NexBuild-Agency/ops-app-mobile/client/internal/errors"
)

const outcomeSuccess = "success"

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opsapp_client",
			Name:      "requests_total",
			Help:      "Requests completed, by final outcome (success or failure kind).",
		},
		[]string{"method", "outcome"},
	)

	attemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opsapp_client",
			Name:      "attempts_total",
			Help:      "Wire attempts, by outcome.",
		},
		[]string{"method", "outcome"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opsapp_client",
			Name:      "retries_total",
			Help:      "Automatic retries, by the failure kind that triggered them.",
		},
		[]string{"method", "kind"},
	)

	attemptDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "opsapp_client",
			Name:      "attempt_duration_seconds",
			Help:      "Latency of a single wire attempt.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func instrumentRequest() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *Call) (*Response, error) {
			resp, err := next(ctx, call)
			requestsTotal.WithLabelValues(metricMethod(call.Method), outcomeLabel(err)).Inc()
			return resp, err
		}
	}
}

func instrumentAttempt() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *Call) (*Response, error) {
			start := time.Now()
			resp, err := next(ctx, call)
			method := metricMethod(call.Method)
			attemptDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
			attemptsTotal.WithLabelValues(method, outcomeLabel(err)).Inc()
			return resp, err
		}
	}
}

func outcomeLabel(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	var apiErr *apierrors.Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind.String()
	}
	return "error"
}

// metricMethod bounds label cardinality to the standard verbs.
func metricMethod(m string) string {
	switch m {
	case "", http.MethodGet:
		return http.MethodGet
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions:
		return m
	default:
		return "OTHER"
	}
}
