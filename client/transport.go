package client

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	apierrors "github.com/NexBuild-Agency/ops-app-mobile/client/internal/errors"
)

// newRestClient wraps hc in a resty client. Retries are owned by the
// pipeline, so resty's own retry machinery stays disabled.
func newRestClient(hc *http.Client, timeout time.Duration, logger zerolog.Logger) *resty.Client {
	return resty.NewWithClient(hc).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{l: logger})
}

// send is the terminal pipeline stage: it puts one attempt on the wire and
// classifies the outcome.
func (c *Client) send(ctx context.Context, call *Call) (*Response, error) {
	target := call.URL.String()

	r := c.rest.R().SetContext(ctx)
	for name, values := range call.Header {
		for _, v := range values {
			r.Header.Add(name, v)
		}
	}
	if call.Body != nil {
		r.SetBody(call.Body)
	}

	resp, err := r.Execute(call.Method, target)
	if err != nil {
		return nil, apierrors.FromTransport(ctx, call.Method, target, err)
	}

	status := resp.StatusCode()
	if status >= http.StatusInternalServerError {
		return nil, apierrors.NewServerError(call.Method, target, status, resp.Body())
	}

	return &Response{
		StatusCode: status,
		Header:     resp.Header(),
		Body:       resp.Body(),
		Attempts:   call.Attempt,
	}, nil
}

// restyLogger routes resty's internal messages into zerolog.
type restyLogger struct{ l zerolog.Logger }

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug().Msgf(format, v...) }
