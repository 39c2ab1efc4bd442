package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
)

// NewServerError creates the failure for a response with status >= 500.
func NewServerError(method, url string, statusCode int, body []byte) *Error {
	return &Error{
		Kind:       KindServer,
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       body,
		Err:        fmt.Errorf("server responded with status %d", statusCode),
	}
}

// NewSetupError creates the failure for a request that never left the client.
func NewSetupError(method, url string, err error) *Error {
	return &Error{
		Kind:   KindRequestSetup,
		Method: method,
		URL:    url,
		Err:    err,
	}
}

// FromTransport classifies an error returned by the wire transport, where no
// HTTP response was obtained. ctx is the context the attempt ran under.
func FromTransport(ctx context.Context, method, url string, err error) *Error {
	kind := KindNetwork
	switch {
	case stderrors.Is(ctx.Err(), context.Canceled):
		kind = KindCanceled
	case isTimeout(err):
		kind = KindTimeout
	}
	return &Error{
		Kind:   kind,
		Method: method,
		URL:    url,
		Err:    err,
	}
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

// KindOf returns the Kind of err, or 0 when err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsRetryable reports whether err may be retried by the retry stage.
func IsRetryable(err error) bool {
	return KindOf(err).Retryable()
}
