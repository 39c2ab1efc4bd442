// Package errors provides the failure taxonomy for the API client.
// Every failed request surfaces as a *Error carrying a Kind, which decides
// whether the retry stage may re-issue it.
package errors

import (
	"fmt"
)

// Kind classifies why a request did not produce a usable response.
type Kind int

const (
	// KindTimeout means the per-attempt time limit elapsed before a reply.
	KindTimeout Kind = iota + 1

	// KindNetwork means no HTTP response was received at all.
	KindNetwork

	// KindServer means the server replied with a status >= 500.
	KindServer

	// KindRequestSetup means the request could not be built or dispatched.
	KindRequestSetup

	// KindCanceled means the caller's context was canceled.
	KindCanceled
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "Timeout"
	case KindNetwork:
		return "NetworkError"
	case KindServer:
		return "ServerError"
	case KindRequestSetup:
		return "RequestSetupError"
	case KindCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Retryable reports whether the retry stage may re-issue a request that
// failed with this kind.
func (k Kind) Retryable() bool {
	return k == KindNetwork || k == KindServer
}

// Error is a failed request outcome.
type Error struct {
	Kind       Kind
	Method     string
	URL        string
	StatusCode int    // 0 when no response was received
	Body       []byte // response body for KindServer
	Attempts   int    // attempts made before the failure surfaced
	Err        error  // underlying cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	target := e.Method
	if e.URL != "" {
		target += " " + e.URL
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %s", e.Kind, e.StatusCode, target)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, target, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, target)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error {
	return e.Err
}
