package client

import (
	apierrors "github.com/NexBuild-Agency/ops-app-mobile/client/internal/errors"
)

// Re-export the failure taxonomy so callers import only the client package.
type (
	// Error is the failure outcome of Do.
	Error = apierrors.Error
	// Kind classifies an Error.
	Kind = apierrors.Kind
)

const (
	KindTimeout      = apierrors.KindTimeout
	KindNetwork      = apierrors.KindNetwork
	KindServer       = apierrors.KindServer
	KindRequestSetup = apierrors.KindRequestSetup
	KindCanceled     = apierrors.KindCanceled
)

// KindOf returns the Kind of err, or 0 when err did not come from Do.
func KindOf(err error) Kind { return apierrors.KindOf(err) }

// IsTimeout reports whether err is a per-attempt timeout.
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

// IsNetwork reports whether no response was received, after the retry.
func IsNetwork(err error) bool { return KindOf(err) == KindNetwork }

// IsServer reports whether the server answered >= 500, after the retry.
func IsServer(err error) bool { return KindOf(err) == KindServer }

// IsRequestSetup reports whether the request never left the client.
func IsRequestSetup(err error) bool { return KindOf(err) == KindRequestSetup }

// IsRetryable reports whether err belongs to a kind the client retries.
func IsRetryable(err error) bool { return apierrors.IsRetryable(err) }
