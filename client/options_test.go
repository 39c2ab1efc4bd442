package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionValidation(t *testing.T) {
	_, err := New("http://example.com", WithHTTPTimeout(0))
	assert.Error(t, err)

	_, err = New("http://example.com", WithRetryDelay(-time.Second))
	assert.Error(t, err)

	_, err = New("http://example.com", WithHTTPClient(nil))
	assert.Error(t, err)

	_, err = New("http://example.com", WithDefaultHeader("", "x"))
	assert.Error(t, err)

	_, err = New("http://example.com", WithMiddleware(nil))
	assert.Error(t, err)
}

func TestWithHTTPTimeoutAppliesToSuppliedClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}
	c, err := New("http://example.com", WithHTTPTimeout(5*time.Second), WithHTTPClient(hc))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, c.Timeout())
	assert.Equal(t, 5*time.Second, c.http.Timeout)
	assert.Equal(t, time.Minute, hc.Timeout, "caller's client must not be modified")
}

func TestWithDebugLoggingWrapsTransport(t *testing.T) {
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(r, 200, `{}`), nil
	})
	c, err := New("http://example.com",
		WithDebugLogging(true),
		WithHTTPClient(&http.Client{Transport: rt}),
		WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)

	dt, ok := c.http.Transport.(*debugTransport)
	require.True(t, ok, "expected debugTransport to be installed")
	assert.NotNil(t, dt.base)

	_, err = c.Get(context.Background(), "/lieux")
	require.NoError(t, err)
	assert.True(t, called, "base transport not invoked")
}

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("OPSAPP_DEBUG", "true")
	c, err := New("http://example.com")
	require.NoError(t, err)
	if _, ok := c.http.Transport.(*debugTransport); !ok {
		t.Fatalf("expected debugTransport to be installed when OPSAPP_DEBUG=true")
	}
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	dt := &debugTransport{base: rt, logger: zerolog.Nop()}
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := dt.RoundTrip(req); err == nil {
		t.Fatalf("expected error from underlying transport")
	}
}
