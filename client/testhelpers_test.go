package client

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(r *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}
}

// newTestClient builds a client with a short retry delay and a captured log.
func newTestClient(t *testing.T, baseURL string, opts ...Option) (*Client, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	base := []Option{
		WithRetryDelay(20 * time.Millisecond),
		WithLogger(zerolog.New(buf)),
	}
	c, err := New(baseURL, append(base, opts...)...)
	require.NoError(t, err)
	return c, buf
}
