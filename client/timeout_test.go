package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NexBuild-Agency/ops-app-mobile/internal/apitest"
)

func TestTimeoutIsNotRetried(t *testing.T) {
	srv := apitest.New(t)
	srv.Script(http.MethodGet, "/evenements", apitest.Reply{Status: 200, Delay: 3 * time.Second})
	c, logs := newTestClient(t, srv.URL, WithHTTPTimeout(100*time.Millisecond))

	start := time.Now()
	resp, err := c.Get(context.Background(), "/evenements")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, IsTimeout(err))
	assert.False(t, IsRetryable(err))
	assert.Less(t, elapsed, 2*time.Second)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 1, apiErr.Attempts)
	assert.Len(t, srv.Hits(http.MethodGet, "/evenements"), 1)
	assert.Contains(t, logs.String(), "request timed out")
}

func TestCallerDeadlineIsReportedAsTimeout(t *testing.T) {
	srv := apitest.New(t)
	srv.Script(http.MethodGet, "/stocks", apitest.Reply{Status: 200, Delay: 3 * time.Second})
	c, _ := newTestClient(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx, "/stocks")
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Len(t, srv.Hits(http.MethodGet, "/stocks"), 1)
}
