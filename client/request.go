package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Request describes one logical API call.
type Request struct {
	Method string
	// Path is joined to the client's base URL. An absolute http(s) URL is
	// used as-is.
	Path string
	// Header overlays the client's default headers for this call only.
	Header http.Header
	// Body is sent as-is when it is []byte, json.RawMessage, string or
	// io.Reader; any other non-nil value is encoded as JSON.
	Body any
}

// Call is one attempt of a Request as it travels through the pipeline.
// Stages that need to change a call derive a new one with the With* methods
// instead of mutating the value they were handed.
type Call struct {
	ID      string // stable across attempts of the same request
	Method  string
	URL     *url.URL
	Header  http.Header
	Body    []byte
	Attempt int // 1-based
}

// WithHeader returns a copy of c whose headers are replaced by h.
func (c *Call) WithHeader(h http.Header) *Call {
	cp := *c
	cp.Header = h
	return &cp
}

// withAttempt returns a copy of c for attempt n.
func (c *Call) withAttempt(n int) *Call {
	cp := *c
	cp.Header = c.Header.Clone()
	cp.Attempt = n
	return &cp
}

// Response is a completed HTTP exchange with status below 500.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Attempts   int
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("decode response: empty body (status %d)", r.StatusCode)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// newCall validates req and builds the first attempt.
func (c *Client) newCall(ctx context.Context, req Request) (*Call, error) {
	target := joinURL(c.baseURL, req.Path)

	// Let net/http validate the method and URL the same way it will on send.
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, nil)
	if err != nil {
		return nil, err
	}
	if httpReq.URL.Host == "" {
		return nil, fmt.Errorf("url %q has no host", target)
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	return &Call{
		ID:      uuid.NewString(),
		Method:  method,
		URL:     httpReq.URL,
		Header:  req.Header.Clone(),
		Body:    body,
		Attempt: 1,
	}, nil
}

// joinURL combines base and path the way the mobile app's HTTP layer did:
// absolute URLs win, otherwise exactly one slash separates the parts.
func joinURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	case string:
		return []byte(b), nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		return data, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return data, nil
	}
}
