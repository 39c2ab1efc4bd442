package main

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NexBuild-Agency/ops-app-mobile/client"
	"github.com/NexBuild-Agency/ops-app-mobile/devmode"
	"github.com/NexBuild-Agency/ops-app-mobile/internal/apitest"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	root := NewRootCmd()
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_GetWithToken(t *testing.T) {
	srv := apitest.New(t)
	srv.Script(http.MethodGet, "/lieux", apitest.Reply{Status: 200, Body: []map[string]any{{"id": 1, "name": "Carrefour La Marsa"}}})

	out, err := execute(t, "--api-url", srv.URL, "--token", "tok123", "get", "/lieux")
	require.NoError(t, err)
	assert.Contains(t, out, "HTTP 200")
	assert.Contains(t, out, `"name": "Carrefour La Marsa"`)

	hits := srv.Hits(http.MethodGet, "/lieux")
	require.Len(t, hits, 1)
	assert.Equal(t, "Bearer tok123", hits[0].Header.Get("Authorization"))
	assert.Equal(t, "application/json", hits[0].Header.Get("Content-Type"))
}

func TestCLI_PostWithDevToken(t *testing.T) {
	srv := apitest.New(t)
	srv.Script(http.MethodPost, "/pointages", apitest.Reply{Status: 201, Body: map[string]any{"id": 9, "status": "en attente"}})

	out, err := execute(t, "--api-url", srv.URL, "--dev", "post", "/pointages", "--data", `{"photo":"a.jpg","latitude":36.8,"longitude":10.1}`)
	require.NoError(t, err)
	assert.Contains(t, out, "HTTP 201")

	hits := srv.Hits(http.MethodPost, "/pointages")
	require.Len(t, hits, 1)
	assert.Equal(t, "Bearer "+devmode.Token, hits[0].Header.Get("Authorization"))
	assert.JSONEq(t, `{"photo":"a.jpg","latitude":36.8,"longitude":10.1}`, string(hits[0].Body))
}

func TestCLI_RequestWithHeaders(t *testing.T) {
	srv := apitest.New(t)
	srv.Script(http.MethodPatch, "/profile", apitest.Reply{Status: 200, Body: "plain text"})

	out, err := execute(t, "--api-url", srv.URL, "request", "patch", "/profile", "-H", "X-Region: Sfax", "--data", `{"region":"Sfax"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "HTTP 200")
	assert.Contains(t, out, "plain text")

	hits := srv.Hits(http.MethodPatch, "/profile")
	require.Len(t, hits, 1)
	assert.Equal(t, "Sfax", hits[0].Header.Get("X-Region"))
	assert.Empty(t, hits[0].Header.Get("Authorization"))
}

func TestCLI_NotFoundIsPrintedNotFailed(t *testing.T) {
	srv := apitest.New(t)

	out, err := execute(t, "--api-url", srv.URL, "get", "/evenements/404")
	require.NoError(t, err)
	assert.Contains(t, out, "HTTP 404")
	assert.Contains(t, out, `"error": "not found"`)
}

func TestCLI_ServerErrorFails(t *testing.T) {
	srv := apitest.New(t)
	srv.Script(http.MethodDelete, "/bookings/{id}", apitest.Reply{Status: 503})

	_, err := execute(t, "--api-url", srv.URL, "delete", "/bookings/3")
	require.Error(t, err)
	assert.True(t, client.IsServer(err))
	assert.Len(t, srv.Hits(http.MethodDelete, "/bookings/{id}"), 2)
}

func TestCLI_InputValidation(t *testing.T) {
	_, err := execute(t, "--api-url", "http://127.0.0.1:1", "post", "/x", "--data", "{not json")
	assert.ErrorContains(t, err, "not valid JSON")

	_, err = execute(t, "--api-url", "http://127.0.0.1:1", "--dev", "--token", "x", "get", "/x")
	assert.ErrorContains(t, err, "cannot be used together")

	_, err = execute(t, "--api-url", "http://127.0.0.1:1", "request", "GET", "/x", "-H", "novalue")
	assert.ErrorContains(t, err, "invalid header")

	_, err = execute(t, "--api-url", "http://127.0.0.1:1", "post", "/x")
	assert.Error(t, err, "--data is required for post")
}

func TestParseHeaders(t *testing.T) {
	h, err := parseHeaders([]string{"X-A: 1", "X-A:2", "X-B: a:b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, h.Values("X-A"))
	assert.Equal(t, "a:b", h.Get("X-B"))

	h, err = parseHeaders(nil)
	require.NoError(t, err)
	assert.Nil(t, h)
}
