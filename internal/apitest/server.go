// Package apitest provides a scriptable fake backend for exercising the API
// client over a real HTTP connection.
//
// Routes are gorilla/mux templates. Each route replays its scripted replies
// in order and repeats the last one once the script is exhausted. Every
// request that reaches a route is recorded as a Hit. Unscripted routes answer
// 404 with {"error":"not found"}.
//
// Script routes before issuing requests; the router is not safe to modify
// while serving.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

// Reply is one scripted answer.
type Reply struct {
	Status int
	// Body is written as-is when it is []byte or string, otherwise encoded
	// as JSON.
	Body any
	// Header is added to the response.
	Header http.Header
	// Delay holds the reply back. A client that gives up first closes the
	// connection and the handler returns without writing.
	Delay time.Duration
	// Drop closes the connection without writing any response.
	Drop bool
}

// Hit is one request received by a scripted route.
type Hit struct {
	Method string
	Path   string
	Vars   map[string]string
	Header http.Header
	Body   []byte
	At     time.Time
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server

	router *mux.Router

	mu      sync.Mutex
	scripts map[string]*script
	hits    map[string][]Hit
}

type script struct {
	replies []Reply
	next    int
}

// New starts a Server and registers its shutdown with t.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		router:  mux.NewRouter(),
		scripts: make(map[string]*script),
		hits:    make(map[string][]Hit),
	}
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, nil, map[string]string{"error": "not found"})
	})
	s.Server = httptest.NewServer(s.router)
	t.Cleanup(s.Close)
	return s
}

// Script registers replies for method and the mux path template.
func (s *Server) Script(method, path string, replies ...Reply) {
	if len(replies) == 0 {
		replies = []Reply{{Status: http.StatusOK}}
	}
	key := routeKey(method, path)

	s.mu.Lock()
	_, exists := s.scripts[key]
	s.scripts[key] = &script{replies: replies}
	s.mu.Unlock()

	if !exists {
		s.router.Methods(method).Path(path).HandlerFunc(s.handle(key))
	}
}

// Hits returns the requests received by the route registered for method and
// path.
func (s *Server) Hits(method, path string) []Hit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Hit(nil), s.hits[routeKey(method, path)]...)
}

func (s *Server) handle(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		hit := Hit{
			Method: r.Method,
			Path:   r.URL.Path,
			Vars:   mux.Vars(r),
			Header: r.Header.Clone(),
			Body:   body,
			At:     time.Now(),
		}

		s.mu.Lock()
		s.hits[key] = append(s.hits[key], hit)
		sc := s.scripts[key]
		reply := sc.replies[sc.next]
		if sc.next < len(sc.replies)-1 {
			sc.next++
		}
		s.mu.Unlock()

		if reply.Delay > 0 {
			select {
			case <-time.After(reply.Delay):
			case <-r.Context().Done():
				return
			}
		}

		if reply.Drop {
			hj, ok := w.(http.Hijacker)
			if !ok {
				panic("apitest: response writer does not support hijacking")
			}
			conn, _, err := hj.Hijack()
			if err == nil {
				_ = conn.Close()
			}
			return
		}

		status := reply.Status
		if status == 0 {
			status = http.StatusOK
		}
		writeJSON(w, status, reply.Header, reply.Body)
	}
}

func writeJSON(w http.ResponseWriter, status int, header http.Header, body any) {
	for k, vv := range header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)

	switch b := body.(type) {
	case nil:
	case []byte:
		_, _ = w.Write(b)
	case string:
		_, _ = w.Write([]byte(b))
	default:
		_ = json.NewEncoder(w).Encode(b)
	}
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
