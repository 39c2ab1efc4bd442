package client

import (
	"net/http"
	"sync"
)

// headerStore holds the default headers shared by every call of a Client.
// Writes happen at sign-in and sign-out; reads happen once per attempt.
type headerStore struct {
	mu sync.RWMutex
	h  http.Header
}

func newHeaderStore() *headerStore {
	return &headerStore{h: make(http.Header)}
}

func (s *headerStore) set(name, value string) {
	s.mu.Lock()
	s.h.Set(name, value)
	s.mu.Unlock()
}

func (s *headerStore) del(name string) {
	s.mu.Lock()
	s.h.Del(name)
	s.mu.Unlock()
}

func (s *headerStore) snapshot() http.Header {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.h.Clone()
}

// merge returns the defaults overlaid by own: a key present in own replaces
// every default value for that key.
func (s *headerStore) merge(own http.Header) http.Header {
	out := s.snapshot()
	for k, vv := range own {
		out[http.CanonicalHeaderKey(k)] = append([]string(nil), vv...)
	}
	return out
}
