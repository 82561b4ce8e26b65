// Package apitest runs resource API packages against a recording HTTP server.
package apitest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"backoffice/infrastructure/httpclient"
	"backoffice/infrastructure/retry"
)

// Request What the server saw
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// JSON decodes the recorded body into a generic map.
func (r Request) JSON(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(r.Body, &m); err != nil {
		t.Fatalf("request body is not a JSON object: %v (%s)", err, r.Body)
	}
	return m
}

// Server replies to every request with the configured status and body.
type Server struct {
	*httptest.Server
	mu       sync.Mutex
	requests []Request
	status   int
	body     any
}

// NewServer starts a server answering 200 with {"success":true,"message":"ok","data":data}.
func NewServer(t *testing.T, data any) *Server {
	t.Helper()
	s := &Server{status: http.StatusOK}
	s.Reply(http.StatusOK, map[string]any{"success": true, "message": "ok", "data": data})
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Reply changes the canned response.
func (s *Server) Reply(status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	status, reply := s.status, s.body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reply)
}

// Requests returns a copy of everything recorded so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request, failing the test if there is none.
func (s *Server) Last(t *testing.T) Request {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatalf("no request reached the server")
	}
	return reqs[len(reqs)-1]
}

// Client builds an httpclient pointed at the server with retries that do not sleep.
func (s *Server) Client(opts ...httpclient.Option) *httpclient.Client {
	cfg := httpclient.Config{BaseURL: s.URL, Timeout: 5 * time.Second, Retry: retry.DefaultConfig}
	opts = append([]httpclient.Option{
		httpclient.WithRetrySleep(func(_ context.Context, _ time.Duration) error { return nil }),
	}, opts...)
	return httpclient.New(cfg, opts...)
}
