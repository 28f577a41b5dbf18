package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// RecordedRequest is a request observed by APIStub.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	Body          string
}

// APIStub is a fake dashboard API. Routes are keyed by "METHOD /api/path".
// Unknown routes answer 404 with an {"error": ...} body.
type APIStub struct {
	Server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []RecordedRequest
}

// NewAPIStub starts a stub server that is closed when the test finishes.
func NewAPIStub(t TestingTB) *APIStub {
	t.Helper()
	s := &APIStub{routes: map[string]http.HandlerFunc{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Server.Close)
	return s
}

// URL returns the stub origin, suitable as API_URL.
func (s *APIStub) URL() string { return s.Server.URL }

// Handle registers fn for method and path. Path excludes the "/api" prefix.
func (s *APIStub) Handle(method, path string, fn http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" /api"+path] = fn
}

// JSON registers a fixed JSON response.
func (s *APIStub) JSON(method, path string, status int, body any) {
	s.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Requests returns a copy of every request seen so far.
func (s *APIStub) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests hit method and path.
func (s *APIStub) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == "/api"+path {
			n++
		}
	}
	return n
}

func (s *APIStub) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get("X-Request-ID"),
		Body:          string(body),
	})
	fn := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if fn == nil {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Route not found"})
		return
	}
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	fn(w, r)
}

// WriteJSON writes body as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RequireBearer wraps fn so requests without "Bearer <token>" get 401.
func RequireBearer(token string, fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			return
		}
		fn(w, r)
	}
}
