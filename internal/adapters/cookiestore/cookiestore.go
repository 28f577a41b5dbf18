// Package cookiestore persists the bearer credential of one browser.
//
// Store keeps the token itself in an HttpOnly cookie. HandleStore keeps only
// an opaque handle in the cookie and the token in a server-side Scoper such
// as the Redis credential store.
package cookiestore

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopdash/shopdash-ui/internal/ports"
)

// DefaultName is the cookie that carries the token.
const DefaultName = "authToken"

// Config controls cookie attributes shared by every browser.
type Config struct {
	Name   string
	Domain string
	// Secure marks cookies Secure; set in production.
	Secure bool
}

func (c Config) name(fallback string) string {
	if n := strings.TrimSpace(c.Name); n != "" {
		return n
	}
	return fallback
}

// cookieJar writes one named cookie for a single request/response pair and
// remembers what it wrote, so reads later in the same request see it.
type cookieJar struct {
	cfg  Config
	name string
	w    http.ResponseWriter
	r    *http.Request

	mu       sync.Mutex
	written  bool
	override string
}

func (j *cookieJar) get() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.written {
		return j.override
	}
	if j.r == nil {
		return ""
	}
	c, err := j.r.Cookie(j.name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

func (j *cookieJar) set(value string, ttl time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()
	http.SetCookie(j.w, &http.Cookie{
		Name:     j.name,
		Value:    value,
		Path:     "/",
		Domain:   j.cfg.Domain,
		HttpOnly: true,
		Secure:   j.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl).UTC(),
	})
	j.written = true
	j.override = value
}

// clear expires the cookie, mirroring the attributes used when it was set.
func (j *cookieJar) clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	http.SetCookie(j.w, &http.Cookie{
		Name:     j.name,
		Value:    "",
		Path:     "/",
		Domain:   j.cfg.Domain,
		HttpOnly: true,
		Secure:   j.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
	j.written = true
	j.override = ""
}

// Store keeps the token in a cookie bound to one request/response pair.
type Store struct {
	jar *cookieJar
}

var _ ports.CredentialStore = (*Store)(nil)

// New binds a cookie credential store to w and r.
func New(cfg Config, w http.ResponseWriter, r *http.Request) *Store {
	return &Store{jar: &cookieJar{cfg: cfg, name: cfg.name(DefaultName), w: w, r: r}}
}

// Save writes the token cookie with MaxAge ttl.
func (s *Store) Save(_ context.Context, token string, ttl time.Duration) error {
	s.jar.set(token, ttl)
	return nil
}

// Read returns the token from the request cookie, or ErrNoCredential.
func (s *Store) Read(_ context.Context) (string, error) {
	if v := s.jar.get(); v != "" {
		return v, nil
	}
	return "", ports.ErrNoCredential
}

// Clear expires the token cookie.
func (s *Store) Clear(_ context.Context) error {
	s.jar.clear()
	return nil
}

// Scoper hands out a server-side credential store per opaque key.
type Scoper interface {
	Scope(key string) ports.CredentialStore
}

// DefaultHandleName is the cookie that carries the opaque browser handle.
const DefaultHandleName = "shopdash_handle"

// HandleStore keeps an opaque handle in a cookie and the token server-side.
type HandleStore struct {
	jar     *cookieJar
	backend Scoper
}

var _ ports.CredentialStore = (*HandleStore)(nil)

// NewHandleStore binds a handle-based credential store to w and r.
func NewHandleStore(cfg Config, backend Scoper, w http.ResponseWriter, r *http.Request) *HandleStore {
	return &HandleStore{
		jar:     &cookieJar{cfg: cfg, name: cfg.name(DefaultHandleName), w: w, r: r},
		backend: backend,
	}
}

// Save stores the token under a freshly minted handle. A handle presented by
// the browser is never reused, so a planted cookie cannot name where the
// token lands; the previous handle's token is dropped.
func (s *HandleStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	previous := s.jar.get()
	handle := uuid.NewString()
	if err := s.backend.Scope(handle).Save(ctx, token, ttl); err != nil {
		return err
	}
	s.jar.set(handle, ttl)
	if _, err := uuid.Parse(previous); err == nil {
		// Best effort; the old entry also expires on its own TTL.
		_ = s.backend.Scope(previous).Clear(ctx)
	}
	return nil
}

// Read resolves the handle cookie to a token.
func (s *HandleStore) Read(ctx context.Context) (string, error) {
	handle := s.jar.get()
	if _, err := uuid.Parse(handle); err != nil {
		return "", ports.ErrNoCredential
	}
	return s.backend.Scope(handle).Read(ctx)
}

// Clear deletes the server-side token and expires the handle cookie.
func (s *HandleStore) Clear(ctx context.Context) error {
	handle := s.jar.get()
	s.jar.clear()
	if _, err := uuid.Parse(handle); err != nil {
		return nil
	}
	return s.backend.Scope(handle).Clear(ctx)
}
