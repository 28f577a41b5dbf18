package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialStore = (*MemoryCredentialStore)(nil)
	_ ports.AuthAPI         = (*FakeAuthAPI)(nil)
)

// MemoryCredentialStore is an in-memory credential store for unit tests.
// It counts calls so tests can assert on persistence side effects.
type MemoryCredentialStore struct {
	mu    sync.Mutex
	token string
	ttl   time.Duration

	SaveErr  error
	ReadErr  error
	ClearErr error

	Saves  int
	Clears int
}

// NewMemoryCredentialStore creates a store optionally pre-seeded with a token.
func NewMemoryCredentialStore(token string) *MemoryCredentialStore {
	return &MemoryCredentialStore{token: token}
}

func (m *MemoryCredentialStore) Save(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.token = token
	m.ttl = ttl
	return nil
}

func (m *MemoryCredentialStore) Read(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	if m.token == "" {
		return "", ports.ErrNoCredential
	}
	return m.token, nil
}

func (m *MemoryCredentialStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clears++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.token = ""
	m.ttl = 0
	return nil
}

// Token returns the currently stored token without going through Read.
func (m *MemoryCredentialStore) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// TTL returns the ttl passed to the last successful Save.
func (m *MemoryCredentialStore) TTL() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttl
}

// FakeAuthAPI is a scriptable AuthAPI. Unset funcs fail with ErrNotConfigured.
type FakeAuthAPI struct {
	LoginFunc    func(ctx context.Context, in domainauth.LoginInput) (domainauth.AuthResult, error)
	RegisterFunc func(ctx context.Context, in domainauth.RegisterInput) (domainauth.AuthResult, error)
	ProfileFunc  func(ctx context.Context) (domainauth.Profile, error)

	mu    sync.Mutex
	token string
	hook  ports.UnauthorizedHook
	// TokenHistory records every SetToken call in order.
	TokenHistory []string
}

func (f *FakeAuthAPI) Login(ctx context.Context, in domainauth.LoginInput) (domainauth.AuthResult, error) {
	if f.LoginFunc == nil {
		return domainauth.AuthResult{}, ErrNotConfigured
	}
	return f.LoginFunc(ctx, in)
}

func (f *FakeAuthAPI) Register(ctx context.Context, in domainauth.RegisterInput) (domainauth.AuthResult, error) {
	if f.RegisterFunc == nil {
		return domainauth.AuthResult{}, ErrNotConfigured
	}
	return f.RegisterFunc(ctx, in)
}

func (f *FakeAuthAPI) Profile(ctx context.Context) (domainauth.Profile, error) {
	if f.ProfileFunc == nil {
		return domainauth.Profile{}, ErrNotConfigured
	}
	return f.ProfileFunc(ctx)
}

func (f *FakeAuthAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	f.TokenHistory = append(f.TokenHistory, token)
}

func (f *FakeAuthAPI) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *FakeAuthAPI) OnUnauthorized(hook ports.UnauthorizedHook) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hook = hook
}

// Unauthorized simulates a 401 from any endpoint: the token is dropped and
// the registered hook runs before the returned error reaches the caller.
func (f *FakeAuthAPI) Unauthorized(ctx context.Context) error {
	f.mu.Lock()
	f.token = ""
	hook := f.hook
	f.mu.Unlock()
	if hook != nil {
		hook(ctx)
	}
	return apperrors.Unauthenticated("Invalid token")
}

// ErrNotConfigured is returned by FakeAuthAPI for calls without a scripted func.
type notConfiguredError struct{}

func (notConfiguredError) Error() string { return "fake call not configured" }

var ErrNotConfigured error = notConfiguredError{}
