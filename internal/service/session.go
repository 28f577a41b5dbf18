package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/observability/metrics"
	"github.com/shopdash/shopdash-ui/internal/observability/statsd"
	"github.com/shopdash/shopdash-ui/internal/ports"
)

// DefaultSessionTTL is how long a persisted credential lives.
const DefaultSessionTTL = 7 * 24 * time.Hour

const (
	loginFailedMessage        = "Login failed"
	registrationFailedMessage = "Registration failed"
)

// Teardown reasons tagged on session.teardown metrics.
const (
	TeardownLogout       = "logout"
	TeardownUnauthorized = "unauthorized"
	TeardownInvalidToken = "invalid_token"
)

// SessionState is the lifecycle position of a Session.
type SessionState int

const (
	StateInitializing SessionState = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionSnapshot is a consistent copy of the session state.
type SessionSnapshot struct {
	User            *domainauth.User
	Tenant          *domainauth.Tenant
	Token           string
	State           SessionState
	IsLoading       bool
	IsAuthenticated bool
	// ForcedOut is set when the API rejected the credential mid-session.
	ForcedOut bool
}

// SessionConfig holds the optional knobs of a Session.
type SessionConfig struct {
	TTL     time.Duration
	Logger  *slog.Logger
	Metrics statsd.Sink
	// Now overrides the clock used to inspect token expiry.
	Now func() time.Time
}

// SessionOptions groups dependencies for Session.
type SessionOptions struct {
	API    ports.AuthAPI         // Required
	Store  ports.CredentialStore // Required
	Config SessionConfig
}

// Session is the authentication context of one credential scope.
// The token held in memory, in the credential store and in the API client
// only ever changes together, through setToken.
//
// The mutex is never held across API calls so the unauthorized hook, which
// runs inside an API call, can always take it.
type Session struct {
	api     ports.AuthAPI
	store   ports.CredentialStore
	ttl     time.Duration
	logger  *slog.Logger
	metrics statsd.Sink
	now     func() time.Time

	mu          sync.Mutex
	user        *domainauth.User
	tenant      *domainauth.Tenant
	token       string
	state       SessionState
	loading     bool
	initialized bool
	forcedOut   bool
	// generation increments on every token change so results of calls that
	// raced with a login or logout can be discarded.
	generation uint64
	observers  []func(SessionSnapshot)
}

// NewSession constructs a Session in the Initializing state and registers it
// as the API client's unauthorized hook.
func NewSession(opts SessionOptions) *Session {
	if opts.API == nil {
		panic("service: NewSession requires an API")
	}
	if opts.Store == nil {
		panic("service: NewSession requires a credential store")
	}

	ttl := opts.Config.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := opts.Config.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		api:     opts.API,
		store:   opts.Store,
		ttl:     ttl,
		logger:  opts.Config.Logger,
		metrics: opts.Config.Metrics,
		now:     now,
		state:   StateInitializing,
		loading: true,
	}
	opts.API.OnUnauthorized(s.HandleUnauthorized)
	return s
}

func (s *Session) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// Observe registers fn to receive a snapshot after every state change.
// fn runs outside the session lock and may call Snapshot.
func (s *Session) Observe(fn func(SessionSnapshot)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{
		Token:     s.token,
		State:     s.state,
		IsLoading: s.loading,
		ForcedOut: s.forcedOut,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if s.tenant != nil {
		t := *s.tenant
		snap.Tenant = &t
	}
	snap.IsAuthenticated = snap.User != nil && snap.Token != ""
	return snap
}

// IsAuthenticated is the single source of truth for route gating.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

// IsLoading reports whether the startup rehydration is still in progress.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *domainauth.User { return s.Snapshot().User }

// Tenant returns a copy of the current tenant, or nil.
func (s *Session) Tenant() *domainauth.Tenant { return s.Snapshot().Tenant }

// notify delivers a snapshot to observers. Callers must not hold the lock.
func (s *Session) notify(snap SessionSnapshot) {
	s.mu.Lock()
	observers := make([]func(SessionSnapshot), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

// setTokenLocked is the only writer of the token. It updates memory and the
// API client, and the credential store when persist is set. On a store
// failure nothing changes.
func (s *Session) setTokenLocked(ctx context.Context, token string, persist bool) error {
	if persist {
		var err error
		if token == "" {
			err = s.store.Clear(ctx)
		} else {
			err = s.store.Save(ctx, token, s.ttl)
		}
		if err != nil {
			return err
		}
	}
	s.token = token
	s.api.SetToken(token)
	s.generation++
	return nil
}

// Initialize rehydrates the session from the credential store. A present
// token is validated with a profile fetch; any failure logs the session out.
// Only the first call does work; later calls return immediately.
func (s *Session) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	s.initialized = true

	token, err := s.store.Read(ctx)
	switch {
	case errors.Is(err, ports.ErrNoCredential):
		token = ""
	case err != nil:
		s.log().WarnContext(ctx, "read persisted credential failed", "error", err)
		token = ""
	}
	token = strings.TrimSpace(token)

	if token != "" && TokenExpired(token, s.now()) {
		s.log().InfoContext(ctx, "discarding expired persisted credential")
		s.clearLocked(ctx)
		metrics.EmitSessionTeardown(s.metrics, TeardownInvalidToken)
		token = ""
	}

	if token == "" {
		snap := s.finishLoadingLocked(StateUnauthenticated)
		s.mu.Unlock()
		s.notify(snap)
		return
	}

	// The token is already persisted; only memory and the client change.
	_ = s.setTokenLocked(ctx, token, false)
	gen := s.generation
	s.mu.Unlock()

	profile, err := s.api.Profile(ctx)

	s.mu.Lock()
	switch {
	case gen != s.generation:
		// A login, logout or 401 teardown happened meanwhile; it owns the state.
	case err != nil && apperrors.IsCanceled(err):
		// The caller went away; drop the result without touching the store.
		s.user, s.tenant = nil, nil
		_ = s.setTokenLocked(ctx, "", false)
	case err != nil || profile.User == nil:
		if err == nil {
			err = errors.New("profile response has no user")
		}
		s.log().InfoContext(ctx, "persisted credential rejected", "error", err)
		s.clearLocked(ctx)
		metrics.EmitSessionTeardown(s.metrics, TeardownInvalidToken)
	default:
		s.user = profile.User
		s.tenant = profile.Tenant
	}
	state := StateUnauthenticated
	if s.user != nil && s.token != "" {
		state = StateAuthenticated
	}
	snap := s.finishLoadingLocked(state)
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Session) finishLoadingLocked(state SessionState) SessionSnapshot {
	s.state = state
	s.loading = false
	return s.snapshotLocked()
}

// clearLocked drops user, tenant and token everywhere. Store failures are
// logged; the in-memory teardown always completes.
func (s *Session) clearLocked(ctx context.Context) {
	s.user = nil
	s.tenant = nil
	if err := s.setTokenLocked(ctx, "", true); err != nil {
		s.log().WarnContext(ctx, "clear persisted credential failed", "error", err)
		_ = s.setTokenLocked(ctx, "", false)
	}
	if s.state != StateInitializing {
		s.state = StateUnauthenticated
	}
}

// Login exchanges credentials for a token and makes the session Authenticated.
// On failure the session is left unchanged and the error message is the
// server's, or "Login failed".
func (s *Session) Login(ctx context.Context, email, password string) error {
	res, err := s.api.Login(ctx, domainauth.LoginInput{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	return s.applyAuthResult(ctx, res, err, loginFailedMessage)
}

// Register creates an account and tenant and makes the session Authenticated.
// On failure the session is left unchanged and the error message is the
// server's, or "Registration failed".
func (s *Session) Register(ctx context.Context, in domainauth.RegisterInput) error {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.TenantName = strings.TrimSpace(in.TenantName)
	in.ShopifyDomain = strings.ToLower(strings.TrimSpace(in.ShopifyDomain))

	res, err := s.api.Register(ctx, in)
	return s.applyAuthResult(ctx, res, err, registrationFailedMessage)
}

func (s *Session) applyAuthResult(
	ctx context.Context,
	res domainauth.AuthResult,
	callErr error,
	fallback string,
) error {
	if callErr != nil {
		msg := apperrors.ServerMessage(callErr)
		if msg == "" {
			msg = fallback
		}
		// The message is the whole error; the API error is not chained so
		// Error() reads exactly as the server phrased it.
		return &apperrors.AppError{
			Code:    authFailureCode(callErr),
			Message: msg,
			Field:   apperrors.GetField(callErr),
			Status:  apperrors.GetStatus(callErr),
		}
	}
	if res.Token == "" || res.User == nil {
		return apperrors.Internal(fallback)
	}

	s.mu.Lock()
	if err := s.setTokenLocked(ctx, res.Token, true); err != nil {
		s.mu.Unlock()
		return apperrors.Wrap(fmt.Errorf("persist credential: %w", err), apperrors.ErrCodeInternal, fallback)
	}
	s.user = res.User
	s.tenant = res.Tenant
	s.forcedOut = false
	s.initialized = true
	snap := s.finishLoadingLocked(StateAuthenticated)
	s.mu.Unlock()

	s.log().InfoContext(ctx, "session authenticated", "user_id", res.User.ID)
	s.notify(snap)
	return nil
}

func authFailureCode(err error) apperrors.ErrorCode {
	if code := apperrors.GetCode(err); code != "" {
		return code
	}
	return apperrors.ErrCodeInternal
}

// Logout clears user, tenant and token in memory, in the store and in the
// API client. Calling it on an unauthenticated session is a no-op that
// still succeeds.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	wasAuthenticated := s.user != nil || s.token != ""
	s.clearLocked(ctx)
	s.forcedOut = false
	s.loading = false
	s.state = StateUnauthenticated
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if wasAuthenticated {
		metrics.EmitSessionTeardown(s.metrics, TeardownLogout)
	}
	s.notify(snap)
}

// HandleUnauthorized is the API client's 401 hook. It tears the session
// down synchronously so the caller observes an Unauthenticated session by
// the time the 401 error is returned.
func (s *Session) HandleUnauthorized(ctx context.Context) {
	s.mu.Lock()
	wasAuthenticated := s.user != nil || s.token != ""
	// During Initialize a 401 means the persisted token was stale, not that
	// a live session was revoked.
	rehydrating := s.state == StateInitializing
	s.clearLocked(ctx)
	if wasAuthenticated && !rehydrating {
		s.forcedOut = true
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if rehydrating {
		metrics.EmitSessionTeardown(s.metrics, TeardownInvalidToken)
		s.log().InfoContext(ctx, "persisted credential rejected with 401")
	} else {
		metrics.EmitSessionTeardown(s.metrics, TeardownUnauthorized)
		s.log().InfoContext(ctx, "session torn down after 401")
	}
	s.notify(snap)
}
