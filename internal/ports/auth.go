package ports

// Package ports defines interfaces (hexagonal ports) for session and API access.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	"github.com/shopdash/shopdash-ui/internal/domain/model"
)

// ErrNoCredential is returned by CredentialStore.Read when nothing is persisted.
var ErrNoCredential = errors.New("no persisted credential")

// CredentialStore persists the single bearer token of one credential scope
// (a browser, a CLI profile).
type CredentialStore interface {
	// Save replaces any stored token. The token expires after ttl.
	Save(ctx context.Context, token string, ttl time.Duration) error
	// Read returns the stored token or ErrNoCredential.
	Read(ctx context.Context) (string, error)
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// AuthAPI is the slice of the remote API the session layer drives.
type AuthAPI interface {
	Login(ctx context.Context, in domainauth.LoginInput) (domainauth.AuthResult, error)
	Register(ctx context.Context, in domainauth.RegisterInput) (domainauth.AuthResult, error)
	Profile(ctx context.Context) (domainauth.Profile, error)

	// SetToken replaces the bearer token attached to outbound requests. Empty clears it.
	SetToken(token string)
	// Token returns the bearer token currently attached to outbound requests.
	Token() string
	// OnUnauthorized registers the hook run synchronously when any call answers 401.
	OnUnauthorized(hook UnauthorizedHook)
}

// UnauthorizedHook is invoked synchronously when the API answers 401.
type UnauthorizedHook func(ctx context.Context)

// DashboardAPI is the slice of the remote API behind the overview page.
type DashboardAPI interface {
	Overview(ctx context.Context) (model.DashboardOverview, error)
	OrdersByDate(ctx context.Context, p model.OrdersByDateParams) (model.OrdersByDate, error)
	TopCustomers(ctx context.Context, p model.ListParams) (model.TopCustomers, error)
	ProductPerformance(ctx context.Context, p model.ListParams) (model.ProductPerformanceList, error)
	SyncStatus(ctx context.Context) (model.SyncStatus, error)
}
