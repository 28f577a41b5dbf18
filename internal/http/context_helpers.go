package httpx

import (
	"context"

	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	"github.com/shopdash/shopdash-ui/internal/service"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// requestSession pairs a browser's Session with the API client it drives.
// Both are built per request by SessionMiddleware.
type requestSession struct {
	session *service.Session
	api     *shopapi.Client
}

// SetSessionInContext returns a child context that carries the session and
// its API client. If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *service.Session, api *shopapi.Client) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, requestSession{session: session, api: api})
}

// GetSessionFromContext returns the request's session and whether one is present.
func GetSessionFromContext(ctx context.Context) (*service.Session, bool) {
	if rs, ok := ctx.Value(sessionKey{}).(requestSession); ok && rs.session != nil {
		return rs.session, true
	}
	return nil, false
}

// GetAPIFromContext returns the API client bound to the request's session.
func GetAPIFromContext(ctx context.Context) (*shopapi.Client, bool) {
	if rs, ok := ctx.Value(sessionKey{}).(requestSession); ok && rs.api != nil {
		return rs.api, true
	}
	return nil, false
}

// IsAuthenticated reports whether the request carries an authenticated session.
func IsAuthenticated(ctx context.Context) bool {
	s, ok := GetSessionFromContext(ctx)
	return ok && s.IsAuthenticated()
}
