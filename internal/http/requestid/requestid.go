// Package requestid carries the per-request correlation id between the
// inbound middleware and outbound API calls.
package requestid

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Header is the header used to propagate request ids.
const Header = "X-Request-ID"

const maxLen = 128

type ctxKey struct{}

// WithID returns a child context carrying id. Empty ids leave ctx unchanged.
func WithID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Sanitize accepts a client-supplied id when it is short and printable,
// otherwise it mints a new one.
func Sanitize(candidate string) string {
	c := strings.TrimSpace(candidate)
	if c == "" || len(c) > maxLen {
		return uuid.NewString()
	}
	for _, r := range c {
		if r < 0x21 || r > 0x7e {
			return uuid.NewString()
		}
	}
	return c
}
