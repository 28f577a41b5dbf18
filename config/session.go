package config

import (
	"fmt"
	"strings"
	"time"
)

// CredentialStoreKind selects where a bearer token is persisted.
type CredentialStoreKind string

const (
	// CredentialStoreCookie keeps the token in the browser cookie.
	CredentialStoreCookie CredentialStoreKind = "cookie"
	// CredentialStoreRedis keeps the token in redis behind an opaque handle.
	CredentialStoreRedis CredentialStoreKind = "redis"
	// CredentialStoreFile keeps the token in the CLI credentials file.
	CredentialStoreFile CredentialStoreKind = "file"
)

// UnmarshalText implements encoding.TextUnmarshaler for CredentialStoreKind.
func (k *CredentialStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "cookie", "redis", "file":
		*k = CredentialStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid credential store: %q (valid options: cookie, redis, file)", v)
	}
}

const defaultSessionTTLDays = 7

// SessionConfig controls how the web server persists browser sessions.
type SessionConfig struct {
	// CookieName is the cookie carrying the token (or the redis handle).
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"authToken"`

	// TTLDays is the credential lifetime in days.
	TTLDays int `env:"SESSION_TTL_DAYS" envDefault:"7"`

	// Store selects the credential store: cookie or redis.
	Store CredentialStoreKind `env:"SESSION_STORE" envDefault:"cookie"`

	// RedisPrefix namespaces credential keys when Store=redis.
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"shopdash:credential:"`
}

// Sanitize restores defaults for empty or out-of-range values.
func (s *SessionConfig) Sanitize() {
	s.CookieName = strings.TrimSpace(s.CookieName)
	if s.CookieName == "" {
		s.CookieName = "authToken"
	}
	if s.TTLDays <= 0 {
		s.TTLDays = defaultSessionTTLDays
	}
	if s.Store == "" {
		s.Store = CredentialStoreCookie
	}
	if s.RedisPrefix = strings.TrimSpace(s.RedisPrefix); s.RedisPrefix == "" {
		s.RedisPrefix = "shopdash:credential:"
	}
}

// TTL returns the credential lifetime.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLDays) * 24 * time.Hour
}
