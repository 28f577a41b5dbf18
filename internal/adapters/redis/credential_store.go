package redis

// Package redis provides Redis-based adapters for the dashboard session layer.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	"github.com/shopdash/shopdash-ui/internal/ports"
)

// DefaultPrefix namespaces credential keys.
const DefaultPrefix = "shopdash:credential:"

// CredentialStore keeps bearer tokens server-side, one key per scope.
// A scope is an opaque browser handle or a CLI profile name.
// TTL semantics are delegated to Redis key expiry.
type CredentialStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewCredentialStore creates a Redis-backed credential store using DefaultPrefix.
func NewCredentialStore(client redis.UniversalClient) *CredentialStore {
	return NewCredentialStoreWithPrefix(client, DefaultPrefix)
}

// NewCredentialStoreWithPrefix creates a Redis credential store with a custom key prefix.
func NewCredentialStoreWithPrefix(client redis.UniversalClient, prefix string) *CredentialStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &CredentialStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// Scope returns the ports.CredentialStore for one scope key.
func (s *CredentialStore) Scope(key string) ports.CredentialStore {
	return &scopedStore{parent: s, key: key}
}

func (s *CredentialStore) save(ctx context.Context, scope, token string, ttl time.Duration) error {
	if scope == "" {
		return errors.New("credential scope cannot be empty")
	}
	if token == "" {
		return errors.New("credential token cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("credential ttl must be positive")
	}

	cred := domainauth.Credential{Token: token, ExpiresAt: s.now().Add(ttl)}
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+scope, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *CredentialStore) read(ctx context.Context, scope string) (string, error) {
	if scope == "" {
		return "", ports.ErrNoCredential
	}

	data, err := s.client.Get(ctx, s.prefix+scope).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNoCredential
		}
		return "", fmt.Errorf("redis get: %w", err)
	}

	var cred domainauth.Credential
	if unmarshalErr := json.Unmarshal([]byte(data), &cred); unmarshalErr != nil {
		// A corrupt entry is treated as absent; the next Save overwrites it.
		return "", ports.ErrNoCredential
	}

	if cred.Token == "" || cred.Expired(s.now()) {
		if deleteErr := s.clear(ctx, scope); deleteErr != nil {
			return "", fmt.Errorf("cleanup expired credential: %w", deleteErr)
		}
		return "", ports.ErrNoCredential
	}

	return cred.Token, nil
}

func (s *CredentialStore) clear(ctx context.Context, scope string) error {
	if scope == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+scope).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

type scopedStore struct {
	parent *CredentialStore
	key    string
}

func (s *scopedStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	return s.parent.save(ctx, s.key, token, ttl)
}

func (s *scopedStore) Read(ctx context.Context) (string, error) {
	return s.parent.read(ctx, s.key)
}

func (s *scopedStore) Clear(ctx context.Context) error {
	return s.parent.clear(ctx, s.key)
}
