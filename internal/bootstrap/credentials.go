package bootstrap

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/shopdash/shopdash-ui/config"
	"github.com/shopdash/shopdash-ui/internal/adapters/cookiestore"
	"github.com/shopdash/shopdash-ui/internal/adapters/filestore"
	redisstore "github.com/shopdash/shopdash-ui/internal/adapters/redis"
	httpx "github.com/shopdash/shopdash-ui/internal/http"
	"github.com/shopdash/shopdash-ui/internal/ports"
)

// cliScopePrefix keeps CLI profiles apart from browser handles in redis.
const cliScopePrefix = "cli:"

var errRedisRequired = errors.New("redis client is required for the redis credential store")

// NeedsRedis reports whether the configured credential store lives in redis.
func NeedsRedis(kind config.CredentialStoreKind) bool {
	return kind == config.CredentialStoreRedis
}

// BrowserStores returns the per-request credential store for SESSION_STORE.
// With cookie the token itself is the cookie value; with redis the cookie
// only carries an opaque handle.
func BrowserStores(cfg *config.AppConfig, client redis.UniversalClient) (httpx.CredentialStoreFactory, error) {
	switch cfg.Session.Store {
	case config.CredentialStoreCookie, "":
		cookieCfg := cookiestore.Config{
			Name:   cfg.Session.CookieName,
			Domain: cfg.HTTP.CookieDomain,
			Secure: cfg.IsProduction(),
		}
		return func(w http.ResponseWriter, r *http.Request) ports.CredentialStore {
			return cookiestore.New(cookieCfg, w, r)
		}, nil

	case config.CredentialStoreRedis:
		if client == nil {
			return nil, errRedisRequired
		}
		backend := redisstore.NewCredentialStoreWithPrefix(client, cfg.Session.RedisPrefix)
		cookieCfg := cookiestore.Config{
			Name:   cookiestore.DefaultHandleName,
			Domain: cfg.HTTP.CookieDomain,
			Secure: cfg.IsProduction(),
		}
		return func(w http.ResponseWriter, r *http.Request) ports.CredentialStore {
			return cookiestore.NewHandleStore(cookieCfg, backend, w, r)
		}, nil

	default:
		return nil, fmt.Errorf("session store %q is not available to the web server", cfg.Session.Store)
	}
}

// CLIStore returns the credential store for the configured CLI profile.
func CLIStore(cfg *config.AppConfig, client redis.UniversalClient) (ports.CredentialStore, error) {
	switch cfg.CLI.CredentialStore {
	case config.CredentialStoreFile, "":
		return filestore.New(cfg.CLI.ConfigDir).Scope(cfg.CLI.Profile), nil
	case config.CredentialStoreRedis:
		if client == nil {
			return nil, errRedisRequired
		}
		backend := redisstore.NewCredentialStoreWithPrefix(client, cfg.Session.RedisPrefix)
		return backend.Scope(cliScopePrefix + cfg.CLI.Profile), nil
	default:
		return nil, fmt.Errorf("credential store %q is not available to the CLI", cfg.CLI.CredentialStore)
	}
}
