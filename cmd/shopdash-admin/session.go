package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	"github.com/shopdash/shopdash-ui/internal/bootstrap"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/observability/statsd"
	"github.com/shopdash/shopdash-ui/internal/ports"
	"github.com/shopdash/shopdash-ui/internal/service"
)

const commandTimeout = 2 * time.Minute

var (
	errSessionExpired = errors.New("session expired; run shopdash-admin login")
	errNotLoggedIn    = errors.New("not logged in; run shopdash-admin login")
)

// cliSession is the profile's Session plus the client it drives.
type cliSession struct {
	session *service.Session
	api     *shopapi.Client
	store   ports.CredentialStore
	redis   redis.UniversalClient
	// hadCredential records whether the profile held a token before Initialize.
	hadCredential bool
}

// openSession builds the profile Session and rehydrates it from the
// configured credential store.
func openSession(cmdCtx *commandContext) (*cliSession, error) {
	cfg := &cmdCtx.Config
	s := &cliSession{}

	if bootstrap.NeedsRedis(cfg.CLI.CredentialStore) {
		client, err := bootstrap.ConnectRedis(cmdCtx.Ctx, bootstrap.RedisParams{Config: cfg.Redis, Logger: cmdCtx.Logger})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		s.redis = client
	}

	store, err := bootstrap.CLIStore(cfg, s.redis)
	if err != nil {
		s.Close(cmdCtx)
		return nil, err
	}
	api, err := bootstrap.NewAPIClient(cfg.API, cmdCtx.Logger, statsd.Discard)
	if err != nil {
		s.Close(cmdCtx)
		return nil, err
	}
	s.store = store
	s.api = api
	s.session = service.NewSession(service.SessionOptions{
		API:   api,
		Store: store,
		Config: service.SessionConfig{
			TTL:    cfg.Session.TTL(),
			Logger: cmdCtx.Logger,
		},
	})

	if token, readErr := store.Read(cmdCtx.Ctx); readErr == nil && token != "" {
		s.hadCredential = true
	}
	s.session.Initialize(cmdCtx.Ctx)
	return s, nil
}

// Close releases the redis connection, if any.
func (s *cliSession) Close(cmdCtx *commandContext) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Close(); err != nil {
		cmdCtx.Logger.Warn("redis close failed", "error", err)
	}
}

func (s *cliSession) requireAuth() error {
	if s.session.IsAuthenticated() {
		return nil
	}
	if s.hadCredential {
		return errSessionExpired
	}
	return errNotLoggedIn
}

// withSession runs fn against a signed-in profile session. A 401 from the
// API has already torn the session down by the time fn returns.
func withSession(cmdCtx *commandContext, fn func(ctx context.Context, s *cliSession) error) error {
	s, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	defer s.Close(cmdCtx)
	if err = s.requireAuth(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()
	return translateAPIError(fn(ctx, s))
}

func translateAPIError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsUnauthenticated(err) {
		return errSessionExpired
	}
	return err
}

// apiFailure labels err with what the command was doing.
func apiFailure(err error, action string) error {
	if err == nil || apperrors.IsUnauthenticated(err) {
		return err
	}
	return fmt.Errorf("%s: %w", action, err)
}
