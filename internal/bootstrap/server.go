package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopdash/shopdash-ui/config"
	httpx "github.com/shopdash/shopdash-ui/internal/http"
	"github.com/shopdash/shopdash-ui/internal/service"
)

const shutdownWaitTimeout = 10 * time.Second

// RunServer wires the web server from cfg and blocks until a shutdown
// signal arrives, ctx is canceled or the listener fails.
func RunServer(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return err
	}

	obs := BuildObservability(logger, cfg.Observability, "web")
	defer func() {
		if err := obs.Close(); err != nil {
			logger.Warn("close statsd client failed", "error", err)
		}
	}()

	var redisClient redis.UniversalClient
	if NeedsRedis(cfg.Session.Store) {
		client, err := ConnectRedis(ctx, RedisParams{Config: cfg.Redis, Logger: logger})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		redisClient = client
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Error("close redis failed", "error", cerr)
			}
		}()
	}

	router, err := NewRouterServices(cfg, redisClient, obs, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	server, err := StartHTTPServer(&HTTPServerConfig{Config: cfg, Router: router, Logger: logger}, errCh)
	if err != nil {
		return err
	}

	return waitForShutdown(shutdownConfig{
		ctx:        ctx,
		errCh:      errCh,
		httpServer: server,
		logger:     logger,
	})
}

// NewRouterServices assembles the router dependencies from configuration.
func NewRouterServices(
	cfg *config.AppConfig,
	redisClient redis.UniversalClient,
	obs Observability,
	logger *slog.Logger,
) (httpx.RouterServices, error) {
	stores, err := BrowserStores(cfg, redisClient)
	if err != nil {
		return httpx.RouterServices{}, err
	}
	api, err := NewAPIClient(cfg.API, logger, obs.Metrics)
	if err != nil {
		return httpx.RouterServices{}, err
	}

	return httpx.RouterServices{
		API:    api,
		Stores: stores,
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Logger: logger,
		}),
		Session: service.SessionConfig{
			TTL:     cfg.Session.TTL(),
			Logger:  logger,
			Metrics: obs.Metrics,
		},
		CookieDomain: cfg.HTTP.CookieDomain,
		CookieSecure: cfg.IsProduction(),
		IsDev:        cfg.IsDev,
		Logger:       logger,
	}, nil
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx        context.Context
	errCh      <-chan error
	httpServer *http.Server
	logger     *slog.Logger
}

// waitForShutdown waits for a shutdown signal, context cancellation or a
// server error, then stops the HTTP server.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		cfg.logger.Info("shutting down...")
	case <-cfg.ctx.Done():
		cfg.logger.Info("context canceled, shutting down...")
	case runErr = <-cfg.errCh:
		cfg.logger.Error("server error", "error", runErr)
	}

	// The parent context may already be canceled; shutdown gets its own deadline.
	stopErr := ShutdownHTTPServer(context.WithoutCancel(cfg.ctx), cfg.httpServer, cfg.logger)
	if stopErr != nil && runErr == nil {
		return stopErr
	}
	if stopErr != nil {
		cfg.logger.Error("graceful stop failed", "error", stopErr)
	}
	if errors.Is(runErr, http.ErrServerClosed) {
		return nil
	}
	return runErr
}
