package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/shopdash/shopdash-ui/config"
	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	"github.com/shopdash/shopdash-ui/internal/observability/statsd"
)

// NewAPIClient builds the dashboard API client both binaries share.
func NewAPIClient(cfg config.APIConfig, logger *slog.Logger, metrics statsd.Sink) (*shopapi.Client, error) {
	client, err := shopapi.NewClient(shopapi.Config{
		BaseURL:   cfg.URL,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Logger:    logger,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard api client: %w", err)
	}
	return client, nil
}
