package bootstrap

import (
	"log/slog"

	"github.com/shopdash/shopdash-ui/config"
	"github.com/shopdash/shopdash-ui/internal/observability/statsd"
)

// Observability holds the metrics sink shared by the API client and sessions.
type Observability struct {
	Metrics statsd.Sink
	client  *statsd.Client
}

// Close flushes buffered metrics.
func (o Observability) Close() error { return o.client.Close() }

// BuildObservability configures the StatsD sink. A failed dial only disables
// metrics; the process keeps serving.
func BuildObservability(logger *slog.Logger, cfg config.ObservabilityConfig, component string) Observability {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Metrics.IsEnabled() {
		return Observability{Metrics: statsd.Discard}
	}

	client, err := statsd.NewClient(statsd.Config{
		Enabled:    true,
		Address:    cfg.Metrics.StatsdAddress,
		Prefix:     cfg.Metrics.Prefix,
		Logger:     logger,
		GlobalTags: map[string]string{"component": component},
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return Observability{Metrics: statsd.Discard}
	}
	logger.Info("statsd metrics enabled", "addr", cfg.Metrics.StatsdAddress, "prefix", cfg.Metrics.Prefix)
	return Observability{Metrics: client, client: client}
}
