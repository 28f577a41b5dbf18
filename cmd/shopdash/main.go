package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"

	"github.com/shopdash/shopdash-ui/config"
	"github.com/shopdash/shopdash-ui/internal/bootstrap"
)

const appName = "shopdash"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		stop()
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	if cfg.IsDev {
		displayAppName(appName)
	}
	logStartupInfo(ctx, logger, &cfg)

	return bootstrap.RunServer(ctx, &cfg, logger)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting shopdash web",
		"addr", cfg.HTTP.Addr,
		"api_url", cfg.API.URL,
		"session_store", string(cfg.Session.Store),
		"dev_mode", cfg.IsDev)
}

func displayAppName(name string) {
	banner := figure.NewFigure(name, "cybermedium", true)
	fmt.Fprintln(os.Stderr, banner.String())
}
