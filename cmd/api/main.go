package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wisewallet/internal/shared/config"
	"wisewallet/internal/shared/logging"
	"wisewallet/internal/shared/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry before anything that creates meters or tracers
	var shutdownTelemetry func(context.Context) error
	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err = telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Server.Environment,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		}, logger)
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
	}

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}

	handler := SetupRoutes(deps, cfg, logger)
	srv, redirectSrv, serverErr := StartServers(NewServerConfigFromConfig(handler, cfg), logger)

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	GracefulShutdown(shutdownCtx, srv, redirectSrv, logger)

	if err := deps.Close(); err != nil {
		logger.Error("error closing dependencies", "error", err)
	}
	if shutdownTelemetry != nil {
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Error("error shutting down telemetry", "error", err)
		}
	}

	return runErr
}
