package main

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

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/epdtext-web/internal/adapter/httpserver"
	"github.com/pscheid92/epdtext-web/internal/adapter/ipc"
	"github.com/pscheid92/epdtext-web/internal/adapter/metrics"
	"github.com/pscheid92/epdtext-web/internal/app"
	"github.com/pscheid92/epdtext-web/internal/domain"
	"github.com/pscheid92/epdtext-web/internal/platform/config"
	"github.com/pscheid92/epdtext-web/internal/platform/logging"
	"github.com/pscheid92/epdtext-web/internal/platform/version"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// openChannel is replaced in tests.
var openChannel = ipc.Open

func setupConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func channelOptions(cfg *config.Config) ipc.Options {
	return ipc.Options{
		Backend:        cfg.IPCBackend,
		QueueName:      cfg.IPCQueueName,
		MemoryCapacity: cfg.IPCMemoryCapacity,
		OpenAttempts:   cfg.IPCOpenAttempts,
		OpenBackoff:    cfg.IPCOpenBackoff,
	}
}

// setupChannel opens the renderer queue. Any failure, a missing permission
// included, stops startup.
func setupChannel(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (domain.Channel, error) {
	channel, err := openChannel(ctx, channelOptions(cfg), clock)
	if err != nil {
		if errors.Is(err, ipc.ErrPermissionDenied) {
			slog.Error("No permission to open the message queue; run as the renderer's user or fix the queue mode", "queue", cfg.IPCQueueName, "error", err)
		} else {
			slog.Error("Failed to open message queue", "queue", cfg.IPCQueueName, "error", err)
		}
		return nil, err
	}
	return channel, nil
}

// drainMemoryQueue stands in for the renderer when the memory backend is used.
func drainMemoryQueue(ctx context.Context, q *ipc.MemoryQueue) {
	for {
		msg, err := q.Receive(ctx)
		if err != nil {
			return
		}
		slog.Info("Renderer command received", "message", msg)
	}
}

func runGracefulShutdown(srv *httpserver.Server, channel domain.Channel, stopDrain context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		// In-flight handlers are done; nothing sends after this point.
		stopDrain()
		if err := channel.Close(); err != nil {
			slog.Error("Failed to close message queue", "error", err)
		}

		close(done)
	}()

	return done
}

func runServe(_ *cobra.Command, _ []string) error {
	clock := clockwork.NewRealClock()

	cfg, err := setupConfig()
	if err != nil {
		return err
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Get().Version)

	auth := app.NewAuthenticator(cfg.AuthUsername, cfg.AuthPassword)
	if auth.UsesDefaultPassword() {
		slog.Warn("Using the default password; set AUTH_PASSWORD before exposing this server")
	}

	registry := metrics.NewRegistry()
	commandMetrics := metrics.NewCommandMetrics(registry)

	channel, err := setupChannel(context.Background(), cfg, clock)
	if err != nil {
		return err
	}

	drainCtx, stopDrain := context.WithCancel(context.Background())
	defer stopDrain()
	if mq, ok := channel.(*ipc.MemoryQueue); ok {
		go drainMemoryQueue(drainCtx, mq)
	}

	commands := app.NewCommandService(channel, cfg.IPCSendTimeout, commandMetrics, clock)

	deps := httpserver.Dependencies{
		Commands:   commands,
		Auth:       auth,
		Rejections: commandMetrics,
		Registry:   registry,
		Clock:      clock,
	}
	if inspector, ok := channel.(httpserver.QueueInspector); ok {
		deps.Queue = inspector
		deps.HealthChecks = []httpserver.HealthCheck{httpserver.QueueHealthCheck(inspector)}
	}

	srv, err := httpserver.NewServer(cfg, deps)
	if err != nil {
		_ = channel.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	done := runGracefulShutdown(srv, channel, stopDrain)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_ = channel.Close()
		return err
	}

	<-done
	slog.Info("Shutdown complete")
	return nil
}
