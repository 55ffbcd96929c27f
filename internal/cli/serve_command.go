package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"timesheet/internal/handler"
	"timesheet/internal/metrics"
	"timesheet/internal/middleware"
)

// loginPurgeInterval is how often expired login sessions are removed.
const loginPurgeInterval = time.Hour

// ServeCommand runs the HTTP API until ctx is cancelled.
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute starts the server and blocks until shutdown completes.
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	cfg := c.app.config

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	limiter := middleware.NewRateLimiter(
		middleware.NewRateLimiterConfig(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
		collector,
	)
	defer limiter.Stop()

	router := handler.NewRouter(handler.RouterDeps{
		Services:    c.app.services,
		Config:      cfg,
		Logger:      slog.Default(),
		Metrics:     collector,
		Gatherer:    reg,
		RateLimiter: limiter,
		Pinger:      c.app.repo,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go c.purgeLoop(ctx, loginPurgeInterval)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("API server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server listen error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// purgeLoop removes expired login sessions once at start and then every interval.
func (c *ServeCommand) purgeLoop(ctx context.Context, interval time.Duration) {
	c.purge(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.purge(ctx)
		}
	}
}

func (c *ServeCommand) purge(ctx context.Context) {
	removed, err := c.app.services.UserService.PurgeExpiredLogins(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("login purge failed", slog.String("error", err.Error()))
		}
		return
	}
	if removed > 0 {
		slog.Info("expired logins purged", slog.Int64("removed", removed))
	}
}
