package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/giquina/armora-sub001/internal/infra/config"
)

// SessionSweeper evicts idle booking sessions.
type SessionSweeper interface {
	Sweep() int
}

const sweepInterval = time.Minute

// App encapsulates the HTTP server lifecycle and background housekeeping.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	sweeper SessionSweeper
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, sweeper SessionSweeper) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, sweeper: sweeper}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.sweepSessions(sweepCtx)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) sweepSessions(ctx context.Context) {
	if a.sweeper == nil {
		return
	}
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.sweeper.Sweep(); n > 0 {
				a.logger.Info("expired booking sessions removed", "count", n)
			}
		}
	}
}
