package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"backoffice/config"
	"backoffice/mockserver"
	"backoffice/pkg/logger"

	"go.uber.org/zap"
)

// App owns the HTTP server and its lifecycle.
type App struct {
	config *config.Config
	mock   *mockserver.Server
	server *http.Server
}

func NewApp(cfg *config.Config, opts ...mockserver.Option) *App {
	mock := mockserver.New(cfg, opts...)
	return &App{
		config: cfg,
		mock:   mock,
		server: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      mock.Handler(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most server.shutdown_timeout.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	logger.Info("Mock backend started",
		zap.String("app", a.config.App.Name),
		zap.String("env", a.config.App.Env),
		zap.String("addr", ln.Addr().String()))
	if a.config.IsDevelopment() {
		logger.Info("Development session issued",
			zap.String("access_token", a.mock.Data().IssueToken("dev")),
			zap.String("otp", a.otp()))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server exited: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down mock backend", zap.Duration("timeout", a.config.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Mock backend stopped")
	return nil
}

func (a *App) otp() string {
	if a.config.Server.DevOTP != "" {
		return a.config.Server.DevOTP
	}
	return mockserver.DefaultOTP
}
