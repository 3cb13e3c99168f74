package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/changelog"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/instance"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/template"
	"github.com/mkulagin/fencing-club-backend/internal/config"
	"github.com/mkulagin/fencing-club-backend/internal/service/schedule"
	"github.com/mkulagin/fencing-club-backend/internal/transport/middleware"
	"github.com/mkulagin/fencing-club-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects
// to the database, applies migrations, wires the schedule service and
// REST transport, and serves until the process receives SIGINT/SIGTERM.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrateOnStart {
		if err := migrateUp(ctx, cfg.Database, logger); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svc := schedule.NewService(
		logger,
		template.New(pool),
		instance.New(pool),
		changelog.New(pool),
		postgres.NewTxManager(pool),
		cfg.Schedule,
	)

	router := rest.NewRouter(
		rest.NewScheduleHandler(svc, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
	)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
