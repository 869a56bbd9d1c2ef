// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the TellNab helpdesk API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Start the realtime hub and, in redis mode, the relay subscriber.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tellnab/tellnab/internal/api"
	"github.com/tellnab/tellnab/internal/platform/config"
	"github.com/tellnab/tellnab/internal/platform/constants"
	"github.com/tellnab/tellnab/internal/platform/middleware"
	"github.com/tellnab/tellnab/internal/platform/migration"
	pgstore "github.com/tellnab/tellnab/internal/platform/postgres"
	redisstore "github.com/tellnab/tellnab/internal/platform/redis"
	"github.com/tellnab/tellnab/internal/platform/sec"
	"github.com/tellnab/tellnab/internal/realtime"
	"github.com/tellnab/tellnab/internal/support/access"
	"github.com/tellnab/tellnab/internal/support/department"
	"github.com/tellnab/tellnab/internal/support/ticket"
	"github.com/tellnab/tellnab/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("broadcast", cfg.Realtime.Broadcast),
	)

	// Root context lives until a shutdown signal arrives.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Startup gets a deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Identity ───────────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	authService := auth.NewService(
		auth.NewUserRepository(pool),
		auth.NewSessionRepository(rdb),
		jwtSvc,
		auth.Options{AllowRawIdentifier: cfg.Realtime.AllowRawIdentifier},
		log,
	)

	// ── 7. Realtime Relay ─────────────────────────────────────────────────
	hub := realtime.NewHub(api.RelayValidator(authService), log)
	go hub.Run(rootCtx)

	var notifier ticket.Notifier = hub
	if cfg.Realtime.Broadcast == config.BroadcastRedis {
		notifier = realtime.NewRedisNotifier(rdb, cfg.Realtime.RedisChannel)
		go realtime.NewRedisSubscriber(rdb, cfg.Realtime.RedisChannel, hub, log).Run(rootCtx)
	}

	realtimeHandler := realtime.NewHandler(rootCtx, hub, cfg.Realtime, func(origin string) bool {
		return middleware.OriginAllowed(cfg, origin)
	}, log)

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers([]api.HealthCheck{
		{Name: "postgres", Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
		{Name: "relay", Check: func(ctx context.Context) error {
			_, err := hub.Stats(ctx)
			return err
		}},
	}, log)

	// ── 9. Support Domain ─────────────────────────────────────────────────
	accessService := access.NewService(access.NewPostgresRepository(pool), log)
	departmentService := department.NewService(department.NewPostgresRepository(pool), log)
	ticketService := ticket.NewService(ticket.NewPostgresRepository(pool), notifier, log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Auth:        auth.NewHandler(authService),
		Access:      access.NewHandler(accessService),
		Departments: department.NewHandler(departmentService, accessService),
		Tickets:     ticket.NewHandler(ticketService, accessService),
		Realtime:    realtimeHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
		stop()
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	// The hub closes every open socket once the root context is cancelled.
	select {
	case <-hub.Done():
	case <-time.After(shutdownTimeout):
		log.Warn("realtime hub did not stop in time")
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
