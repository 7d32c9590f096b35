// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Command api is the entry point for the Motolink HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Connect to RabbitMQ when AMQP_URL is set.
//  7. Wire services and HTTP handlers.
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

	"github.com/johnvilela/motolink/internal/api"
	"github.com/johnvilela/motolink/internal/core/branch"
	"github.com/johnvilela/motolink/internal/core/client"
	"github.com/johnvilela/motolink/internal/core/deliveryman"
	"github.com/johnvilela/motolink/internal/core/group"
	"github.com/johnvilela/motolink/internal/core/region"
	"github.com/johnvilela/motolink/internal/platform/config"
	"github.com/johnvilela/motolink/internal/platform/constants"
	"github.com/johnvilela/motolink/internal/platform/migration"
	"github.com/johnvilela/motolink/internal/platform/mq"
	pgstore "github.com/johnvilela/motolink/internal/platform/postgres"
	redisstore "github.com/johnvilela/motolink/internal/platform/redis"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/system/audit"
	"github.com/johnvilela/motolink/internal/users/account"
	"github.com/johnvilela/motolink/internal/users/auth"
	"github.com/johnvilela/motolink/internal/users/invite"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Motolink] service_initializing")

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
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
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

	// ── 6. RabbitMQ ───────────────────────────────────────────────────────
	health := api.HealthDependencies{
		CheckDatabase: func() error { return pgstore.Ping(context.Background(), pool) },
		CheckCache:    func() error { return redisstore.Ping(context.Background(), rdb) },
	}

	var publisher invite.Publisher = invite.NewLogPublisher(log)
	if cfg.AMQPURL != "" {
		broker, err := mq.Dial(cfg.AMQPURL, log)
		must(log, err, "connect to rabbitmq")
		defer func() {
			if cerr := broker.Close(); cerr != nil {
				log.Warn("amqp close error", slog.Any("error", cerr))
			}
		}()

		must(log, broker.DeclareQueue(constants.QueueInvites), "declare invitation queue")
		publisher = invite.NewAMQPPublisher(broker.Channel(), constants.QueueInvites)
		health.CheckBroker = broker.Ping
	} else {
		log.Warn("amqp_disabled", slog.String("reason", "AMQP_URL is empty, invitations are only logged"))
	}

	// ── 7. Security ───────────────────────────────────────────────────────
	hasher, err := sec.NewHasher(cfg.AuthSecret, sec.DefaultHashParams)
	must(log, err, "initialize password hasher")

	tokens, err := sec.NewTokenService(cfg.AuthSecret, constants.AuthIssuer, constants.ProvisioningAudience)
	must(log, err, "initialize provisioning tokens")

	catalog := sec.DefaultCatalog()

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	auditService := audit.NewService(audit.NewPostgresRepository(pool), log)

	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	inviteRepository := auth.NewInviteTokenRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, inviteRepository, hasher, cfg.SessionTTL(), log)

	accountService := account.NewService(account.Dependencies{
		Repository: account.NewPostgresRepository(pool),
		Sessions:   sessionRepository,
		Invites:    inviteRepository,
		Publisher:  publisher,
		Hasher:     hasher,
		Recorder:   auditService,
		Catalog:    catalog,
		AppBaseURL: cfg.AppBaseURL,
		Logger:     log,
	})

	branchService := branch.NewService(branch.NewPostgresRepository(pool), auditService, log)
	regionService := region.NewService(region.NewPostgresRepository(pool), auditService, log)
	groupService := group.NewService(group.NewPostgresRepository(pool), auditService, log)
	deliverymanService := deliveryman.NewService(deliveryman.NewPostgresRepository(pool), regionService, auditService, log)
	clientService := client.NewService(client.NewPostgresRepository(pool), regionService, groupService, auditService, log)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Sessions:      auth.NewHandler(authService, cfg.SecureCookies()),
		Users:         account.NewHandler(accountService, tokens),
		Branches:      branch.NewHandler(branchService),
		Regions:       region.NewHandler(regionService),
		Groups:        group.NewHandler(groupService),
		Deliverymen:   deliveryman.NewHandler(deliverymanService),
		Clients:       client.NewHandler(clientService),
		HistoryTraces: audit.NewHandler(auditService),
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server, err := api.NewServer(appCtx, cfg, log, authService, handlers)
	must(log, err, "build http server")

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
