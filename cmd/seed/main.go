// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Command seed prepares a Motolink database.
//
// # Usage
//
//	seed                      upsert the default branches and the administrator
//	seed --backfill-from=1    also grant role defaults added after catalog v1
//	seed --service-token      print a provisioning token and exit
//
// Every step is idempotent, running the command twice changes nothing.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/johnvilela/motolink/internal/platform/config"
	"github.com/johnvilela/motolink/internal/platform/constants"
	"github.com/johnvilela/motolink/internal/platform/migration"
	pgstore "github.com/johnvilela/motolink/internal/platform/postgres"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/users/account"
)

func main() {
	backfillFrom := flag.Int("backfill-from", -1, "grant role defaults introduced after this catalog version (-1 disables)")
	serviceToken := flag.Bool("service-token", false, "print a provisioning token signed with AUTH_SECRET and exit")
	tokenSubject := flag.String("token-subject", "seed", "subject of the provisioning token")
	tokenTTL := flag.Duration("token-ttl", 30*24*time.Hour, "lifetime of the provisioning token")
	skipMigrations := flag.Bool("skip-migrations", false, "do not apply pending migrations first")
	flag.Parse()

	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", "motolink-seed"))
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadSeed()
	must(log, err, "load seed configuration")

	// ── 3. Service Token ──────────────────────────────────────────────────
	if *serviceToken {
		tokens, err := sec.NewTokenService(cfg.AuthSecret, constants.AuthIssuer, constants.ProvisioningAudience)
		must(log, err, "initialize provisioning tokens")

		token, err := tokens.IssueProvisioningToken(*tokenSubject, *tokenTTL)
		must(log, err, "issue provisioning token")

		fmt.Println(token)
		return
	}

	if cfg.DatabaseURL == "" {
		must(log, fmt.Errorf("DATABASE_URL is required"), "load seed configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// ── 4. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	if !*skipMigrations {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	}

	// ── 5. Branches & Administrator ───────────────────────────────────────
	hasher, err := sec.NewHasher(cfg.AuthSecret, sec.DefaultHashParams)
	must(log, err, "initialize password hasher")

	seeder := &seeder{cfg: cfg, hasher: hasher, logger: log}
	must(log, pgstore.WithTx(ctx, pool, seeder.run(ctx)), "seed branches and administrator")

	// ── 6. Permission Backfill ────────────────────────────────────────────
	if *backfillFrom >= 0 {
		accounts := account.NewService(account.Dependencies{
			Repository: account.NewPostgresRepository(pool),
			Catalog:    sec.DefaultCatalog(),
			Logger:     log,
		})

		for _, role := range []sec.UserRole{sec.RoleManager, sec.RoleUser} {
			updated, err := accounts.GrantDefaultsSince(ctx, role, *backfillFrom)
			must(log, err, "backfill "+string(role)+" permissions")
			log.Info("backfill_done", slog.String("role", string(role)), slog.Int("users_updated", updated))
		}
	}

	log.Info("seed_completed")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("seed failure",
			slog.String("context", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
