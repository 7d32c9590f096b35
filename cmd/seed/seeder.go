// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/johnvilela/motolink/internal/core/branch"
	"github.com/johnvilela/motolink/internal/platform/config"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/users/account"
	"github.com/johnvilela/motolink/internal/users/auth"
	"github.com/johnvilela/motolink/pkg/uuid"
)

// defaultBranches are the operating branches every installation starts with.
var defaultBranches = []branch.Input{
	{Code: "RJ", Name: "Rio de Janeiro"},
	{Code: "SP", Name: "São Paulo"},
	{Code: "CAM", Name: "Campinas"},
}

type seeder struct {
	cfg    *config.SeedConfig
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// run returns the transaction body that upserts branches and the administrator.
func (seeder *seeder) run(context context.Context) func(tx pgx.Tx) error {
	return func(tx pgx.Tx) error {
		branchIDs := make([]string, 0, len(defaultBranches))
		for _, input := range defaultBranches {
			seeded := &branch.Branch{ID: uuid.New(), Code: input.Code, Name: input.Name}
			if err := branch.Upsert(context, tx, seeded); err != nil {
				return fmt.Errorf("seed_branch_%s_failed: %w", input.Code, err)
			}
			branchIDs = append(branchIDs, seeded.ID)
			seeder.logger.Info("branch_seeded", slog.String("code", seeded.Code), slog.String("branch_id", seeded.ID))
		}

		if seeder.cfg.AdminPassword == "" {
			seeder.logger.Warn("admin_seed_skipped", slog.String("reason", "SEED_ADMIN_PASSWORD is empty"))
			return nil
		}

		admin, err := seeder.admin(branchIDs)
		if err != nil {
			return err
		}
		if err := account.UpsertAdmin(context, tx, admin); err != nil {
			return fmt.Errorf("seed_admin_failed: %w", err)
		}

		seeder.logger.Info("admin_seeded", slog.String("user_id", admin.ID), slog.String("email", admin.Email))
		return nil
	}
}

// admin builds the ACTIVE administrator assigned to branchIDs.
func (seeder *seeder) admin(branchIDs []string) (*auth.User, error) {
	hash, err := seeder.hasher.Hash(seeder.cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("seed_admin_hash_failed: %w", err)
	}

	return &auth.User{
		ID:          uuid.New(),
		Name:        seeder.cfg.AdminName,
		Email:       seeder.cfg.AdminEmail,
		Password:    &hash,
		Role:        sec.RoleAdmin,
		Permissions: []string{},
		Branches:    branchIDs,
		Status:      auth.StatusActive,
	}, nil
}
