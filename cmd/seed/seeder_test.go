// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/platform/config"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/users/auth"
)

/*
TestSeeder_Admin checks the administrator the seed upserts.
*/
func TestSeeder_Admin(t *testing.T) {
	hasher, err := sec.NewHasher("pepper", sec.HashParams{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	require.NoError(t, err)

	seeder := &seeder{
		cfg:    &config.SeedConfig{AdminName: "Administrador", AdminEmail: "admin@motolink.com.br", AdminPassword: "Motolink@2026"},
		hasher: hasher,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	admin, err := seeder.admin([]string{"b1", "b2"})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleAdmin, admin.Role)
	assert.Equal(t, auth.StatusActive, admin.Status)
	assert.Equal(t, []string{"b1", "b2"}, admin.Branches)
	require.NotNil(t, admin.Password)
	assert.True(t, hasher.Verify("Motolink@2026", *admin.Password))
}

/*
TestDefaultBranches checks the codes of the seeded branches.
*/
func TestDefaultBranches(t *testing.T) {
	codes := make([]string, 0, len(defaultBranches))
	for _, input := range defaultBranches {
		codes = append(codes, input.Code)
	}
	assert.Equal(t, []string{"RJ", "SP", "CAM"}, codes)
}
