// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnvilela/motolink/internal/platform/ctxutil"
	"github.com/johnvilela/motolink/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Principal verifies that the principal and branch scope travel
through the context.
*/
func TestContext_Principal(t *testing.T) {
	ctx := context.Background()
	principal := &sec.Principal{UserID: "user-123", Role: sec.RoleManager}

	assert.Nil(t, ctxutil.GetPrincipal(ctx))
	assert.Empty(t, ctxutil.GetBranch(ctx))

	ctx = ctxutil.WithPrincipal(ctx, principal)
	ctx = ctxutil.WithBranch(ctx, "branch-1")

	retrieved := ctxutil.GetPrincipal(ctx)
	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Equal(t, sec.RoleManager, retrieved.Role)
	assert.Equal(t, "branch-1", ctxutil.GetBranch(ctx))
}
