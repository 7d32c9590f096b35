// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (principal, branch scope,
// request ID, logger). Using a private, unexported type for keys prevents
// collisions with third-party packages that might also use context for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyPrincipal is the context key for the verified [sec.Principal].
	KeyPrincipal key = "principal"

	// KeyBranch is the context key for the resolved branch scope.
	KeyBranch key = "branch"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"

	// KeyClientIP is the context key for the caller address resolved by the
	// proxy-aware middleware.
	KeyClientIP key = "client_ip"
)
