// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, cookie names and cross-cutting keys
that are shared between different layers of the system.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "motolink-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session Cookies

const (
	CookieSessionToken     = "motolink_session_token"
	CookieSessionExpiresAt = "motolink_session_expires_at"
	CookieUserID           = "motolink_user_id"
	CookieSelectedBranch   = "motolink_selected_branch"

	// SelectedBranchMaxAge keeps the branch choice for a year.
	SelectedBranchMaxAge = 365 * 24 * 60 * 60
)

// # Navigation

const (
	PathLogin        = "/login"
	PathFirstLogin   = "/primeiro-login"
	PathUnauthorized = "/nao-autorizado"
	PathAPIPrefix    = "/api/"

	// QueryModuleName carries the denied module label to the unauthorized page.
	QueryModuleName = "moduleName"
)

// # Authentication

const (
	// AuthIssuer is the 'iss' claim of provisioning tokens.
	AuthIssuer = "motolink.com.br"

	// ProvisioningAudience is the 'aud' claim of provisioning tokens.
	ProvisioningAudience = "motolink-provisioning"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes

const (
	RedisPrefixInviteToken = "auth:invite_token:"
)

// # Messaging

const (
	// QueueInvites carries collaborator invitations to the mail worker.
	QueueInvites = "motolink.invites"
)
