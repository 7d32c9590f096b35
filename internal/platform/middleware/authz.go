// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/constants"
	"github.com/johnvilela/motolink/internal/platform/ctxutil"
	"github.com/johnvilela/motolink/internal/platform/respond"
	"github.com/johnvilela/motolink/internal/platform/sec"
)

// ProvisioningVerifier verifies the service token of machine callers.
type ProvisioningVerifier interface {
	VerifyProvisioningToken(tokenString string) (*sec.ProvisioningClaims, error)
}

// UnauthorizedLocation builds the page the browser is sent to when a
// permission check fails.
func UnauthorizedLocation(moduleName string) string {
	query := url.Values{constants.QueryModuleName: {moduleName}}
	return constants.PathUnauthorized + "?" + query.Encode()
}

/*
EnforcePermissions reports whether user holds every required permission.

When the check fails the response is already written: a 403 JSON error for
API requests, a 303 redirect to the unauthorized page otherwise. Callers must
stop processing when it returns false.

Parameters:
  - writer: http.ResponseWriter
  - request: *http.Request
  - user: *sec.Principal (nil is treated as missing every permission)
  - required: []string (catalog keys, e.g. "users.delete")
  - moduleName: string (label shown on the unauthorized page)

Returns:
  - bool: true if processing may continue
*/
func EnforcePermissions(writer http.ResponseWriter, request *http.Request, user *sec.Principal, required []string, moduleName string) bool {
	if sec.HasPermissions(user, required) {
		return true
	}

	if IsAPIRequest(request) {
		if user == nil {
			respond.Error(writer, request, apperr.Unauthorized("Autenticação necessária"))
			return false
		}
		respond.Error(writer, request, apperr.Forbidden("Você não tem permissão para acessar "+moduleName))
		return false
	}

	respond.Redirect(writer, request, UnauthorizedLocation(moduleName))
	return false
}

// RequirePermissions mounts [EnforcePermissions] as a router middleware.
func RequirePermissions(moduleName string, required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user := ctxutil.GetPrincipal(request.Context())
			if !EnforcePermissions(writer, request, user, required, moduleName) {
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Guard].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Autenticação necessária"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated user doesn't have the
// required role. ADMIN satisfies every role.
//
// # Flow
//  1. Check if [*sec.Principal] exists in context (implies AuthN).
//  2. Compare the role, letting administrators through.
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Autenticação necessária"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !principal.IsAdmin() && principal.Role != role {
				respond.Error(writer, request, apperr.Forbidden("Permissão insuficiente"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireServiceToken admits machine callers presenting a valid
// provisioning token in 'Authorization: Bearer <token>'.
func RequireServiceToken(verifier ProvisioningVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			scheme, token, found := strings.Cut(request.Header.Get(constants.HeaderAuthorization), " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Token de serviço ausente"))
				return
			}

			if _, err := verifier.VerifyProvisioningToken(token); err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Token de serviço inválido"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
