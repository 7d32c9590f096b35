// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/constants"
	"github.com/johnvilela/motolink/internal/platform/ctxutil"
	"github.com/johnvilela/motolink/internal/platform/respond"
	"github.com/johnvilela/motolink/internal/platform/sec"
)

const (
	msgNoBranch    = "Nenhuma filial atribuída ao usuário"
	moduleBranches = "Filiais"
)

// SessionResolver turns a session token into the principal that owns it.
//
// It must fail with an [apperr.AppError] (401) when the token is unknown,
// expired or belongs to an account that can no longer sign in.
type SessionResolver interface {
	Resolve(context context.Context, token string) (*sec.Principal, error)
}

// GuardPolicy configures which paths the route guard lets through.
//
// Entries are either a path ("/login"), a path prefix ending with "/"
// ("/assets/") or a method-qualified path ("POST /api/sessions").
type GuardPolicy struct {
	// PublicPaths are reachable without a session.
	PublicPaths []string

	// PublicOnlyPaths are reachable without a session and redirect
	// authenticated users to their landing page.
	PublicOnlyPaths []string

	// DefaultBranchID is the fallback for users without branches.
	DefaultBranchID string

	// SecureCookies sets the Secure attribute on repaired cookies.
	SecureCookies bool

	// Now is the clock used for the cookie expiry pre-check.
	Now func() time.Time
}

// Guard verifies the session of every request before handlers run.
//
// # Flow
//  1. Read the session token and expiry cookies.
//  2. Reject an expired cookie without a store round-trip.
//  3. Re-verify the token against the session store on every request, so a
//     logout, soft delete or status change takes effect immediately.
//  4. Without a valid session on a protected path: 401 JSON for /api/*,
//     redirect to /login for pages.
//  5. With a valid session on a public-only path: redirect to the landing page.
//  6. Resolve the selected branch and repair its cookie. A non-administrator
//     without any branch is refused (403 JSON, unauthorized page otherwise).
//  7. Inject principal and branch into the context.
func Guard(resolver SessionResolver, policy GuardPolicy) func(http.Handler) http.Handler {
	if policy.Now == nil {
		policy.Now = time.Now
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			isPublicOnly := matchesAny(policy.PublicOnlyPaths, request)
			isPublic := isPublicOnly || matchesAny(policy.PublicPaths, request)

			principal, err := authenticate(request, resolver, policy.Now)

			// ── 1. Anonymous ──────────────────────────────────────────────────
			if principal == nil {
				if isPublic {
					next.ServeHTTP(writer, request)
					return
				}

				// Store failures are server errors, not missing sessions
				if err != nil && !apperr.IsAppError(err) {
					respond.Error(writer, request, err)
					return
				}

				if IsAPIRequest(request) {
					if err == nil {
						err = apperr.Unauthorized("Autenticação necessária")
					}
					respond.Error(writer, request, err)
					return
				}

				ClearSessionCookies(writer, policy.SecureCookies)
				respond.Redirect(writer, request, constants.PathLogin)
				return
			}

			// ── 2. Authenticated on a public-only page ────────────────────────
			if isPublicOnly {
				respond.Redirect(writer, request, sec.LandingPath(principal.Role))
				return
			}

			// ── 3. Branch scope ───────────────────────────────────────────────
			selection := sec.ResolveBranch(principal, cookieValue(request, constants.CookieSelectedBranch), policy.DefaultBranchID)
			if selection.ID == "" && !principal.IsAdmin() && !isPublic {
				denyUnscoped(writer, request)
				return
			}
			if selection.Repaired && selection.ID != "" {
				SetSelectedBranch(writer, selection.ID, policy.SecureCookies)
			}

			// ── 4. Context injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			ctx = ctxutil.WithBranch(ctx, selection.ID)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", principal.UserID)))

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// authenticate returns the principal of the request, or nil with the reason.
// A request without a token cookie yields (nil, nil).
func authenticate(request *http.Request, resolver SessionResolver, now func() time.Time) (*sec.Principal, error) {
	token := SessionToken(request)
	if token == "" {
		return nil, nil
	}

	// Cookie expiry is advisory; an unparseable value defers to the store.
	if raw := cookieValue(request, constants.CookieSessionExpiresAt); raw != "" {
		if expiresAt, err := time.Parse(time.RFC3339, raw); err == nil && now().After(expiresAt) {
			return nil, apperr.SessionExpired()
		}
	}

	principal, err := resolver.Resolve(request.Context(), token)
	if err != nil {
		return nil, err
	}
	return principal, nil
}

// denyUnscoped refuses a non-administrator left without any branch.
func denyUnscoped(writer http.ResponseWriter, request *http.Request) {
	if IsAPIRequest(request) {
		respond.Error(writer, request, apperr.Forbidden(msgNoBranch))
		return
	}
	respond.Redirect(writer, request, UnauthorizedLocation(moduleBranches))
}

// IsAPIRequest reports whether the request targets the JSON API.
func IsAPIRequest(request *http.Request) bool {
	return strings.HasPrefix(request.URL.Path, constants.PathAPIPrefix)
}

// matchesAny reports whether any policy entry matches the request.
func matchesAny(entries []string, request *http.Request) bool {
	for _, entry := range entries {
		method, path, qualified := strings.Cut(entry, " ")
		if !qualified {
			path = method
			method = ""
		}

		if method != "" && method != request.Method {
			continue
		}

		if strings.HasSuffix(path, "/") && path != "/" {
			if strings.HasPrefix(request.URL.Path, path) {
				return true
			}
			continue
		}

		if request.URL.Path == path {
			return true
		}
	}
	return false
}
