// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/constants"
	"github.com/johnvilela/motolink/internal/platform/ctxutil"
	"github.com/johnvilela/motolink/internal/platform/middleware"
	"github.com/johnvilela/motolink/internal/platform/sec"
)

type stubResolver struct {
	principals map[string]*sec.Principal
	err        error
	calls      int
}

func (resolver *stubResolver) Resolve(_ context.Context, token string) (*sec.Principal, error) {
	resolver.calls++
	if resolver.err != nil {
		return nil, resolver.err
	}
	principal, ok := resolver.principals[token]
	if !ok {
		return nil, apperr.Unauthorized("Sessão inválida")
	}
	return principal, nil
}

var guardNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newGuard(resolver middleware.SessionResolver) func(http.Handler) http.Handler {
	return middleware.Guard(resolver, middleware.GuardPolicy{
		PublicPaths:     []string{constants.PathFirstLogin, "POST /api/sessions", "/assets/"},
		PublicOnlyPaths: []string{constants.PathLogin, "/"},
		DefaultBranchID: "default-branch",
		Now:             func() time.Time { return guardNow },
	})
}

// echoHandler reports the principal and branch the guard injected.
func echoHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		if principal != nil {
			writer.Header().Set("X-User", principal.UserID)
		}
		writer.Header().Set("X-Branch", ctxutil.GetBranch(request.Context()))
		writer.WriteHeader(http.StatusOK)
	})
}

func withSession(request *http.Request, token string, expiresAt time.Time) *http.Request {
	request.AddCookie(&http.Cookie{Name: constants.CookieSessionToken, Value: token})
	request.AddCookie(&http.Cookie{Name: constants.CookieSessionExpiresAt, Value: expiresAt.Format(time.RFC3339)})
	return request
}

func findCookie(recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

/*
TestGuard_Anonymous checks the routing decisions for requests without a session.
*/
func TestGuard_Anonymous(t *testing.T) {
	handler := newGuard(&stubResolver{})(echoHandler())

	tests := []struct {
		name     string
		method   string
		path     string
		status   int
		location string
	}{
		{"login_page_public", http.MethodGet, "/login", http.StatusOK, ""},
		{"first_login_public", http.MethodGet, "/primeiro-login", http.StatusOK, ""},
		{"asset_prefix_public", http.MethodGet, "/assets/app.js", http.StatusOK, ""},
		{"login_endpoint_public", http.MethodPost, "/api/sessions", http.StatusOK, ""},
		{"session_get_protected", http.MethodGet, "/api/sessions", http.StatusUnauthorized, ""},
		{"api_protected", http.MethodGet, "/api/users", http.StatusUnauthorized, ""},
		{"page_protected", http.MethodGet, "/app/dashboard", http.StatusSeeOther, "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, recorder.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, recorder.Header().Get("Location"))
			}
		})
	}
}

/*
TestGuard_ExpiredCookie checks that an expired cookie is rejected before the
store is consulted.
*/
func TestGuard_ExpiredCookie(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*sec.Principal{"tok": {UserID: "u1", Role: sec.RoleAdmin}}}
	handler := newGuard(resolver)(echoHandler())

	t.Run("api_session_expired", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := withSession(httptest.NewRequest(http.MethodGet, "/api/users", nil), "tok", guardNow.Add(-time.Minute))
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), apperr.CodeSessionExpired)
	})

	t.Run("page_clears_cookies", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := withSession(httptest.NewRequest(http.MethodGet, "/app/dashboard", nil), "tok", guardNow.Add(-time.Minute))
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/login", recorder.Header().Get("Location"))

		cleared := findCookie(recorder, constants.CookieSessionToken)
		require.NotNil(t, cleared)
		assert.Equal(t, -1, cleared.MaxAge)
	})

	assert.Zero(t, resolver.calls)
}

/*
TestGuard_RevokedSession checks that an unexpired cookie is still verified
against the store on every request.
*/
func TestGuard_RevokedSession(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*sec.Principal{}}
	handler := newGuard(resolver)(echoHandler())

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest(http.MethodGet, "/api/users", nil), "gone", guardNow.Add(time.Hour))
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, 1, resolver.calls)
}

/*
TestGuard_StoreFailure checks that infrastructure errors surface as 500.
*/
func TestGuard_StoreFailure(t *testing.T) {
	handler := newGuard(&stubResolver{err: errors.New("connection refused")})(echoHandler())

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest(http.MethodGet, "/api/users", nil), "tok", guardNow.Add(time.Hour))
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

/*
TestGuard_Authenticated checks context injection, the public-only redirect
and the selected-branch repair.
*/
func TestGuard_Authenticated(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*sec.Principal{
		"admin":   {UserID: "a1", Role: sec.RoleAdmin},
		"manager": {UserID: "m1", Role: sec.RoleManager, Branches: []string{"b1", "b2"}},
		"orphan":  {UserID: "o1", Role: sec.RoleUser},
	}}
	handler := newGuard(resolver)(echoHandler())

	tests := []struct {
		name         string
		token        string
		path         string
		branchCookie string
		status       int
		location     string
		branch       string
		repaired     string
	}{
		{"admin_on_login", "admin", "/login", "", http.StatusSeeOther, "/app/admin/dashboard", "", ""},
		{"manager_on_root", "manager", "/", "", http.StatusSeeOther, "/app/dashboard", "", ""},
		{"admin_unscoped", "admin", "/api/users", "", http.StatusOK, "", "", ""},
		{"admin_keeps_any_branch", "admin", "/api/users", "b9", http.StatusOK, "", "b9", ""},
		{"manager_keeps_own_branch", "manager", "/api/users", "b2", http.StatusOK, "", "b2", ""},
		{"manager_foreign_branch_repaired", "manager", "/api/users", "b3", http.StatusOK, "", "b1", "b1"},
		{"manager_missing_branch_repaired", "manager", "/api/users", "", http.StatusOK, "", "b1", "b1"},
		{"orphan_uses_default", "orphan", "/api/users", "", http.StatusOK, "", "default-branch", "default-branch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := withSession(httptest.NewRequest(http.MethodGet, tt.path, nil), tt.token, guardNow.Add(time.Hour))
			if tt.branchCookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.CookieSelectedBranch, Value: tt.branchCookie})
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, recorder.Header().Get("Location"))
				return
			}

			assert.Equal(t, resolver.principals[tt.token].UserID, recorder.Header().Get("X-User"))
			assert.Equal(t, tt.branch, recorder.Header().Get("X-Branch"))

			cookie := findCookie(recorder, constants.CookieSelectedBranch)
			if tt.repaired == "" {
				assert.Nil(t, cookie)
				return
			}
			require.NotNil(t, cookie)
			assert.Equal(t, tt.repaired, cookie.Value)
			assert.False(t, cookie.HttpOnly)
		})
	}
}

/*
TestGuard_Unscoped checks that a non-administrator without branches and
without a default branch is refused instead of running unscoped.
*/
func TestGuard_Unscoped(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*sec.Principal{
		"orphan": {UserID: "o1", Role: sec.RoleManager},
		"admin":  {UserID: "a1", Role: sec.RoleAdmin},
	}}
	handler := middleware.Guard(resolver, middleware.GuardPolicy{
		PublicPaths: []string{"DELETE /api/sessions"},
		Now:         func() time.Time { return guardNow },
	})(echoHandler())

	tests := []struct {
		name     string
		token    string
		method   string
		path     string
		status   int
		location string
	}{
		{"orphan_api_forbidden", "orphan", http.MethodGet, "/api/clients", http.StatusForbidden, ""},
		{"orphan_page_redirected", "orphan", http.MethodGet, "/app/dashboard", http.StatusSeeOther, "/nao-autorizado?moduleName=Filiais"},
		{"orphan_public_path_allowed", "orphan", http.MethodDelete, "/api/sessions", http.StatusOK, ""},
		{"admin_unscoped_allowed", "admin", http.MethodGet, "/api/clients", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := withSession(httptest.NewRequest(tt.method, tt.path, nil), tt.token, guardNow.Add(time.Hour))

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, recorder.Header().Get("Location"))
			}
		})
	}
}
