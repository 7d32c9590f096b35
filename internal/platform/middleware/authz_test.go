// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnvilela/motolink/internal/platform/ctxutil"
	"github.com/johnvilela/motolink/internal/platform/middleware"
	"github.com/johnvilela/motolink/internal/platform/sec"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

func requestAs(method, path string, principal *sec.Principal) *http.Request {
	request := httptest.NewRequest(method, path, nil)
	if principal != nil {
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
	}
	return request
}

/*
TestRequirePermissions checks the redirect and JSON outcomes of a failed check.
*/
func TestRequirePermissions(t *testing.T) {
	manager := &sec.Principal{
		UserID:      "m1",
		Role:        sec.RoleManager,
		Permissions: []string{"users.view", "users.create", "users.edit"},
	}
	admin := &sec.Principal{UserID: "a1", Role: sec.RoleAdmin}

	handler := middleware.RequirePermissions("Colaboradores", "users.delete")(okHandler())

	tests := []struct {
		name      string
		path      string
		principal *sec.Principal
		status    int
		location  string
	}{
		{"manager_page_redirected", "/app/colaboradores", manager, http.StatusSeeOther, "/nao-autorizado?moduleName=Colaboradores"},
		{"manager_api_forbidden", "/api/users/u1", manager, http.StatusForbidden, ""},
		{"anonymous_api_unauthorized", "/api/users/u1", nil, http.StatusUnauthorized, ""},
		{"admin_passes", "/app/colaboradores", admin, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, requestAs(http.MethodDelete, tt.path, tt.principal))

			assert.Equal(t, tt.status, recorder.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, recorder.Header().Get("Location"))
			}
		})
	}
}

/*
TestUnauthorizedLocation checks that module labels are query-escaped.
*/
func TestUnauthorizedLocation(t *testing.T) {
	assert.Equal(t, "/nao-autorizado?moduleName=Regi%C3%B5es", middleware.UnauthorizedLocation("Regiões"))
	assert.Equal(t, "/nao-autorizado?moduleName=Hist%C3%B3rico+de+altera%C3%A7%C3%B5es", middleware.UnauthorizedLocation("Histórico de alterações"))
}

/*
TestRequireRole checks that only administrators reach admin-only routes.
*/
func TestRequireRole(t *testing.T) {
	handler := middleware.RequireRole(sec.RoleAdmin)(okHandler())

	tests := []struct {
		name      string
		principal *sec.Principal
		status    int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"manager", &sec.Principal{Role: sec.RoleManager}, http.StatusForbidden},
		{"admin", &sec.Principal{Role: sec.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, requestAs(http.MethodGet, "/api/history-traces", tt.principal))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

type stubVerifier struct{ valid string }

func (verifier stubVerifier) VerifyProvisioningToken(token string) (*sec.ProvisioningClaims, error) {
	if token != verifier.valid {
		return nil, errors.New("invalid")
	}
	return &sec.ProvisioningClaims{}, nil
}

/*
TestRequireServiceToken checks the bearer header parsing and verification.
*/
func TestRequireServiceToken(t *testing.T) {
	handler := middleware.RequireServiceToken(stubVerifier{valid: "good"})(okHandler())

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong_scheme", "Basic good", http.StatusUnauthorized},
		{"invalid_token", "Bearer bad", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
		{"lowercase_scheme", "bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/api/users/provision", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
