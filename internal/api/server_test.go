// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package api_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/api"
)

/*
TestUnauthorized checks the JSON explanation of the permission redirect.
*/
func TestUnauthorized(t *testing.T) {
	recorder := httptest.NewRecorder()
	api.Unauthorized(recorder, httptest.NewRequest(http.MethodGet, "/nao-autorizado?moduleName=Clientes", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Você não tem permissão para acessar Clientes")
}

/*
TestFrontendHandler checks the proxy target and the API 404.
*/
func TestFrontendHandler(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("X-Upstream-Path", request.URL.Path)
		writer.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	handler, err := api.FrontendHandler(upstream.URL)
	require.NoError(t, err)

	t.Run("page_proxied", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/app/dashboard", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "/app/dashboard", recorder.Header().Get("X-Upstream-Path"))
	})

	t.Run("unknown_api_path", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Empty(t, recorder.Header().Get("X-Upstream-Path"))
	})

	t.Run("no_frontend", func(t *testing.T) {
		handler, err := api.FrontendHandler("")
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/app/dashboard", nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("invalid_url", func(t *testing.T) {
		_, err := api.FrontendHandler("not a url")
		assert.Error(t, err)
	})
}

/*
TestReadiness checks that one failing dependency degrades the probe.
*/
func TestReadiness(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		broker func() error
		status int
		body   string
	}{
		{"all_healthy", func() error { return nil }, http.StatusOK, `"status":"ready"`},
		{"broker_down", func() error { return errors.New("amqp_connection_closed") }, http.StatusServiceUnavailable, `"status":"degraded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(api.HealthDependencies{
				CheckDatabase: func() error { return nil },
				CheckBroker:   tt.broker,
			}, logger)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.body)
			assert.NotContains(t, recorder.Body.String(), `"redis"`)
		})
	}
}
