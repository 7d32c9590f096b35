// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
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
)

/*
TestRequestID checks that a supplied ID is kept and a missing one generated.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	request.Header.Set(constants.HeaderXRequestID, "req-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestStructuredLogger checks the access log line and its level.
*/
func TestStructuredLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte("{}"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/regions", nil))

	line := buffer.String()
	assert.Contains(t, line, `"msg":"http_request_finished"`)
	assert.Contains(t, line, `"level":"WARN"`)
	assert.Contains(t, line, `"status":404`)
	assert.Contains(t, line, `"bytes":2`)
}

/*
TestRateLimit checks that a client is throttled once its burst is spent.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	handler := middleware.RateLimitWith(ctx, 1, 2, func() time.Time { return now })(okHandler())

	send := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
		request.RemoteAddr = ip + ":41000"
		request.Header.Set(constants.HeaderXRealIP, "203.0.113.9")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	throttled := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, throttled.Code)
	assert.Equal(t, "1", throttled.Header().Get("Retry-After"))
	assert.Contains(t, throttled.Body.String(), apperr.CodeRateLimited)

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
}

/*
TestClientIP checks that forwarding headers are only honoured from trusted
proxies.
*/
func TestClientIP(t *testing.T) {
	trusted, err := middleware.ParseTrustedProxies([]string{"10.0.0.0/8", " 127.0.0.1 "})
	require.NoError(t, err)

	tests := []struct {
		name      string
		peer      string
		realIP    string
		forwarded string
		want      string
	}{
		{"untrusted_peer_spoofing", "198.51.100.7:5000", "1.2.3.4", "1.2.3.4", "198.51.100.7"},
		{"trusted_peer_forwarded", "10.1.2.3:5000", "", "203.0.113.5", "203.0.113.5"},
		{"trusted_chain_skips_proxies", "10.1.2.3:5000", "", "1.2.3.4, 203.0.113.5, 10.9.9.9", "203.0.113.5"},
		{"trusted_peer_real_ip", "127.0.0.1:5000", "203.0.113.8", "", "203.0.113.8"},
		{"trusted_peer_garbage_header", "10.1.2.3:5000", "not-an-ip", "", "10.1.2.3"},
		{"trusted_peer_no_headers", "10.1.2.3:5000", "", "", "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.ClientIP(trusted)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				seen = middleware.RealIP(request)
			}))

			request := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
			request.RemoteAddr = tt.peer
			if tt.realIP != "" {
				request.Header.Set(constants.HeaderXRealIP, tt.realIP)
			}
			if tt.forwarded != "" {
				request.Header.Set(constants.HeaderXForwardedFor, tt.forwarded)
			}

			handler.ServeHTTP(httptest.NewRecorder(), request)
			assert.Equal(t, tt.want, seen)
		})
	}

	_, err = middleware.ParseTrustedProxies([]string{"proxy.local"})
	assert.Error(t, err)
}

/*
TestPanicRecovery checks that a panic becomes the standard 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), apperr.CodeInternal)
	assert.NotContains(t, recorder.Body.String(), "boom")
	assert.Contains(t, buffer.String(), "panic_recovered")
}

/*
TestCORS checks origin filtering and the preflight short-circuit.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(environment(false), "motolink.com.br")(okHandler())

	tests := []struct {
		name    string
		method  string
		origin  string
		status  int
		allowed bool
	}{
		{"no_origin", http.MethodGet, "", http.StatusOK, false},
		{"trusted_origin", http.MethodGet, "https://app.motolink.com.br", http.StatusOK, true},
		{"foreign_origin", http.MethodGet, "https://evil.example", http.StatusOK, false},
		{"preflight", http.MethodOptions, "https://app.motolink.com.br", http.StatusNoContent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/api/users", nil)
			if tt.origin != "" {
				request.Header.Set(constants.HeaderOrigin, tt.origin)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

type environment bool

func (development environment) IsDevelopment() bool { return bool(development) }
