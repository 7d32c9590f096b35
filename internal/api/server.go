// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/johnvilela/motolink/internal/core/branch"
	"github.com/johnvilela/motolink/internal/core/client"
	"github.com/johnvilela/motolink/internal/core/deliveryman"
	"github.com/johnvilela/motolink/internal/core/group"
	"github.com/johnvilela/motolink/internal/core/region"
	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/config"
	"github.com/johnvilela/motolink/internal/platform/constants"
	"github.com/johnvilela/motolink/internal/platform/middleware"
	"github.com/johnvilela/motolink/internal/platform/respond"
	"github.com/johnvilela/motolink/internal/system/audit"
	"github.com/johnvilela/motolink/internal/users/account"
	"github.com/johnvilela/motolink/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler, 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all deps are healthy.
	Readiness http.HandlerFunc

	Sessions      *auth.Handler
	Users         *account.Handler
	Branches      *branch.Handler
	Regions       *region.Handler
	Groups        *group.Handler
	Deliverymen   *deliveryman.Handler
	Clients       *client.Handler
	HistoryTraces *audit.Handler
}

// Policy returns the paths the route guard lets through without a session.
func Policy(cfg *config.Config) middleware.GuardPolicy {
	return middleware.GuardPolicy{
		PublicPaths: []string{
			constants.PathFirstLogin,
			constants.PathUnauthorized,
			"/health",
			"/ready",
			"POST /api/sessions",
			"DELETE /api/sessions",
			"POST /api/sessions/activate",
			"POST /api/users/provision",
		},
		PublicOnlyPaths: []string{constants.PathLogin, "/"},
		DefaultBranchID: cfg.DefaultBranchID,
		SecureCookies:   cfg.SecureCookies(),
	}
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, resolver middleware.SessionResolver, h Handlers) (*Server, error) {
	frontend, err := frontendHandler(cfg.FrontendURL)
	if err != nil {
		return nil, err
	}

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.ClientIP(trustedProxies))
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg, cfg.AllowedOriginSuffix))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Guard(resolver, Policy(cfg)))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Get(constants.PathUnauthorized, unauthorized)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Mount("/sessions", h.Sessions.Routes())
		api.Mount("/users", h.Users.Routes())
		api.Mount("/branches", h.Branches.Routes())
		api.Mount("/regions", h.Regions.Routes())
		api.Mount("/groups", h.Groups.Routes())
		api.Mount("/deliverymen", h.Deliverymen.Routes())
		api.Mount("/clients", h.Clients.Routes())
		api.Mount("/history-traces", h.HistoryTraces.Routes())
	})

	// Pages are served by the frontend once the guard has let them through.
	r.Handle("/*", frontend)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// unauthorized handles GET /nao-autorizado for clients that follow the
// permission redirect without a frontend.
func unauthorized(writer http.ResponseWriter, request *http.Request) {
	moduleName := request.URL.Query().Get(constants.QueryModuleName)

	message := "Você não tem permissão para acessar esta página"
	if moduleName != "" {
		message = "Você não tem permissão para acessar " + moduleName
	}

	respond.OK(writer, map[string]string{
		constants.QueryModuleName: moduleName,
		constants.FieldMessage:    message,
	})
}

// frontendHandler proxies pages to rawURL. Unknown API paths, and every
// page when rawURL is empty, get a JSON 404.
func frontendHandler(rawURL string) (http.Handler, error) {
	notFound := func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Recurso não encontrado"))
	}

	if rawURL == "" {
		return http.HandlerFunc(notFound), nil
	}

	target, err := url.Parse(rawURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("api: invalid FRONTEND_URL %q", rawURL)
	}
	proxy := httputil.NewSingleHostReverseProxy(target)

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if middleware.IsAPIRequest(request) {
			notFound(writer, request)
			return
		}
		proxy.ServeHTTP(writer, request)
	}), nil
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
