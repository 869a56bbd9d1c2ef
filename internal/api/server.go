// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the HTTP composition root: it mounts the health probes, the
realtime relay socket and the versioned REST API on one chi router.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tellnab/tellnab/internal/platform/config"
	"github.com/tellnab/tellnab/internal/platform/constants"
	"github.com/tellnab/tellnab/internal/platform/middleware"
	"github.com/tellnab/tellnab/internal/support/access"
	"github.com/tellnab/tellnab/internal/support/department"
	"github.com/tellnab/tellnab/internal/support/ticket"
	"github.com/tellnab/tellnab/internal/users/auth"
)

// Server owns the listening http.Server.
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

// Handlers are the route sets built in cmd/api.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth        *auth.Handler
	Access      *access.Handler
	Departments *department.Handler
	Tickets     *ticket.Handler

	// Realtime upgrades relay sockets. It authenticates with its first frame,
	// not the Authorization header.
	Realtime http.Handler
}

/*
NewServer builds the router.

Description: The relay socket sits outside the request timeout and the
rate limiter; its lifetime is bounded by the relay heartbeat instead.
Everything under /api/v1/support requires a verified access token.

Parameters:
  - context: Stops background middleware work (rate limiter sweeps)
  - cfg: Port and origin policy
  - log: Base logger for access logs and panics
  - verifier: Access token verifier
  - h: Route handlers
*/
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(log))
	router.Use(middleware.PanicRecovery(log))
	router.Use(chimw.CleanPath)

	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)
	router.Handle(constants.RealtimePath, h.Realtime)

	router.Group(func(rest chi.Router) {
		rest.Use(chimw.Timeout(constants.GlobalRequestTimeout))
		rest.Use(middleware.RateLimit(context))
		rest.Use(middleware.CORS(cfg))
		rest.Use(middleware.Authenticate(verifier))

		rest.Route("/api/v1", func(v1 chi.Router) {
			v1.Mount("/auth", h.Auth.Routes())

			v1.Route("/support", func(support chi.Router) {
				support.Use(middleware.RequireAuth)
				support.Mount("/tickets", h.Tickets.Routes())
				support.Mount("/departments", h.Departments.Routes())
				support.Mount("/", h.Access.Routes())
			})
		})
	})

	return &Server{
		log: log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		},
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests for up to timeout. Hijacked relay
// sockets are not tracked here; the hub closes them.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
