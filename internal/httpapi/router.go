// Package httpapi wires the HTTP surface of the records service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
    "log/slog"
    "net/http"

    chi "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"
    "github.com/govalues/money"

    "github.com/tinoosan/records/internal/service/command"
    "github.com/tinoosan/records/internal/service/query"
    "github.com/tinoosan/records/internal/storage"
)

// Server wires handlers and middleware using Chi.
type Server struct {
    cmd      command.Service
    qry      query.Service
    currency money.Currency
    checks   []storage.ReadyChecker
    log      *slog.Logger
    rt       *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// currency only drives the amount_minor projection in responses. checks are
// consulted by /readyz.
func New(cmd command.Service, qry query.Service, currency money.Currency, logger *slog.Logger, checks ...storage.ReadyChecker) *Server {
    if logger == nil { logger = slog.Default() }
    r := chi.NewRouter()
    r.Use(chimw.RequestID)
    r.Use(accessLog(logger))
    r.Use(recoverPanics(logger))
    r.Use(metricsMiddleware)

    s := &Server{
        cmd:      cmd,
        qry:      qry,
        currency: currency,
        checks:   checks,
        log:      logger,
        rt:       r,
    }
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
    s.rt.Route("/api/v1/transactions", func(r chi.Router) {
        r.With(s.validatePostTransaction()).Post("/", s.postTransaction)
        r.With(s.validateListTransactions()).Get("/", s.listTransactions)
        r.Get("/{id}", s.getTransaction)
        r.With(s.validateUpdateTransaction()).Put("/{id}", s.updateTransaction)
        r.With(s.validateUpdateTransaction()).Patch("/{id}", s.updateTransaction)
        r.Delete("/{id}", s.deleteTransaction)
    })
    s.rt.Get("/api/v1/dictionary/types", s.getTypesDictionary)
    s.rt.Get("/api/v1/dictionary/categories", s.getCategoriesDictionary)
    // Health (unversioned)
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
