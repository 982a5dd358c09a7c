// Package httpapi is the HTTP transport of the credkeeper server.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/server/metrics"
	"github.com/go-chi/chi/v5"
)

// RouterDeps collects what NewRouter wires together. Health and Metrics
// are optional.
type RouterDeps struct {
	Users          UserService
	Health         HealthChecker
	Metrics        metrics.Recorder
	MetricsHandler http.Handler
	Logger         logging.Logger
}

// NewRouter builds the route table:
//
//	POST /login   POST /signup   GET /me   GET /health   GET /metrics
func NewRouter(deps RouterDeps) http.Handler {
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Nop{}
	}

	h := NewHandler(deps.Users, deps.Health, deps.Metrics, deps.Logger)

	r := chi.NewRouter()
	r.Use(AccessLog(deps.Logger, deps.Metrics))
	r.Use(Recovery(deps.Logger))

	r.Post("/login", h.Login)
	r.Post("/signup", h.Signup)
	r.With(RequireToken(deps.Users)).Get("/me", h.Me)
	r.Get("/health", h.Health)

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	return r
}
