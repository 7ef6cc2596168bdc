// Package httpapi assembles the HTTP surface. Handlers stay thin and
// delegate to the domain services; transport concerns live here.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"surge/internal/discovery"
	enrichhandler "surge/internal/enrich/handler"
	"surge/internal/platform/middleware"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts. Health may be nil when the
// cache is purely in-memory.
type Deps struct {
	Enrich     *enrichhandler.Handler
	Discovery  *discovery.Handler
	Health     HealthChecker
	APIKeyHash string
	Logger     *slog.Logger
}

// NewRouter wires middleware and routes. Operational endpoints (/healthz,
// /metrics) stay outside the API-key gate so probes and scrapers work
// without credentials.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))

	r.Get("/healthz", healthz(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAPIKey(deps.APIKeyHash, deps.Logger))
		deps.Enrich.Routes(r)
		deps.Discovery.Routes(r)
	})

	return r
}

func healthz(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if checker != nil {
			if err := checker.Health(r.Context()); err != nil {
				status = map[string]string{"status": "degraded", "error": err.Error()}
				code = http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
