package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"phonedir/internal/platform/metrics"
	"phonedir/internal/platform/middleware"
)

// Registrar is implemented by every handler that mounts its own routes.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the shared middleware chain, the /metrics endpoint and every
// handler's routes. Recovery sits innermost so a panicked request still carries
// its request ID and is logged and counted. Handlers stay thin and delegate to their services.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.LatencyMiddleware(m))
	r.Use(middleware.Recovery(logger))

	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))
	for _, h := range handlers {
		h.Register(r)
	}
	return r
}
