// Package health serves the liveness and readiness probes.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"phonedir/internal/platform/middleware"
	"phonedir/pkg/platform/httputil"
)

const (
	StatusOK          = "OK"
	StatusUnavailable = "UNAVAILABLE"

	readyTimeout = 2 * time.Second
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Health(ctx context.Context) error
}

// Response is the body of both probes.
type Response struct {
	Status string `json:"status"`
}

type Handler struct {
	store  Pinger
	logger *slog.Logger
}

func New(store Pinger, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts /health and /ready.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)
}

// handleHealth answers as long as the process serves HTTP; it never touches
// the store.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, Response{Status: StatusOK})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.store.Health(ctx); err != nil {
		h.logger.WarnContext(ctx, "readiness check failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, Response{Status: StatusUnavailable})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, Response{Status: StatusOK})
}
