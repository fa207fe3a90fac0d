// Package directory wires the phone directory service and its HTTP handler.
package directory

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"phonedir/internal/directory/handler"
	"phonedir/internal/directory/service"
)

// Service exposes the directory operations.
type Service = service.Service

// Handler wires HTTP endpoints to the directory service.
type Handler = handler.Handler

// NewService constructs the directory service over store.
func NewService(store service.Store, opts ...service.Option) (*Service, error) {
	return service.New(store, opts...)
}

// NewHandler constructs the /api/phones handler.
func NewHandler(s *Service, logger *slog.Logger, validate *validator.Validate) *Handler {
	return handler.New(s, logger, validate)
}
