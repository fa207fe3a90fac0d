package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"phonedir/internal/directory/models"
	"phonedir/internal/phone"
	"phonedir/internal/platform/middleware"
	dErrors "phonedir/pkg/domain-errors"
	"phonedir/pkg/platform/httputil"
)

// Service defines the directory operations the handler delegates to.
type Service interface {
	Get(ctx context.Context, phone string) (*models.Result, error)
	Create(ctx context.Context, phone, address string) (*models.Result, error)
	Update(ctx context.Context, phone, address string) (*models.Result, error)
	Delete(ctx context.Context, phone string) (*models.Result, error)
}

// Handler serves the /api/phones endpoints.
type Handler struct {
	directory Service
	logger    *slog.Logger
	validate  *validator.Validate
}

// New creates a directory Handler. validate must have the phone tag
// registered; see phone.NewValidator.
func New(directory Service, logger *slog.Logger, validate *validator.Validate) *Handler {
	return &Handler{
		directory: directory,
		logger:    logger,
		validate:  validate,
	}
}

// Register registers the directory routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/phones", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Put("/", h.handleUpdate)
		r.Get("/{phone}", h.handleGet)
		r.Delete("/{phone}", h.handleDelete)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := phoneParam(r)
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	res, err := h.directory.Get(r.Context(), p)
	h.respond(w, r, "get", res, err)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, err := phoneParam(r)
	if err != nil {
		h.fail(w, r, "delete", err)
		return
	}
	res, err := h.directory.Delete(r.Context(), p)
	h.respond(w, r, "delete", res, err)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(r)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	res, err := h.directory.Create(r.Context(), req.Phone, *req.Address)
	h.respond(w, r, "create", res, err)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(r)
	if err != nil {
		h.fail(w, r, "update", err)
		return
	}
	res, err := h.directory.Update(r.Context(), req.Phone, *req.Address)
	h.respond(w, r, "update", res, err)
}

// decode reads and schema-validates a PhoneAddressRequest body.
func (h *Handler) decode(r *http.Request) (*models.PhoneAddressRequest, error) {
	var req models.PhoneAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}

	err := h.validate.StructCtx(r.Context(), &req)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if fieldErrs[0].Field() == "Phone" {
			return nil, dErrors.Wrap(phone.Validate(req.Phone), dErrors.CodeValidation, "")
		}
		return nil, dErrors.New(dErrors.CodeValidation, "address is required")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	return &req, nil
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, res *models.Result, err error) {
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	if res.Record == nil {
		httputil.WriteJSON(w, res.Outcome.Status(), nil)
		return
	}
	httputil.WriteJSON(w, res.Outcome.Status(), res.Record)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, "directory operation failed",
			"request_id", requestID,
			"operation", op,
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, "directory request rejected",
			"request_id", requestID,
			"operation", op,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

// phoneParam returns the decoded {phone} path segment, so "%2B7..." and
// "+7..." address the same record. chi matches on r.URL.RawPath when the
// request carries one and on the already-decoded r.URL.Path otherwise, so the
// segment is unescaped only in the first case.
func phoneParam(r *http.Request) (string, error) {
	p := chi.URLParam(r, "phone")
	if r.URL.RawPath == "" {
		return p, nil
	}
	p, err := url.PathUnescape(p)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid phone path segment")
	}
	return p, nil
}
