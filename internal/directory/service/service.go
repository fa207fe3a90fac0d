package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"phonedir/internal/directory/metrics"
	"phonedir/internal/directory/models"
	"phonedir/internal/phone"
	dErrors "phonedir/pkg/domain-errors"
	"phonedir/pkg/platform/sentinel"
	"phonedir/pkg/requestcontext"
)

const tracerName = "phonedir/internal/directory/service"

// Store is the key-value port. Get returns sentinel.ErrNotFound for absent
// keys; any other error is an infrastructure failure.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetIfAbsent(ctx context.Context, key, value string) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Service maps directory operations onto store primitives. It holds no
// per-request state and never caches; every call round-trips to the store.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	s := &Service{store: store, tracer: otel.Tracer(tracerName)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get looks up the address for p.
func (s *Service) Get(ctx context.Context, p string) (res *models.Result, err error) {
	ctx, finish := s.start(ctx, "get")
	defer func() { finish(res, err) }()

	if err := validatePhone(p); err != nil {
		return nil, err
	}

	address, err := s.store.Get(ctx, phone.Key(p))
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, notFound(p, "")
	}
	if err != nil {
		return nil, storeFailure(err, "get")
	}

	return &models.Result{
		Outcome: models.OutcomeFound,
		Record:  &models.Record{Phone: p, Address: address},
	}, nil
}

// Create stores a new record. It fails with a conflict if p is already
// present; the check and the write are one atomic SETNX.
func (s *Service) Create(ctx context.Context, p, address string) (res *models.Result, err error) {
	ctx, finish := s.start(ctx, "create")
	defer func() { finish(res, err) }()

	if err := validatePhone(p); err != nil {
		return nil, err
	}

	created, err := s.store.SetIfAbsent(ctx, phone.Key(p), address)
	if err != nil {
		return nil, storeFailure(err, "create")
	}
	if !created {
		return nil, dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("record for phone '%s' already exists; use PUT to update it", p))
	}
	s.logAudit(ctx, "phone_record_created")

	return &models.Result{
		Outcome: models.OutcomeCreated,
		Record:  &models.Record{Phone: p, Address: address},
	}, nil
}

// Update replaces the address of an existing record and returns the value read
// back from the store.
//
// The existence check and the write are separate commands; a concurrent Delete
// between them lets the write recreate the record.
func (s *Service) Update(ctx context.Context, p, address string) (res *models.Result, err error) {
	ctx, finish := s.start(ctx, "update")
	defer func() { finish(res, err) }()

	if err := validatePhone(p); err != nil {
		return nil, err
	}
	key := phone.Key(p)

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, storeFailure(err, "update")
	}
	if !exists {
		return nil, notFound(p, "; use POST to create it")
	}

	if err := s.store.Set(ctx, key, address); err != nil {
		return nil, storeFailure(err, "update")
	}

	stored, err := s.store.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, notFound(p, "")
	}
	if err != nil {
		return nil, storeFailure(err, "update")
	}
	s.logAudit(ctx, "phone_record_updated")

	return &models.Result{
		Outcome: models.OutcomeUpdated,
		Record:  &models.Record{Phone: p, Address: stored},
	}, nil
}

// Delete removes an existing record.
func (s *Service) Delete(ctx context.Context, p string) (res *models.Result, err error) {
	ctx, finish := s.start(ctx, "delete")
	defer func() { finish(res, err) }()

	if err := validatePhone(p); err != nil {
		return nil, err
	}
	key := phone.Key(p)

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, storeFailure(err, "delete")
	}
	if !exists {
		return nil, notFound(p, "")
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return nil, storeFailure(err, "delete")
	}
	s.logAudit(ctx, "phone_record_deleted")

	return &models.Result{Outcome: models.OutcomeDeleted}, nil
}

// start opens a span for operation and returns the function that closes it and
// records the operation result.
func (s *Service) start(ctx context.Context, operation string) (context.Context, func(*models.Result, error)) {
	ctx, span := s.tracer.Start(ctx, "directory."+operation)
	return ctx, func(res *models.Result, err error) {
		result := ""
		if err != nil {
			result = string(dErrors.CodeOf(err))
			if dErrors.HasCode(err, dErrors.CodeInternal) {
				span.RecordError(err)
				span.SetStatus(codes.Error, "store failure")
			}
		} else {
			result = res.Outcome.String()
		}
		span.SetAttributes(attribute.String("directory.result", result))
		span.End()

		if s.metrics != nil {
			s.metrics.IncOperation(operation, result)
		}
	}
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		attributes = append(attributes, "trace_id", sc.TraceID().String())
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}

func validatePhone(p string) error {
	if err := phone.Validate(p); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "")
	}
	return nil
}

func notFound(p, hint string) error {
	return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("record for phone '%s' not found%s", p, hint))
}

func storeFailure(err error, operation string) error {
	return dErrors.Wrap(err, dErrors.CodeInternal, operation+": store failure")
}
