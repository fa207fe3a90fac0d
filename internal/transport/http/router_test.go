package httptransport

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"phonedir/internal/directory"
	"phonedir/internal/directory/store"
	"phonedir/internal/health"
	"phonedir/internal/phone"
	"phonedir/internal/platform/metrics"
	"phonedir/internal/platform/middleware"
	pkgtestutil "phonedir/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	logs    *bytes.Buffer
	metrics *metrics.Metrics
	router  http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

type panicHandler struct{}

func (panicHandler) Register(r chi.Router) {
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
}

func (s *RouterSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(s.logs, nil))
	reg := prometheus.NewRegistry()
	s.metrics = metrics.New(reg)

	st := store.NewInMemory()
	svc, err := directory.NewService(st)
	s.Require().NoError(err)
	validate, err := phone.NewValidator()
	s.Require().NoError(err)

	s.router = NewRouter(logger, s.metrics, reg,
		health.New(alwaysUp{}, logger),
		directory.NewHandler(svc, logger, validate),
		panicHandler{},
	)
}

func (s *RouterSuite) TestDirectoryRoutesMounted() {
	t := s.T()
	rr := pkgtestutil.DoRequest(s.router, pkgtestutil.NewJSONRequest(t, http.MethodPost, "/api/phones/",
		map[string]string{"phone": "+79991234567", "address": "Moscow"}))
	s.Equal(http.StatusCreated, rr.Code)

	rr = pkgtestutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/api/phones/+79991234567", nil))
	s.Equal(http.StatusOK, rr.Code)

	rr = pkgtestutil.DoRequest(s.router, httptest.NewRequest(http.MethodPatch, "/api/phones/", nil))
	s.Equal(http.StatusMethodNotAllowed, rr.Code)
}

func (s *RouterSuite) TestRequestIDEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")

	rr := pkgtestutil.DoRequest(s.router, req)

	s.Equal(http.StatusOK, rr.Code)
	s.Equal("req-42", rr.Header().Get(middleware.RequestIDHeader))

	rr = pkgtestutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.NotEmpty(rr.Header().Get(middleware.RequestIDHeader))
}

func (s *RouterSuite) TestPanicRecovered() {
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-panic")

	rr := pkgtestutil.DoRequest(s.router, req)

	pkgtestutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
	s.Equal("req-panic", rr.Header().Get(middleware.RequestIDHeader))

	logs := s.logs.String()
	s.Contains(logs, `msg="panic recovered"`)
	s.Contains(logs, "msg=http_request")
	s.Equal(2, strings.Count(logs, "request_id=req-panic"), "panic and request log lines both carry the id")
	s.Equal(float64(1), testutil.ToFloat64(
		s.metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/boom", "500")))
}

func (s *RouterSuite) TestRequestsLabelledByRoutePattern() {
	t := s.T()
	for _, p := range []string{"/api/phones/+79990000001", "/api/phones/+79990000002"} {
		pkgtestutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(
		s.metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/api/phones/{phone}", "404")))

	rr := pkgtestutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "phonedir_http_requests_total"))
}

type alwaysUp struct{}

func (alwaysUp) Health(_ context.Context) error { return nil }
