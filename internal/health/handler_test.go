package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonedir/pkg/testutil"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Health(ctx context.Context) error { return f(ctx) }

func newRouter(p Pinger) chi.Router {
	r := chi.NewRouter()
	New(p, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func TestHealthDoesNotTouchStore(t *testing.T) {
	router := newRouter(pingerFunc(func(context.Context) error {
		t.Fatal("liveness probe must not ping the store")
		return nil
	}))

	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, &Response{Status: StatusOK}, testutil.UnmarshalResponse[Response](t, rr))
}

func TestReady(t *testing.T) {
	t.Run("store reachable", func(t *testing.T) {
		router := newRouter(pingerFunc(func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		}))

		rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/ready", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, StatusOK, testutil.UnmarshalResponse[Response](t, rr).Status)
	})

	t.Run("store unreachable", func(t *testing.T) {
		router := newRouter(pingerFunc(func(context.Context) error {
			return errors.New("connection refused")
		}))

		rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, StatusUnavailable, testutil.UnmarshalResponse[Response](t, rr).Status)
	})
}
