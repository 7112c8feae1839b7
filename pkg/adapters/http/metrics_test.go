package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsByRoute(t *testing.T) {
	m := NewMetrics()
	h := NewHandler(WithMetrics(m))

	do(t, h, http.MethodGet, "/", "")
	do(t, h, http.MethodPost, "/chat-json/", `{"question":"a"}`)
	do(t, h, http.MethodPost, "/chat-json/", `nope`)
	do(t, h, http.MethodGet, "/random/path", "")
	do(t, h, http.MethodGet, "/another", "")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/chat-json/", "POST", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/chat-json/", "POST", "500")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues(unmatchedRoute, "GET", "404")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.Duration))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	do(t, NewHandler(WithMetrics(m)), http.MethodGet, "/", "")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "contable_http_requests_total")
	assert.Contains(t, w.Body.String(), "contable_http_request_duration_seconds")
}

func TestMetrics_NotOnAPIRouter(t *testing.T) {
	w := do(t, NewHandler(WithMetrics(NewMetrics())), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetrics_CountsRecoveredPanicAs500(t *testing.T) {
	m := NewMetrics()
	s := NewServer(WithMetrics(m))
	r := chi.NewRouter()
	r.Use(s.middlewares()...)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := do(t, r, http.MethodGet, "/boom", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/boom", "GET", "500")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Requests.WithLabelValues("/boom", "GET", "200")))
}
