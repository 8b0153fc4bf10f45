package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"slotbook/config"
	"slotbook/infras/metrics"
	otelMocks "slotbook/infras/otel/mocks"
	"slotbook/permissions"
	"slotbook/transport/http/middleware"
	"slotbook/transport/http/router"
)

func newServer(t *testing.T) *HTTP {
	t.Helper()

	cfg := &config.Config{}
	cfg.Metrics.Enable = true
	cfg.Metrics.Path = "/metrics"

	ot := otelMocks.NewOtel()
	m := metrics.New(cfg)

	r := router.New(
		cfg,
		router.DomainHandlers{},
		middleware.NewAppMiddleware(ot, cfg, nil, m),
		middleware.NewAuthRoleMiddleware(nil, ot, &permissions.PermissionData{}, cfg),
		m,
	)

	return New(cfg, r, ot, nil, nil)
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHealthFollowsServerState(t *testing.T) {
	server := newServer(t)

	assert.Equal(t, http.StatusOK, get(server, "/health").Code)
	assert.Equal(t, ServerStateReady, server.State())

	server.state.Store(int32(ServerStateInGracePeriod))
	assert.Equal(t, http.StatusServiceUnavailable, get(server, "/health").Code)

	server.state.Store(int32(ServerStateInCleanupPeriod))
	assert.Equal(t, http.StatusServiceUnavailable, get(server, "/health").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	server := newServer(t)

	get(server, "/health")
	rec := get(server, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `slotbook_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	server := newServer(t)

	rec := get(server, "/v1/reservations/my")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
