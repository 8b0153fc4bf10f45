package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"slotbook/config"
	"slotbook/infras/jwt"
	jwtMocks "slotbook/infras/jwt/mocks"
	"slotbook/infras/metrics"
	otelMocks "slotbook/infras/otel/mocks"
	"slotbook/permissions"
	"slotbook/shared/cache"
	cacheMocks "slotbook/shared/cache/mocks"
	"slotbook/shared/constant"
	"slotbook/transport/http/middleware"
)

var testPermissions = &permissions.PermissionData{
	Endpoints: []permissions.Permission{
		{Path: "/v1/slots", Method: http.MethodGet, Skip: true},
		{Path: "/v1/slots", Method: http.MethodPost, Permissions: []string{constant.RoleAdmin}},
		{Path: "/v1/reservations/my", Method: http.MethodGet, Permissions: []string{constant.RoleUser, constant.RoleAdmin}},
	},
}

func ok(w http.ResponseWriter, r *http.Request) {
	role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
	w.Header().Set("X-Role", role)
	w.WriteHeader(http.StatusOK)
}

func authRouter(t *testing.T) (*jwtMocks.MockJWT, http.Handler) {
	t.Helper()

	jwtService := jwtMocks.NewMockJWT(gomock.NewController(t))
	auth := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), testPermissions, &config.Config{})

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		r.Use(auth.APIKey, auth.Auth, auth.RBAC)
		r.Route("/slots", func(r chi.Router) {
			r.Get("/", ok)
			r.Post("/", ok)
		})
		r.Get("/reservations/my", ok)
		r.Get("/sizes", ok)
	})

	return jwtService, router
}

func request(router http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestAuth(t *testing.T) {
	t.Run("public route needs no token", func(t *testing.T) {
		_, router := authRouter(t)

		assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/v1/slots", "").Code)
	})

	t.Run("missing token", func(t *testing.T) {
		_, router := authRouter(t)

		assert.Equal(t, http.StatusUnauthorized, request(router, http.MethodGet, "/v1/reservations/my", "").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		jwtService, router := authRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "stale", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

		rec := request(router, http.MethodGet, "/v1/reservations/my", "stale")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token has expired")
	})

	t.Run("empty identity claims", func(t *testing.T) {
		jwtService, router := authRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "hollow", jwt.AccessToken).Return(&jwt.Claims{Role: constant.RoleUser}, nil)

		assert.Equal(t, http.StatusUnauthorized, request(router, http.MethodGet, "/v1/reservations/my", "hollow").Code)
	})

	t.Run("user reaches own routes", func(t *testing.T) {
		jwtService, router := authRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "u1", Email: "u1@example.com", Role: constant.RoleUser}, nil)

		rec := request(router, http.MethodGet, "/v1/reservations/my", "good")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, constant.RoleUser, rec.Header().Get("X-Role"))
	})

	t.Run("user is forbidden on admin routes", func(t *testing.T) {
		jwtService, router := authRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "u1", Email: "u1@example.com", Role: constant.RoleUser}, nil)

		assert.Equal(t, http.StatusForbidden, request(router, http.MethodPost, "/v1/slots", "good").Code)
	})

	t.Run("admin passes admin routes", func(t *testing.T) {
		jwtService, router := authRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "root", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "a1", Email: "a1@example.com", Role: constant.RoleAdmin}, nil)

		assert.Equal(t, http.StatusOK, request(router, http.MethodPost, "/v1/slots", "root").Code)
	})

	t.Run("unlisted route still needs a token", func(t *testing.T) {
		_, router := authRouter(t)

		assert.Equal(t, http.StatusUnauthorized, request(router, http.MethodGet, "/v1/sizes", "").Code)
	})

	t.Run("unlisted route is forbidden for every role", func(t *testing.T) {
		jwtService, router := authRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "root", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "a1", Email: "a1@example.com", Role: constant.RoleAdmin}, nil)

		assert.Equal(t, http.StatusForbidden, request(router, http.MethodGet, "/v1/sizes", "root").Code)
	})
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	cfg := &config.Config{}
	cfg.Metrics.Enable = true

	m := metrics.New(cfg)
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, nil, m)

	router := chi.NewRouter()
	router.Use(app.Metrics)
	router.Get("/slots/{id}", ok)

	request(router, http.MethodGet, "/slots/a", "")
	request(router, http.MethodGet, "/slots/b", "")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Requests().WithLabelValues(http.MethodGet, "/slots/{id}", "200")))
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 1
	cfg.App.RateLimiter.WindowSeconds = 60

	redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache, nil)

	router := chi.NewRouter()
	router.Use(app.RateLimit())
	router.Get("/health", ok)

	gomock.InOrder(
		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil),
		redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil),
		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*int) = 1

				return nil
			}),
	)

	first := request(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "0", first.Header().Get(constant.RequestHeaderRateLimitRemaining))

	assert.Equal(t, http.StatusTooManyRequests, request(router, http.MethodGet, "/health", "").Code)
}
