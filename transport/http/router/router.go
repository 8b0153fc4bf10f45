package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"slotbook/config"
	_ "slotbook/docs" // swagger spec
	"slotbook/infras/metrics"
	"slotbook/internal/handlers/auth"
	"slotbook/internal/handlers/models"
	"slotbook/internal/handlers/reservation"
	"slotbook/internal/handlers/size"
	"slotbook/internal/handlers/slot"
	"slotbook/shared/constant"
	"slotbook/transport/http/middleware"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Size        size.Handler
	Model       models.Handler
	Slot        slot.Handler
	Reservation reservation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	config         *config.Config
	app            middleware.AppMiddleware
	auth           middleware.AuthRole
	metrics        *metrics.Metrics
}

// SetupRoutes mounts the ambient middleware on router and the versioned API below /v1.
// Health checks are left to the caller, which owns the server state.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
		r.app.CORS(),
		r.app.Tracing,
		r.app.Metrics,
		r.app.RateLimit(),
	)

	if r.config.Metrics.Enable && r.metrics != nil {
		router.Method(http.MethodGet, r.config.Metrics.Path, r.metrics.Handler())
	}

	if r.config.Server.Env != constant.ServerEnvProduction {
		router.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.auth.APIKey, r.auth.Auth, r.auth.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Size.Router(routerGroup)
		r.DomainHandlers.Model.Router(routerGroup)
		r.DomainHandlers.Slot.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})
}

func New(
	cfg *config.Config,
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	auth middleware.AuthRole,
	metrics *metrics.Metrics,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		config:         cfg,
		app:            app,
		auth:           auth,
		metrics:        metrics,
	}
}
