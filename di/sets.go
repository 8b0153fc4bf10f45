package di

import (
	"github.com/google/wire"

	"slotbook/config"
	"slotbook/infras/jwt"
	"slotbook/infras/metrics"
	"slotbook/infras/otel"
	"slotbook/infras/postgres"
	"slotbook/infras/redis"
	authService "slotbook/internal/domains/auth/service"
	modelRepository "slotbook/internal/domains/models/repository"
	modelService "slotbook/internal/domains/models/service"
	reservationRepository "slotbook/internal/domains/reservation/repository"
	reservationService "slotbook/internal/domains/reservation/service"
	sizeRepository "slotbook/internal/domains/size/repository"
	sizeService "slotbook/internal/domains/size/service"
	slotRepository "slotbook/internal/domains/slot/repository"
	slotService "slotbook/internal/domains/slot/service"
	userRepository "slotbook/internal/domains/user/repository"
	userService "slotbook/internal/domains/user/service"
	authHandler "slotbook/internal/handlers/auth"
	modelHandler "slotbook/internal/handlers/models"
	reservationHandler "slotbook/internal/handlers/reservation"
	sizeHandler "slotbook/internal/handlers/size"
	slotHandler "slotbook/internal/handlers/slot"
	"slotbook/internal/scheduling/store"
	"slotbook/permissions"
	"slotbook/shared/cache"
	"slotbook/transport/http/middleware"
	"slotbook/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var catalogDomain = wire.NewSet(
	sizeRepository.New,
	sizeService.New,
	modelRepository.New,
	modelService.New,
)

var schedulingDomain = wire.NewSet(
	slotRepository.New,
	reservationRepository.New,
	store.New,
	slotService.New,
	reservationService.New,
)

var domains = wire.NewSet(
	authDomain,
	catalogDomain,
	schedulingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	sizeHandler.New,
	modelHandler.New,
	slotHandler.New,
	reservationHandler.New,
	router.New,
)
