package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"slotbook/config"
	"slotbook/infras/otel"
	"slotbook/internal/domains/size/model"
	"slotbook/internal/domains/size/model/dto"
	"slotbook/internal/domains/size/repository"
	"slotbook/shared"
	"slotbook/shared/cache"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/failure"
	gRepo "slotbook/shared/repository"
)

const (
	cacheGetSize    = constant.CachePrefixSize + ":get"
	cacheGetAllSize = constant.CachePrefixSize + ":gets"
)

var sortableFields = map[string]bool{
	model.FieldName:          true,
	constant.FieldCreatedAt:  true,
	constant.FieldModifiedAt: true,
}

type Size interface {
	Create(ctx context.Context, req dto.CreateSizeRequest) (dto.SizeResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetSizesResponse, error)
	Get(ctx context.Context, id string) (dto.SizeResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateSizeRequest) (dto.SizeResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Size
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Size, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Size {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSizeRequest) (res dto.SizeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".size.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	size := req.ToModel(user)

	if err = s.repo.Insert(ctx, size); err != nil {
		if gRepo.IsViolation(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("size name already exists") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create size")

		return res, fmt.Errorf("failed to create size: %w", err)
	}

	s.invalidate(ctx, "")

	res.FromModel(size)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetSizesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".size.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !sortableFields[params.SortBy] {
		params.SortBy = model.FieldName
		params.SortDir = gDto.SortDirAsc
	}

	if params.SortDir == "" {
		params.SortDir = gDto.SortDirAsc
	}

	filter := gDto.FilterGroup{}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSize, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for sizes")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sizes")

		return res, fmt.Errorf("failed to count sizes: %w", err)
	}

	sizes, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sizes")

		return res, fmt.Errorf("failed to get sizes: %w", err)
	}

	res.FromModels(sizes, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save sizes to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SizeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".size.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetSize, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for size")

		return res, nil
	}

	size, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(size)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save size to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateSizeRequest) (res dto.SizeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".size.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Normalize() {
		return res, failure.BadRequestFromString("at least one field must be provided") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	size, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsViolation(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("size name already exists") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update size")

		return res, fmt.Errorf("failed to update size: %w", err)
	}

	s.invalidate(ctx, id)

	size.Name = *req.Name
	size.ModifiedBy = user
	res.FromModel(size)

	return res, nil
}

// Delete removes a size. Models referencing it keep existing with no size.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".size.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if size exists")

		return fmt.Errorf("failed to check if size exists: %w", err)
	}

	if !exist {
		return failure.NotFound("size not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete size")

		return fmt.Errorf("failed to delete size: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Size, error) {
	size, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get size")

		return size, fmt.Errorf("failed to get size: %w", err)
	}

	if size.ID == constant.Empty {
		return size, failure.NotFound("size not found") //nolint:wrapcheck
	}

	return size, nil
}

// invalidate drops size projections. Models and slots embed the size name, so
// their projections go too whenever an existing size changes.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSize)

		if id == constant.Empty {
			return
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSize, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete size from cache")
		}

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixModel)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixSlot)
	}()
}
