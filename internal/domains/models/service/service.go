package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"slotbook/config"
	"slotbook/infras/otel"
	"slotbook/internal/domains/models/model"
	"slotbook/internal/domains/models/model/dto"
	"slotbook/internal/domains/models/repository"
	sizeModel "slotbook/internal/domains/size/model"
	sizeRepo "slotbook/internal/domains/size/repository"
	"slotbook/shared"
	"slotbook/shared/cache"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/failure"
	gRepo "slotbook/shared/repository"
)

const (
	cacheGetModel    = constant.CachePrefixModel + ":get"
	cacheGetAllModel = constant.CachePrefixModel + ":gets"
)

const (
	messageNameTaken    = "model name must be unique"
	messageSizeNotFound = "size not found"
	messageModelInUse   = "model still has slots"
)

var sortableFields = map[string]bool{
	model.FieldName:          true,
	constant.FieldCreatedAt:  true,
	constant.FieldModifiedAt: true,
}

type Model interface {
	Create(ctx context.Context, req dto.CreateModelRequest) (dto.ModelResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetModelsResponse, error)
	Get(ctx context.Context, id string) (dto.ModelResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateModelRequest) (dto.ModelResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Model
	sizes sizeRepo.Size
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Model, sizes sizeRepo.Size, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Model {
	return &serviceImpl{
		repo:  repo,
		sizes: sizes,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateModelRequest) (res dto.ModelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".model.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.SizeID != nil && *req.SizeID == constant.Empty {
		req.SizeID = nil
	}

	if err = s.ensureSize(ctx, req.SizeID); err != nil {
		return res, err
	}

	m := req.ToModel(user)

	if err = s.repo.Insert(ctx, m); err != nil {
		return res, s.mapWriteError(err)
	}

	s.invalidate(ctx, "")

	return s.present(ctx, m)
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetModelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".model.GetAll")
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
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllModel, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for models")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count models")

		return res, fmt.Errorf("failed to count models: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get models")

		return res, fmt.Errorf("failed to get models: %w", err)
	}

	sizes, err := s.lookupSizes(ctx, models...)
	if err != nil {
		return res, err
	}

	res.FromModels(models, sizes, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save models to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ModelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".model.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetModel, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for model")

		return res, nil
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res, err = s.present(ctx, m)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save model to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateModelRequest) (res dto.ModelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".model.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Normalize() {
		return res, failure.BadRequestFromString("at least one field must be provided") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !req.ClearsSize() {
		if err = s.ensureSize(ctx, req.SizeID); err != nil {
			return res, err
		}
	}

	fields := shared.TransformFields(req, user)
	if req.ClearsSize() {
		fields[model.FieldSizeID] = nil
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return res, s.mapWriteError(err)
	}

	s.invalidate(ctx, id)

	req.Apply(&current)
	current.ModifiedBy = user

	return s.present(ctx, current)
}

// Delete refuses while slots still point at the model.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".model.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if model exists")

		return fmt.Errorf("failed to check if model exists: %w", err)
	}

	if !exist {
		return failure.NotFound("model not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if gRepo.IsViolation(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict(messageModelInUse) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete model")

		return fmt.Errorf("failed to delete model: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Model, error) {
	m, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get model")

		return m, fmt.Errorf("failed to get model: %w", err)
	}

	if m.ID == constant.Empty {
		return m, failure.NotFound("model not found") //nolint:wrapcheck
	}

	return m, nil
}

func (s *serviceImpl) ensureSize(ctx context.Context, sizeID *string) error {
	if sizeID == nil {
		return nil
	}

	exist, err := s.sizes.Exist(ctx, shared.FilterByID(*sizeID, sizeModel.FieldID, sizeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if size exists")

		return fmt.Errorf("failed to check if size exists: %w", err)
	}

	if !exist {
		return failure.NotFound(messageSizeNotFound) //nolint:wrapcheck
	}

	return nil
}

// mapWriteError turns constraint violations into client failures.
func (s *serviceImpl) mapWriteError(err error) error {
	switch {
	case gRepo.IsViolation(err, constant.PqErrorCodeUniqueViolation):
		return failure.Conflict(messageNameTaken) //nolint:wrapcheck
	case gRepo.IsViolation(err, constant.PqErrorCodeFkViolation):
		return failure.NotFound(messageSizeNotFound) //nolint:wrapcheck
	default:
		log.Error().Err(err).Msg("failed to write model")

		return fmt.Errorf("failed to write model: %w", err)
	}
}

func (s *serviceImpl) lookupSizes(ctx context.Context, models ...model.Model) (map[string]sizeModel.Size, error) {
	ids := make([]string, 0, len(models))
	for _, m := range models {
		if m.SizeID != nil {
			ids = append(ids, *m.SizeID)
		}
	}

	ids = shared.UniqueStrings(ids)
	res := make(map[string]sizeModel.Size, len(ids))

	if len(ids) == 0 {
		return res, nil
	}

	sizes, err := s.sizes.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(ids, sizeModel.FieldID, sizeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get sizes of models")

		return nil, fmt.Errorf("failed to get sizes of models: %w", err)
	}

	for _, size := range sizes {
		res[size.ID] = size
	}

	return res, nil
}

func (s *serviceImpl) present(ctx context.Context, m model.Model) (res dto.ModelResponse, err error) {
	sizes, err := s.lookupSizes(ctx, m)
	if err != nil {
		return res, err
	}

	res.FromModel(m, sizes)

	return res, nil
}

// invalidate drops model projections, plus slot projections that embed an
// existing model.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllModel)

		if id == constant.Empty {
			return
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetModel, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete model from cache")
		}

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixSlot)
	}()
}
