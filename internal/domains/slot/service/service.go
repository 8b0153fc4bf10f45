package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Slot=MockSlotService

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"slotbook/config"
	"slotbook/infras/metrics"
	"slotbook/infras/otel"
	"slotbook/infras/postgres"
	reservationModel "slotbook/internal/domains/reservation/model"
	reservationRepo "slotbook/internal/domains/reservation/repository"
	"slotbook/internal/domains/slot/model"
	"slotbook/internal/domains/slot/model/dto"
	"slotbook/internal/domains/slot/repository"
	"slotbook/internal/scheduling"
	"slotbook/shared"
	"slotbook/shared/cache"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/failure"
	gRepo "slotbook/shared/repository"
)

const (
	cacheGetSlot    = constant.CachePrefixSlot + ":get"
	cacheGetAllSlot = constant.CachePrefixSlot + ":gets"
)

// ErrConcurrentMove rejects an update whose slot changed model while the
// model locks were being acquired.
var ErrConcurrentMove = scheduling.NewError(scheduling.KindOverlapConflict, "slot was moved concurrently, retry the update")

var sortableFields = map[string]bool{
	model.FieldStartDateTime: true,
	model.FieldEndDateTime:   true,
	constant.FieldCreatedAt:  true,
}

type Slot interface {
	Create(ctx context.Context, req dto.CreateSlotRequest) (dto.SlotResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, query dto.ListSlotsQuery) (dto.GetSlotsResponse, error)
	Get(ctx context.Context, id string) (dto.SlotResponse, error)
	// Availability reports the unbooked parts of a slot, ignoring excludeReservationID.
	Availability(ctx context.Context, id, excludeReservationID string) (dto.AvailabilityResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateSlotRequest) (dto.SlotResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Slot
	reservations reservationRepo.Reservation
	state        scheduling.Accessor
	rule         *scheduling.SlotRule
	tx           postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	metrics      *metrics.Metrics
}

func New(
	repo repository.Slot,
	reservations reservationRepo.Reservation,
	state scheduling.Accessor,
	tx postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Slot {
	return &serviceImpl{
		repo:         repo,
		reservations: reservations,
		state:        state,
		rule:         scheduling.NewSlotRule(state),
		tx:           tx,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		metrics:      metrics,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSlotRequest) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	window, err := parseWindow(req.StartDateTime, req.EndDateTime)
	if err != nil {
		return res, s.fail(err, "failed to create slot")
	}

	slot := req.ToModel(window, user)

	err = s.tx.WithLocks(ctx, []string{scheduling.SlotModelLockKey(slot.ModelID)}, func(ctx context.Context) error {
		if err := s.ensureModel(ctx, slot.ModelID); err != nil {
			return err
		}

		if err := s.rule.Check(ctx, candidate(slot)); err != nil {
			return err
		}

		return s.write(s.repo.Insert(ctx, slot))
	})
	if err != nil {
		return res, s.fail(err, "failed to create slot")
	}

	log.Info().Str("slotID", slot.ID).Str("modelID", slot.ModelID).Msg("slot created")

	s.invalidate(ctx, "")

	return s.present(ctx, slot)
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, query dto.ListSlotsQuery) (res dto.GetSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !sortableFields[params.SortBy] {
		params.SortBy = model.FieldStartDateTime
		params.SortDir = gDto.SortDirAsc
	}

	if params.SortDir == "" {
		params.SortDir = gDto.SortDirAsc
	}

	params.SortBy = model.TableName + "." + params.SortBy

	filter := query.Filter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSlot, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for slots")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, s.fail(err, "failed to count slots")
	}

	slots, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		return res, s.fail(err, "failed to get slots")
	}

	models, err := s.resolveModels(ctx, slots...)
	if err != nil {
		return res, err
	}

	res.FromModels(slots, models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetSlot, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for slot")

		return res, nil
	}

	slot, err := s.find(ctx, id)
	if err != nil {
		return res, s.fail(err, "failed to get slot")
	}

	res, err = s.present(ctx, slot)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slot to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Availability(ctx context.Context, id, excludeReservationID string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := s.find(ctx, id)
	if err != nil {
		return res, s.fail(err, "failed to get slot availability")
	}

	bookings, err := s.state.ListReservations(ctx, id, excludeReservationID)
	if err != nil {
		return res, s.fail(err, "failed to get slot availability")
	}

	booked := make([]scheduling.Window, len(bookings))
	for i, booking := range bookings {
		booked[i] = booking.Window
	}

	res.FromWindows(slot.ID, slot.Window(), booked)

	return res, nil
}

// Update overlays the patch and re-runs placement against the result. Both
// the old and new model are locked when the slot moves.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateSlotRequest) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.HasChanges() {
		return res, failure.BadRequestFromString("at least one field must be provided") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields, err := req.Fields()
	if err != nil {
		return res, s.fail(err, "failed to update slot")
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, s.fail(err, "failed to update slot")
	}

	keys := []string{scheduling.SlotModelLockKey(current.ModelID), scheduling.ReservationSlotLockKey(id)}
	if fields.ModelID != nil {
		keys = append(keys, scheduling.SlotModelLockKey(*fields.ModelID))
	}

	var updated model.Slot

	err = s.tx.WithLocks(ctx, keys, func(ctx context.Context) error {
		current, err := s.find(ctx, id)
		if err != nil {
			return err
		}

		if !slices.Contains(keys, scheduling.SlotModelLockKey(current.ModelID)) {
			return ErrConcurrentMove
		}

		next := fields.Apply(current)

		if next.ModelID != current.ModelID {
			if err := s.ensureModel(ctx, next.ModelID); err != nil {
				return err
			}
		}

		check := candidate(next)
		check.ExcludeSlotID = id

		if err := s.rule.Check(ctx, check); err != nil {
			return err
		}

		if err := s.keepsReservations(ctx, current, next); err != nil {
			return err
		}

		changes := shared.TransformFields(fields, user)

		if err := s.write(s.repo.Update(ctx, changes, shared.FilterByID(id, model.FieldID, model.TableName))); err != nil {
			return err
		}

		next.ModifiedBy = user
		if modifiedAt, ok := changes[constant.FieldModifiedAt].(time.Time); ok {
			next.ModifiedAt = modifiedAt
		}

		updated = next

		return nil
	})
	if err != nil {
		return res, s.fail(err, "failed to update slot")
	}

	s.invalidate(ctx, id)

	return s.present(ctx, updated)
}

// Delete applies the configured policy to the slot's reservations.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return s.fail(err, "failed to delete slot")
	}

	keys := []string{scheduling.SlotModelLockKey(current.ModelID), scheduling.ReservationSlotLockKey(id)}

	err = s.tx.WithLocks(ctx, keys, func(ctx context.Context) error {
		if _, err := s.find(ctx, id); err != nil {
			return err
		}

		bySlot := shared.FilterByID(id, reservationModel.FieldSlotID, reservationModel.TableName)

		switch s.cfg.Booking.SlotDeletePolicy {
		case config.SlotDeletePolicyCascade:
			if err := s.reservations.Delete(ctx, bySlot); err != nil {
				return scheduling.Internal(err)
			}
		case config.SlotDeletePolicyOrphan:
		default:
			inUse, err := s.reservations.Exist(ctx, bySlot)
			if err != nil {
				return scheduling.Internal(err)
			}

			if inUse {
				return scheduling.ErrSlotInUse
			}
		}

		return s.write(s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)))
	})
	if err != nil {
		return s.fail(err, "failed to delete slot")
	}

	log.Info().Str("slotID", id).Str("policy", s.cfg.Booking.SlotDeletePolicy).Msg("slot deleted")

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Slot, error) {
	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return slot, scheduling.Internal(err)
	}

	if slot.ID == constant.Empty {
		return slot, scheduling.ErrSlotNotFound
	}

	return slot, nil
}

func (s *serviceImpl) ensureModel(ctx context.Context, modelID string) error {
	_, found, err := s.state.GetModel(ctx, modelID)
	if err != nil {
		return scheduling.Internal(err)
	}

	if !found {
		return scheduling.ErrModelNotFound
	}

	return nil
}

// write maps constraint violations raised by the schema back to scheduling kinds.
func (s *serviceImpl) write(err error) error {
	switch {
	case err == nil:
		return nil
	case gRepo.IsViolation(err, constant.PqErrorCodeExclusionViolation):
		return scheduling.ErrOverlapConflict
	case gRepo.IsViolation(err, constant.PqErrorCodeFkViolation):
		return scheduling.ErrModelNotFound
	default:
		return scheduling.Internal(err)
	}
}

// fail classifies err, logging internal failures and counting rejections.
func (s *serviceImpl) fail(err error, msg string) error {
	err = scheduling.Classify(err)

	kind, _ := scheduling.KindOf(err)
	if kind == scheduling.KindInternal {
		log.Error().Err(err).Msg(msg)

		return err
	}

	s.metrics.RecordRejection(string(kind))

	return err
}

func (s *serviceImpl) resolveModels(ctx context.Context, slots ...model.Slot) (map[string]scheduling.ModelRef, error) {
	ids := make([]string, len(slots))
	for i, slot := range slots {
		ids[i] = slot.ModelID
	}

	models, err := s.state.ResolveModels(ctx, ids)
	if err != nil {
		return nil, s.fail(err, "failed to resolve models of slots")
	}

	return models, nil
}

func (s *serviceImpl) present(ctx context.Context, slot model.Slot) (res dto.SlotResponse, err error) {
	models, err := s.resolveModels(ctx, slot)
	if err != nil {
		return res, err
	}

	res.FromModel(slot, models)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSlot)

		if id == constant.Empty {
			return
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSlot, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete slot from cache")
		}
	}()
}

func parseWindow(start, end string) (scheduling.Window, error) {
	startTime, err := scheduling.ParseInstant("start_date_time", start)
	if err != nil {
		return scheduling.Window{}, err
	}

	endTime, err := scheduling.ParseInstant("end_date_time", end)
	if err != nil {
		return scheduling.Window{}, err
	}

	return scheduling.Window{Start: startTime, End: endTime}, nil
}

// keepsReservations refuses to shrink a slot past any of its reservations.
// Deactivation leaves reservations in place.
func (s *serviceImpl) keepsReservations(ctx context.Context, current, next model.Slot) error {
	if !next.StartDateTime.After(current.StartDateTime) && !next.EndDateTime.Before(current.EndDateTime) {
		return nil
	}

	bookings, err := s.state.ListReservations(ctx, current.ID, constant.Empty)
	if err != nil {
		return scheduling.Internal(err)
	}

	window := scheduling.Window{Start: next.StartDateTime, End: next.EndDateTime}
	for _, booking := range bookings {
		if !window.Contains(booking.Window) {
			return scheduling.ErrOutsideSlotWindow
		}
	}

	return nil
}

func candidate(slot model.Slot) scheduling.SlotCandidate {
	return scheduling.SlotCandidate{
		ModelID:  slot.ModelID,
		Start:    slot.StartDateTime,
		End:      slot.EndDateTime,
		IsActive: slot.IsActive,
	}
}
