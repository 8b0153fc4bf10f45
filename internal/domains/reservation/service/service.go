package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"slotbook/config"
	"slotbook/infras/metrics"
	"slotbook/infras/otel"
	"slotbook/infras/postgres"
	"slotbook/internal/domains/reservation/model"
	"slotbook/internal/domains/reservation/model/dto"
	"slotbook/internal/domains/reservation/repository"
	userModel "slotbook/internal/domains/user/model"
	userService "slotbook/internal/domains/user/service"
	"slotbook/internal/scheduling"
	"slotbook/shared"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/failure"
	gRepo "slotbook/shared/repository"
)

// ErrConcurrentMove rejects an update whose reservation changed slot while
// the slot locks were being acquired.
var ErrConcurrentMove = scheduling.NewError(scheduling.KindReservationOverlap, "reservation was moved concurrently, retry the update")

var sortableFields = map[string]bool{
	model.FieldStartDateTime: true,
	model.FieldEndDateTime:   true,
	constant.FieldCreatedAt:  true,
}

// Reservation manages bookings. The *Mine variants act for the caller in ctx
// and only see the caller's own reservations.
type Reservation interface {
	Create(ctx context.Context, req dto.AdminCreateReservationRequest) (dto.ReservationResponse, error)
	CreateMine(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateReservationRequest) (dto.ReservationResponse, error)
	UpdateMine(ctx context.Context, id string, req dto.UpdateReservationRequest) (dto.ReservationResponse, error)
	Delete(ctx context.Context, id string) error
	DeleteMine(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo    repository.Reservation
	users   userService.User
	state   scheduling.Accessor
	rule    *scheduling.ReservationRule
	policy  scheduling.Policy
	tx      postgres.Transactor
	otel    otel.Otel
	metrics *metrics.Metrics
}

func New(
	repo repository.Reservation,
	users userService.User,
	state scheduling.Accessor,
	tx postgres.Transactor,
	cfg *config.Config,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Reservation {
	policy := scheduling.Policy{OneReservationPerUserPerSlot: cfg.Booking.OneReservationPerUserPerSlot}

	return &serviceImpl{
		repo:    repo,
		users:   users,
		state:   state,
		rule:    scheduling.NewReservationRule(state, policy),
		policy:  policy,
		tx:      tx,
		otel:    otel,
		metrics: metrics,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.AdminCreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.lookupUser(s.users.FindByEmail(ctx, userModel.NormalizeEmail(req.UserEmail)))
	if err != nil {
		return res, s.fail(err, "failed to create reservation")
	}

	return s.create(ctx, user, req.CreateReservationRequest)
}

func (s *serviceImpl) CreateMine(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.CreateMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.lookupUser(s.users.FindByID(ctx, caller))
	if err != nil {
		return res, s.fail(err, "failed to create reservation")
	}

	return s.create(ctx, user, req)
}

func (s *serviceImpl) create(ctx context.Context, user userModel.User, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	window, err := req.Window()
	if err != nil {
		return res, s.fail(err, "failed to create reservation")
	}

	var created model.Reservation

	err = s.tx.WithLocks(ctx, []string{scheduling.ReservationSlotLockKey(req.SlotID)}, func(ctx context.Context) error {
		placement, err := s.rule.Check(ctx, scheduling.ReservationCandidate{
			SlotID: req.SlotID,
			UserID: user.ID,
			Start:  window.Start,
			End:    window.End,
		})
		if err != nil {
			return err
		}

		reservation := req.ToModel(window, user, placement.ModelID, actor)

		if err := s.write(s.repo.Insert(ctx, reservation)); err != nil {
			return err
		}

		created = reservation

		return nil
	})
	if err != nil {
		return res, s.fail(err, "failed to create reservation")
	}

	log.Info().Str("reservationID", created.ID).Str("slotID", created.SlotID).Str("userID", created.UserID).Msg("reservation created")

	return s.present(ctx, created)
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, params, gDto.FilterGroup{})
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.list(ctx, params, shared.FilterByID(caller, model.FieldUserID, model.TableName))
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	if !sortableFields[params.SortBy] {
		params.SortBy = model.FieldStartDateTime
		params.SortDir = gDto.SortDirAsc
	}

	if params.SortDir == "" {
		params.SortDir = gDto.SortDirAsc
	}

	params.SortBy = model.TableName + "." + params.SortBy

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, s.fail(err, "failed to count reservations")
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		return res, s.fail(err, "failed to get reservations")
	}

	slots, models, err := s.resolve(ctx, reservations...)
	if err != nil {
		return res, err
	}

	res.FromModels(reservations, slots, models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.find(ctx, id, constant.Empty)
	if err != nil {
		return res, s.fail(err, "failed to get reservation")
	}

	return s.present(ctx, reservation)
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.update(ctx, id, constant.Empty, req)
}

func (s *serviceImpl) UpdateMine(ctx context.Context, id string, req dto.UpdateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.UpdateMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, _ := ctx.Value(constant.ContextKeyUserID).(string)
	req.UserEmail = nil

	return s.update(ctx, id, caller, req)
}

// update re-runs placement only when the slot, the window, or (under the
// per-user policy) the owner changes. An empty owner means any reservation.
func (s *serviceImpl) update(ctx context.Context, id, owner string, req dto.UpdateReservationRequest) (res dto.ReservationResponse, err error) {
	if !req.HasChanges() {
		return res, failure.BadRequestFromString("at least one field must be provided") //nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields, err := req.Fields()
	if err != nil {
		return res, s.fail(err, "failed to update reservation")
	}

	if req.UserEmail != nil {
		user, err := s.lookupUser(s.users.FindByEmail(ctx, userModel.NormalizeEmail(*req.UserEmail)))
		if err != nil {
			return res, s.fail(err, "failed to update reservation")
		}

		fields.SetUser(user)
	}

	current, err := s.find(ctx, id, owner)
	if err != nil {
		return res, s.fail(err, "failed to update reservation")
	}

	keys := []string{scheduling.ReservationSlotLockKey(current.SlotID)}
	if fields.SlotID != nil {
		keys = append(keys, scheduling.ReservationSlotLockKey(*fields.SlotID))
	}

	var updated model.Reservation

	err = s.tx.WithLocks(ctx, keys, func(ctx context.Context) error {
		current, err := s.find(ctx, id, owner)
		if err != nil {
			return err
		}

		// Moved to another slot since the keys were taken.
		if !slices.Contains(keys, scheduling.ReservationSlotLockKey(current.SlotID)) {
			return ErrConcurrentMove
		}

		next := fields.Apply(current)

		if s.needsPlacement(current, next) {
			placement, err := s.rule.Check(ctx, scheduling.ReservationCandidate{
				SlotID:               next.SlotID,
				UserID:               next.UserID,
				Start:                next.StartDateTime,
				End:                  next.EndDateTime,
				ExcludeReservationID: id,
			})
			if err != nil {
				return err
			}

			fields.ModelID = &placement.ModelID
			next.ModelID = placement.ModelID
		}

		changes := shared.TransformFields(fields, actor)

		if err := s.write(s.repo.Update(ctx, changes, shared.FilterByID(id, model.FieldID, model.TableName))); err != nil {
			return err
		}

		next.ModifiedBy = actor
		if modifiedAt, ok := changes[constant.FieldModifiedAt].(time.Time); ok {
			next.ModifiedAt = modifiedAt
		}

		updated = next

		return nil
	})
	if err != nil {
		return res, s.fail(err, "failed to update reservation")
	}

	return s.present(ctx, updated)
}

func (s *serviceImpl) needsPlacement(current, next model.Reservation) bool {
	if next.SlotID != current.SlotID {
		return true
	}

	if !next.StartDateTime.Equal(current.StartDateTime) || !next.EndDateTime.Equal(current.EndDateTime) {
		return true
	}

	return s.policy.OneReservationPerUserPerSlot && next.UserID != current.UserID
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.delete(ctx, id, constant.Empty)
}

func (s *serviceImpl) DeleteMine(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.DeleteMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.delete(ctx, id, caller)
}

func (s *serviceImpl) delete(ctx context.Context, id, owner string) error {
	if _, err := s.find(ctx, id, owner); err != nil {
		return s.fail(err, "failed to delete reservation")
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return s.fail(err, "failed to delete reservation")
	}

	log.Info().Str("reservationID", id).Msg("reservation deleted")

	return nil
}

// find loads a reservation. A non-empty owner hides everybody else's.
func (s *serviceImpl) find(ctx context.Context, id, owner string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return reservation, scheduling.Internal(err)
	}

	if reservation.ID == constant.Empty || (owner != constant.Empty && reservation.UserID != owner) {
		return model.Reservation{}, scheduling.ErrReservationNotFound
	}

	return reservation, nil
}

func (s *serviceImpl) lookupUser(user userModel.User, err error) (userModel.User, error) {
	switch {
	case errors.Is(err, userService.ErrUserNotFound):
		return user, scheduling.ErrUserNotFound
	case err != nil:
		return user, scheduling.Internal(err)
	default:
		return user, nil
	}
}

// write maps constraint violations raised by the schema back to scheduling kinds.
func (s *serviceImpl) write(err error) error {
	switch {
	case err == nil:
		return nil
	case gRepo.IsViolation(err, constant.PqErrorCodeExclusionViolation):
		return scheduling.ErrReservationOverlap
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

func (s *serviceImpl) resolve(ctx context.Context, reservations ...model.Reservation) (map[string]scheduling.Slot, map[string]scheduling.ModelRef, error) {
	slotIDs := make([]string, len(reservations))
	modelIDs := make([]string, len(reservations))

	for i, r := range reservations {
		slotIDs[i] = r.SlotID
		modelIDs[i] = r.ModelID
	}

	slots, err := s.state.ResolveSlots(ctx, slotIDs)
	if err != nil {
		return nil, nil, s.fail(err, "failed to resolve slots of reservations")
	}

	models, err := s.state.ResolveModels(ctx, modelIDs)
	if err != nil {
		return nil, nil, s.fail(err, "failed to resolve models of reservations")
	}

	return slots, models, nil
}

func (s *serviceImpl) present(ctx context.Context, reservation model.Reservation) (res dto.ReservationResponse, err error) {
	slots, models, err := s.resolve(ctx, reservation)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation, slots, models)

	return res, nil
}
