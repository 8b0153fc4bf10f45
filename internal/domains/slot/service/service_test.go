package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"slotbook/config"
	"slotbook/infras/metrics"
	"slotbook/infras/otel/mocks"
	txMocks "slotbook/infras/postgres/mocks"
	reservationMocks "slotbook/internal/domains/reservation/mocks"
	slotMocks "slotbook/internal/domains/slot/mocks"
	"slotbook/internal/domains/slot/model"
	"slotbook/internal/domains/slot/model/dto"
	"slotbook/internal/domains/slot/service"
	"slotbook/internal/scheduling"
	schedulingMocks "slotbook/internal/scheduling/mocks"
	cacheMocks "slotbook/shared/cache/mocks"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/failure"
)

const (
	slotID  = "3f1c2b4a-5d6e-4f70-8a9b-0c1d2e3f4a5b"
	modelID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	otherID = "1b2c3d4e-5f6a-4b7c-8d9e-0f1a2b3c4d5e"
)

type fixture struct {
	svc          service.Slot
	repo         *slotMocks.MockSlot
	reservations *reservationMocks.MockReservation
	state        *schedulingMocks.MockAccessor
	tx           *txMocks.Transactor
	metrics      *metrics.Metrics
}

func newFixture(t *testing.T, policy string) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.SlotDeletePolicy = policy

	f := fixture{
		repo:         slotMocks.NewMockSlot(ctrl),
		reservations: reservationMocks.NewMockReservation(ctrl),
		state:        schedulingMocks.NewMockAccessor(ctrl),
		tx:           txMocks.NewTransactor(),
		metrics:      metrics.New(cfg),
	}
	f.svc = service.New(f.repo, f.reservations, f.state, f.tx, cfg, mockCache, mocks.NewOtel(), f.metrics)

	return f
}

func (f fixture) rejections(kind scheduling.Kind) float64 {
	return testutil.ToFloat64(f.metrics.Rejections().WithLabelValues(string(kind)))
}

func (f fixture) expectResolve() {
	f.state.EXPECT().ResolveModels(gomock.Any(), gomock.Any()).
		Return(map[string]scheduling.ModelRef{modelID: {ID: modelID, Name: "Studio A"}}, nil)
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
}

func stamp(hour int) string {
	return at(hour).Format(time.RFC3339)
}

func ptr[T any](v T) *T {
	return &v
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
}

func stored() model.Slot {
	return model.Slot{ID: slotID, ModelID: modelID, StartDateTime: at(9), EndDateTime: at(12), IsActive: true}
}

func TestSlotService_Create(t *testing.T) {
	request := dto.CreateSlotRequest{ModelID: modelID, StartDateTime: stamp(9), EndDateTime: stamp(12), Notes: " morning "}

	t.Run("persists inside the model lock", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.state.EXPECT().GetModel(gomock.Any(), modelID).Return(scheduling.ModelRef{ID: modelID}, true, nil)
		f.state.EXPECT().ListActiveSlots(gomock.Any(), modelID, scheduling.Window{Start: at(9), End: at(12)}, "").Return(nil, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, slot model.Slot) error {
				assert.True(t, slot.IsActive)
				assert.Equal(t, "morning", slot.Notes)
				assert.Equal(t, "admin-id", slot.CreatedBy)

				return nil
			})
		f.expectResolve()

		res, err := f.svc.Create(adminContext(), request)

		require.NoError(t, err)
		assert.Equal(t, "Studio A", res.Model.Name)
		assert.Equal(t, stamp(9), res.StartDateTime)
		assert.Equal(t, []string{scheduling.SlotModelLockKey(modelID)}, f.tx.LastKeys())
	})

	t.Run("unknown model", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.state.EXPECT().GetModel(gomock.Any(), modelID).Return(scheduling.ModelRef{}, false, nil)

		_, err := f.svc.Create(adminContext(), request)

		assert.ErrorIs(t, err, scheduling.ErrModelNotFound)
		assert.InDelta(t, 1, f.rejections(scheduling.KindModelNotFound), 0)
	})

	t.Run("overlapping active sibling", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.state.EXPECT().GetModel(gomock.Any(), modelID).Return(scheduling.ModelRef{ID: modelID}, true, nil)
		f.state.EXPECT().ListActiveSlots(gomock.Any(), modelID, gomock.Any(), "").Return([]scheduling.Slot{
			{ID: otherID, ModelID: modelID, IsActive: true, Window: scheduling.Window{Start: at(11), End: at(13)}},
		}, nil)

		_, err := f.svc.Create(adminContext(), request)

		assert.ErrorIs(t, err, scheduling.ErrOverlapConflict)
		assert.InDelta(t, 1, f.rejections(scheduling.KindOverlapConflict), 0)
	})

	t.Run("inactive slot skips siblings", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		inactive := request
		inactive.IsActive = ptr(false)

		f.state.EXPECT().GetModel(gomock.Any(), modelID).Return(scheduling.ModelRef{ID: modelID}, true, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.expectResolve()

		res, err := f.svc.Create(adminContext(), inactive)

		require.NoError(t, err)
		assert.False(t, res.IsActive)
	})

	t.Run("inverted window", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.state.EXPECT().GetModel(gomock.Any(), modelID).Return(scheduling.ModelRef{ID: modelID}, true, nil)

		_, err := f.svc.Create(adminContext(), dto.CreateSlotRequest{ModelID: modelID, StartDateTime: stamp(12), EndDateTime: stamp(9)})

		assert.ErrorIs(t, err, scheduling.ErrInvalidWindow)
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		_, err := f.svc.Create(adminContext(), dto.CreateSlotRequest{ModelID: modelID, StartDateTime: "tomorrow", EndDateTime: stamp(9)})

		assert.ErrorIs(t, err, scheduling.ErrInvalidWindow)
		assert.Empty(t, f.tx.Keys)
	})

	t.Run("exclusion constraint backstop", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.state.EXPECT().GetModel(gomock.Any(), modelID).Return(scheduling.ModelRef{ID: modelID}, true, nil)
		f.state.EXPECT().ListActiveSlots(gomock.Any(), modelID, gomock.Any(), "").Return(nil, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to insert data (slot): %w", &pq.Error{Code: constant.PqErrorCodeExclusionViolation}))

		_, err := f.svc.Create(adminContext(), request)

		assert.ErrorIs(t, err, scheduling.ErrOverlapConflict)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.state.EXPECT().GetModel(gomock.Any(), modelID).Return(scheduling.ModelRef{}, false, errors.New("connection refused"))

		_, err := f.svc.Create(adminContext(), request)

		kind, _ := scheduling.KindOf(err)
		assert.Equal(t, scheduling.KindInternal, kind)
	})
}

func TestSlotService_GetAll(t *testing.T) {
	f := newFixture(t, config.SlotDeletePolicyForbid)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Slot, error) {
			assert.Equal(t, "slots.start_date_time", params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.Slot{stored()}, nil
		})
	f.expectResolve()

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "id; DROP TABLE slots"}, dto.ListSlotsQuery{ModelID: modelID})

	require.NoError(t, err)
	require.Len(t, res.Slots, 1)
	assert.Equal(t, "Studio A", res.Slots[0].Model.Name)
	assert.Equal(t, 1, res.TotalPage)
}

func TestSlotService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil)
		f.state.EXPECT().ResolveModels(gomock.Any(), []string{modelID}).Return(map[string]scheduling.ModelRef{}, nil)

		res, err := f.svc.Get(context.Background(), slotID)

		require.NoError(t, err)
		assert.Equal(t, modelID, res.Model.ID)
		assert.Empty(t, res.Model.Name)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Slot{}, nil)

		_, err := f.svc.Get(context.Background(), slotID)

		assert.ErrorIs(t, err, scheduling.ErrSlotNotFound)
	})
}

func TestSlotService_Availability(t *testing.T) {
	f := newFixture(t, config.SlotDeletePolicyForbid)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil)
	f.state.EXPECT().ListReservations(gomock.Any(), slotID, "res-edit").Return([]scheduling.Booking{
		{ID: "res-1", SlotID: slotID, Window: scheduling.Window{Start: at(10), End: at(11)}},
	}, nil)

	res, err := f.svc.Availability(context.Background(), slotID, "res-edit")

	require.NoError(t, err)
	assert.Equal(t, 120, res.RemainingMinutes)
	require.Len(t, res.FreeWindows, 2)
	assert.Equal(t, stamp(9), res.FreeWindows[0].StartDateTime)
	assert.Equal(t, stamp(11), res.FreeWindows[1].StartDateTime)
}

func TestSlotService_Update(t *testing.T) {
	t.Run("excludes itself from the overlap check", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil).Times(2)
		f.state.EXPECT().ListActiveSlots(gomock.Any(), modelID, scheduling.Window{Start: at(9), End: at(13)}, slotID).
			Return([]scheduling.Slot{{ID: slotID, ModelID: modelID, IsActive: true, Window: scheduling.Window{Start: at(9), End: at(12)}}}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, at(13), *fields[model.FieldEndDateTime].(*time.Time))
				assert.NotContains(t, fields, model.FieldStartDateTime)

				return nil
			})
		f.expectResolve()

		res, err := f.svc.Update(adminContext(), slotID, dto.UpdateSlotRequest{EndDateTime: ptr(stamp(13))})

		require.NoError(t, err)
		assert.Equal(t, stamp(13), res.EndDateTime)
		assert.Equal(t, "admin-id", res.ModifiedBy)
		assert.ElementsMatch(t, []string{scheduling.SlotModelLockKey(modelID), scheduling.ReservationSlotLockKey(slotID)}, f.tx.LastKeys())
	})

	t.Run("moving to another model locks both", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil).Times(2)
		f.state.EXPECT().GetModel(gomock.Any(), otherID).Return(scheduling.ModelRef{}, false, nil)

		_, err := f.svc.Update(adminContext(), slotID, dto.UpdateSlotRequest{ModelID: ptr(otherID)})

		assert.ErrorIs(t, err, scheduling.ErrModelNotFound)
		assert.ElementsMatch(t, []string{
			scheduling.SlotModelLockKey(modelID),
			scheduling.SlotModelLockKey(otherID),
			scheduling.ReservationSlotLockKey(slotID),
		}, f.tx.LastKeys())
	})

	t.Run("reactivating into an overlap", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		inactive := stored()
		inactive.IsActive = false

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil).Times(2)
		f.state.EXPECT().ListActiveSlots(gomock.Any(), modelID, gomock.Any(), slotID).
			Return([]scheduling.Slot{{ID: otherID, ModelID: modelID, IsActive: true, Window: scheduling.Window{Start: at(8), End: at(10)}}}, nil)

		_, err := f.svc.Update(adminContext(), slotID, dto.UpdateSlotRequest{IsActive: ptr(true)})

		assert.ErrorIs(t, err, scheduling.ErrOverlapConflict)
	})

	t.Run("deactivating never checks siblings", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil).Times(2)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.False(t, *fields[model.FieldIsActive].(*bool))

				return nil
			})
		f.expectResolve()

		res, err := f.svc.Update(adminContext(), slotID, dto.UpdateSlotRequest{IsActive: ptr(false)})

		require.NoError(t, err)
		assert.False(t, res.IsActive)
	})

	t.Run("shrinking past a reservation", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil).Times(2)
		f.state.EXPECT().ListActiveSlots(gomock.Any(), modelID, scheduling.Window{Start: at(9), End: at(11)}, slotID).Return(nil, nil)
		f.state.EXPECT().ListReservations(gomock.Any(), slotID, "").Return([]scheduling.Booking{
			{ID: "r1", SlotID: slotID, Window: scheduling.Window{Start: at(9), End: at(10)}},
			{ID: "r2", SlotID: slotID, Window: scheduling.Window{Start: at(10), End: at(12)}},
		}, nil)

		_, err := f.svc.Update(adminContext(), slotID, dto.UpdateSlotRequest{EndDateTime: ptr(stamp(11))})

		assert.ErrorIs(t, err, scheduling.ErrOutsideSlotWindow)
		assert.InDelta(t, 1, f.rejections(scheduling.KindOutsideSlotWindow), 0)
	})

	t.Run("shrinking around its reservations", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil).Times(2)
		f.state.EXPECT().ListActiveSlots(gomock.Any(), modelID, scheduling.Window{Start: at(10), End: at(12)}, slotID).Return(nil, nil)
		f.state.EXPECT().ListReservations(gomock.Any(), slotID, "").Return([]scheduling.Booking{
			{ID: "r1", SlotID: slotID, Window: scheduling.Window{Start: at(10), End: at(11)}},
		}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.expectResolve()

		res, err := f.svc.Update(adminContext(), slotID, dto.UpdateSlotRequest{StartDateTime: ptr(stamp(10))})

		require.NoError(t, err)
		assert.Equal(t, stamp(10), res.StartDateTime)
	})

	t.Run("model changed before the lock was taken", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		moved := stored()
		moved.ModelID = otherID

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(moved, nil),
		)

		_, err := f.svc.Update(adminContext(), slotID, dto.UpdateSlotRequest{Notes: ptr("x")})

		require.ErrorIs(t, err, service.ErrConcurrentMove)
		assert.ErrorIs(t, err, scheduling.ErrOverlapConflict)
	})

	t.Run("empty patch", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		_, err := f.svc.Update(adminContext(), slotID, dto.UpdateSlotRequest{})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing slot", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Slot{}, nil)

		_, err := f.svc.Update(adminContext(), slotID, dto.UpdateSlotRequest{Notes: ptr("x")})

		assert.ErrorIs(t, err, scheduling.ErrSlotNotFound)
	})
}

func TestSlotService_Delete(t *testing.T) {
	t.Run("forbid refuses while reservations exist", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil).Times(2)
		f.reservations.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Delete(adminContext(), slotID)

		assert.ErrorIs(t, err, scheduling.ErrSlotInUse)
		assert.InDelta(t, 1, f.rejections(scheduling.KindSlotInUse), 0)
	})

	t.Run("forbid deletes an unused slot", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil).Times(2)
		f.reservations.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Delete(adminContext(), slotID))
		assert.Contains(t, f.tx.LastKeys(), scheduling.ReservationSlotLockKey(slotID))
	})

	t.Run("cascade removes reservations first", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyCascade)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil).Times(2)
		gomock.InOrder(
			f.reservations.EXPECT().Delete(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) error {
					where, args := filter.GetWhereClause()
					assert.Equal(t, "(reservations.slot_id = :slot_id)", where)
					assert.Equal(t, slotID, args["slot_id"])

					return nil
				}),
			f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil),
		)

		require.NoError(t, f.svc.Delete(adminContext(), slotID))
	})

	t.Run("orphan leaves reservations alone", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyOrphan)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(), nil).Times(2)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Delete(adminContext(), slotID))
	})

	t.Run("missing slot", func(t *testing.T) {
		f := newFixture(t, config.SlotDeletePolicyForbid)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Slot{}, nil)

		assert.ErrorIs(t, f.svc.Delete(adminContext(), slotID), scheduling.ErrSlotNotFound)
	})
}
