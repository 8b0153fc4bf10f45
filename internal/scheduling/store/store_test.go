package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	modelMocks "slotbook/internal/domains/models/mocks"
	modelModel "slotbook/internal/domains/models/model"
	reservationMocks "slotbook/internal/domains/reservation/mocks"
	reservationModel "slotbook/internal/domains/reservation/model"
	sizeMocks "slotbook/internal/domains/size/mocks"
	sizeModel "slotbook/internal/domains/size/model"
	slotMocks "slotbook/internal/domains/slot/mocks"
	slotModel "slotbook/internal/domains/slot/model"
	"slotbook/internal/scheduling"
	"slotbook/internal/scheduling/store"
)

type fixture struct {
	accessor     scheduling.Accessor
	slots        *slotMocks.MockSlot
	models       *modelMocks.MockModel
	sizes        *sizeMocks.MockSize
	reservations *reservationMocks.MockReservation
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		slots:        slotMocks.NewMockSlot(ctrl),
		models:       modelMocks.NewMockModel(ctrl),
		sizes:        sizeMocks.NewMockSize(ctrl),
		reservations: reservationMocks.NewMockReservation(ctrl),
	}
	f.accessor = store.New(f.slots, f.models, f.sizes, f.reservations)

	return f
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
}

func TestGetModel(t *testing.T) {
	ctx := context.Background()
	sizeID := "size-1"

	t.Run("expands size", func(t *testing.T) {
		f := newFixture(t)

		f.models.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).
			Return([]modelModel.Model{{ID: "model-1", Name: "Ana", Notes: "blue", SizeID: &sizeID}}, nil)
		f.sizes.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).
			Return([]sizeModel.Size{{ID: sizeID, Name: "M"}}, nil)

		ref, found, err := f.accessor.GetModel(ctx, "model-1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, scheduling.ModelRef{
			ID:    "model-1",
			Name:  "Ana",
			Notes: "blue",
			Size:  &scheduling.SizeRef{ID: sizeID, Name: "M"},
		}, ref)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.models.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return([]modelModel.Model{}, nil)

		_, found, err := f.accessor.GetModel(ctx, "model-1")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)

		f.models.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		_, _, err := f.accessor.GetModel(ctx, "model-1")
		require.Error(t, err)
	})
}

func TestGetSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.slots.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return([]slotModel.Slot{{
		ID:            "slot-1",
		ModelID:       "model-1",
		StartDateTime: at(9),
		EndDateTime:   at(12),
		IsActive:      true,
	}}, nil)
	f.models.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return([]modelModel.Model{{ID: "model-1", Name: "Ana"}}, nil)

	slot, found, err := f.accessor.GetSlot(ctx, "slot-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "model-1", slot.ModelID)
	assert.Equal(t, "Ana", slot.Model.Name)
	assert.Nil(t, slot.Model.Size)
	assert.Equal(t, scheduling.Window{Start: at(9), End: at(12)}, slot.Window)
	assert.True(t, slot.IsActive)
}

func TestResolveSlotsKeepsDeletedModelsAsReference(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.slots.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return([]slotModel.Slot{
		{ID: "slot-1", ModelID: "gone"},
	}, nil)
	f.models.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return([]modelModel.Model{}, nil)

	resolved, err := f.accessor.ResolveSlots(ctx, []string{"slot-1", "slot-1", ""})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, scheduling.ModelRef{ID: "gone"}, resolved["slot-1"].Model)
}

func TestResolveEmpty(t *testing.T) {
	f := newFixture(t)

	slots, err := f.accessor.ResolveSlots(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, slots)

	models, err := f.accessor.ResolveModels(context.Background(), []string{""})
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestListReservations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.reservations.EXPECT().ListBySlot(ctx, "slot-1", "res-2").Return([]reservationModel.Reservation{
		{ID: "res-1", SlotID: "slot-1", UserID: "user-1", StartDateTime: at(9), EndDateTime: at(10)},
	}, nil)

	bookings, err := f.accessor.ListReservations(ctx, "slot-1", "res-2")
	require.NoError(t, err)
	assert.Equal(t, []scheduling.Booking{{
		ID:     "res-1",
		SlotID: "slot-1",
		UserID: "user-1",
		Window: scheduling.Window{Start: at(9), End: at(10)},
	}}, bookings)
}

func TestListActiveSlots(t *testing.T) {
	ctx := context.Background()
	within := scheduling.Window{Start: at(9), End: at(12)}

	t.Run("converts rows", func(t *testing.T) {
		f := newFixture(t)

		f.slots.EXPECT().ListActiveOverlapping(ctx, "model-1", within, "slot-9").Return([]slotModel.Slot{
			{ID: "slot-1", ModelID: "model-1", StartDateTime: at(10), EndDateTime: at(11), IsActive: true},
		}, nil)

		slots, err := f.accessor.ListActiveSlots(ctx, "model-1", within, "slot-9")
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, "slot-1", slots[0].ID)
		assert.Equal(t, scheduling.ModelRef{ID: "model-1"}, slots[0].Model)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)

		f.slots.EXPECT().ListActiveOverlapping(ctx, "model-1", within, "").Return(nil, errors.New("boom"))

		_, err := f.accessor.ListActiveSlots(ctx, "model-1", within, "")
		require.Error(t, err)
	})
}
