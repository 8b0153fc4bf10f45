package scheduling_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"slotbook/internal/scheduling"
)

func reservationState() *memoryState {
	state := newMemoryState()
	state.slots["slot-1"] = scheduling.Slot{
		ID:       "slot-1",
		ModelID:  "model-1",
		Window:   scheduling.Window{Start: at(9, 0), End: at(10, 0)},
		IsActive: true,
	}
	state.slots["slot-off"] = scheduling.Slot{
		ID:       "slot-off",
		ModelID:  "model-1",
		Window:   scheduling.Window{Start: at(11, 0), End: at(12, 0)},
		IsActive: false,
	}
	state.slots["slot-2"] = scheduling.Slot{
		ID:       "slot-2",
		ModelID:  "model-2",
		Window:   scheduling.Window{Start: at(13, 0), End: at(17, 0)},
		IsActive: true,
	}
	state.reservations = []scheduling.Booking{
		{ID: "res-1", SlotID: "slot-2", UserID: "user-1", Window: scheduling.Window{Start: at(13, 0), End: at(14, 0)}},
	}

	return state
}

func TestReservationRule_Containment(t *testing.T) {
	rule := scheduling.NewReservationRule(reservationState(), scheduling.Policy{})

	tests := []struct {
		name    string
		start   int
		end     int
		wantErr error
	}{
		{name: "starts before slot", start: 859, end: 930, wantErr: scheduling.ErrOutsideSlotWindow},
		{name: "exactly the slot", start: 900, end: 1000},
		{name: "first half", start: 900, end: 930},
		{name: "second half", start: 930, end: 1000},
		{name: "ends after slot", start: 930, end: 1001, wantErr: scheduling.ErrOutsideSlotWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placement, err := rule.Check(context.Background(), scheduling.ReservationCandidate{
				SlotID: "slot-1",
				UserID: "user-1",
				Start:  at(tt.start/100, tt.start%100),
				End:    at(tt.end/100, tt.end%100),
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "model-1", placement.ModelID)
			assert.Equal(t, "slot-1", placement.Slot.ID)
		})
	}
}

func TestReservationRule_Check(t *testing.T) {
	tests := []struct {
		name      string
		policy    scheduling.Policy
		candidate scheduling.ReservationCandidate
		wantErr   error
	}{
		{
			name:      "unknown slot",
			candidate: scheduling.ReservationCandidate{SlotID: "missing", UserID: "user-1", Start: at(9, 0), End: at(10, 0)},
			wantErr:   scheduling.ErrSlotNotFound,
		},
		{
			name:      "inactive slot",
			candidate: scheduling.ReservationCandidate{SlotID: "slot-off", UserID: "user-1", Start: at(11, 0), End: at(11, 30)},
			wantErr:   scheduling.ErrSlotInactive,
		},
		{
			name:      "inactive slot wins over bad window",
			candidate: scheduling.ReservationCandidate{SlotID: "slot-off", UserID: "user-1", Start: at(11, 30), End: at(11, 0)},
			wantErr:   scheduling.ErrSlotInactive,
		},
		{
			name:      "reversed window",
			candidate: scheduling.ReservationCandidate{SlotID: "slot-2", UserID: "user-1", Start: at(15, 0), End: at(14, 0)},
			wantErr:   scheduling.ErrInvalidWindow,
		},
		{
			name:      "overlaps another reservation",
			candidate: scheduling.ReservationCandidate{SlotID: "slot-2", UserID: "user-2", Start: at(13, 30), End: at(14, 30)},
			wantErr:   scheduling.ErrReservationOverlap,
		},
		{
			name:      "touches another reservation",
			candidate: scheduling.ReservationCandidate{SlotID: "slot-2", UserID: "user-2", Start: at(14, 0), End: at(15, 0)},
		},
		{
			name:      "same user allowed without policy",
			candidate: scheduling.ReservationCandidate{SlotID: "slot-2", UserID: "user-1", Start: at(15, 0), End: at(16, 0)},
		},
		{
			name:      "same user rejected with policy",
			policy:    scheduling.Policy{OneReservationPerUserPerSlot: true},
			candidate: scheduling.ReservationCandidate{SlotID: "slot-2", UserID: "user-1", Start: at(15, 0), End: at(16, 0)},
			wantErr:   scheduling.ErrDuplicateUserReservation,
		},
		{
			name:      "policy does not block the reservation being edited",
			policy:    scheduling.Policy{OneReservationPerUserPerSlot: true},
			candidate: scheduling.ReservationCandidate{SlotID: "slot-2", UserID: "user-1", Start: at(15, 0), End: at(16, 0), ExcludeReservationID: "res-1"},
		},
		{
			name:      "update excludes itself",
			candidate: scheduling.ReservationCandidate{SlotID: "slot-2", UserID: "user-1", Start: at(13, 30), End: at(14, 30), ExcludeReservationID: "res-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := scheduling.NewReservationRule(reservationState(), tt.policy)

			_, err := rule.Check(context.Background(), tt.candidate)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationRule_StorageFailure(t *testing.T) {
	state := reservationState()
	state.fail = true

	_, err := scheduling.NewReservationRule(state, scheduling.Policy{}).Check(context.Background(), scheduling.ReservationCandidate{
		SlotID: "slot-1",
		Start:  at(9, 0),
		End:    at(10, 0),
	})

	kind, _ := scheduling.KindOf(err)
	assert.Equal(t, scheduling.KindInternal, kind)
}

func TestLockKeys(t *testing.T) {
	assert.Equal(t, "slot-model:model-1", scheduling.SlotModelLockKey("model-1"))
	assert.Equal(t, "reservation-slot:slot-1", scheduling.ReservationSlotLockKey("slot-1"))
	assert.NotEqual(t, scheduling.SlotModelLockKey("x"), scheduling.ReservationSlotLockKey("x"))
}
