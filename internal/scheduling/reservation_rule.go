package scheduling

import (
	"context"
	"time"
)

type ReservationCandidate struct {
	SlotID               string
	UserID               string
	Start                time.Time
	End                  time.Time
	ExcludeReservationID string
}

// Placement is what a successful reservation check hands back for
// denormalisation onto the stored record.
type Placement struct {
	Slot    Slot
	ModelID string
}

// ReservationRule keeps reservations inside an active slot and apart from
// each other.
type ReservationRule struct {
	state  State
	policy Policy
}

func NewReservationRule(state State, policy Policy) *ReservationRule {
	return &ReservationRule{state: state, policy: policy}
}

// Check runs the slot lookup, activity, window, containment and sibling
// checks in that order and stops at the first failure.
func (r *ReservationRule) Check(ctx context.Context, candidate ReservationCandidate) (Placement, error) {
	slot, found, err := r.state.GetSlot(ctx, candidate.SlotID)
	if err != nil {
		return Placement{}, Internal(err)
	}

	if !found {
		return Placement{}, ErrSlotNotFound
	}

	if !slot.IsActive {
		return Placement{}, ErrSlotInactive
	}

	window, err := NewWindow(candidate.Start, candidate.End)
	if err != nil {
		return Placement{}, err
	}

	if !slot.Window.Contains(window) {
		return Placement{}, ErrOutsideSlotWindow
	}

	siblings, err := r.state.ListReservations(ctx, slot.ID, candidate.ExcludeReservationID)
	if err != nil {
		return Placement{}, Internal(err)
	}

	if r.policy.OneReservationPerUserPerSlot {
		for _, sibling := range siblings {
			if sibling.ID != candidate.ExcludeReservationID && sibling.UserID == candidate.UserID {
				return Placement{}, ErrDuplicateUserReservation
			}
		}
	}

	for _, sibling := range siblings {
		if sibling.ID == candidate.ExcludeReservationID {
			continue
		}

		if window.Overlaps(sibling.Window) {
			return Placement{}, ErrReservationOverlap
		}
	}

	return Placement{Slot: slot, ModelID: slot.ModelID}, nil
}
