package scheduling

import (
	"context"
	"time"
)

type SlotCandidate struct {
	ModelID       string
	Start         time.Time
	End           time.Time
	IsActive      bool
	ExcludeSlotID string
}

// SlotRule keeps active slots of one model from overlapping.
type SlotRule struct {
	state State
}

func NewSlotRule(state State) *SlotRule {
	return &SlotRule{state: state}
}

// Check decides whether candidate may be persisted. Inactive candidates only
// need a valid window and never look at siblings.
func (r *SlotRule) Check(ctx context.Context, candidate SlotCandidate) error {
	window, err := NewWindow(candidate.Start, candidate.End)
	if err != nil {
		return err
	}

	if !candidate.IsActive {
		return nil
	}

	siblings, err := r.state.ListActiveSlots(ctx, candidate.ModelID, window, candidate.ExcludeSlotID)
	if err != nil {
		return Internal(err)
	}

	for _, sibling := range siblings {
		if sibling.ID == candidate.ExcludeSlotID || !sibling.IsActive {
			continue
		}

		if window.Overlaps(sibling.Window) {
			return ErrOverlapConflict
		}
	}

	return nil
}
