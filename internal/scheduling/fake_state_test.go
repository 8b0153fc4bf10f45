package scheduling_test

import (
	"context"
	"errors"
	"sort"

	"slotbook/internal/scheduling"
)

var errStorage = errors.New("storage unavailable")

// memoryState is an in-memory State for rule tests.
type memoryState struct {
	models       map[string]scheduling.ModelRef
	slots        map[string]scheduling.Slot
	reservations []scheduling.Booking
	fail         bool
	slotLookups  int
}

func newMemoryState() *memoryState {
	return &memoryState{
		models: map[string]scheduling.ModelRef{},
		slots:  map[string]scheduling.Slot{},
	}
}

func (m *memoryState) GetModel(_ context.Context, id string) (scheduling.ModelRef, bool, error) {
	if m.fail {
		return scheduling.ModelRef{}, false, errStorage
	}

	model, ok := m.models[id]

	return model, ok, nil
}

func (m *memoryState) GetSlot(_ context.Context, id string) (scheduling.Slot, bool, error) {
	if m.fail {
		return scheduling.Slot{}, false, errStorage
	}

	slot, ok := m.slots[id]

	return slot, ok, nil
}

func (m *memoryState) ListReservations(_ context.Context, slotID, excludeID string) ([]scheduling.Booking, error) {
	if m.fail {
		return nil, errStorage
	}

	res := []scheduling.Booking{}

	for _, b := range m.reservations {
		if b.SlotID == slotID && b.ID != excludeID {
			res = append(res, b)
		}
	}

	return res, nil
}

func (m *memoryState) ListActiveSlots(_ context.Context, modelID string, within scheduling.Window, excludeID string) ([]scheduling.Slot, error) {
	m.slotLookups++

	if m.fail {
		return nil, errStorage
	}

	res := []scheduling.Slot{}

	for _, s := range m.slots {
		if s.ModelID == modelID && s.IsActive && s.ID != excludeID && s.Window.Overlaps(within) {
			res = append(res, s)
		}
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Window.Start.Before(res[j].Window.Start) })

	return res, nil
}
