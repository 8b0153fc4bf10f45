package scheduling

//go:generate go run go.uber.org/mock/mockgen -source=./state.go -destination=./mocks/state_mock.go -package=mocks

import "context"

type SizeRef struct {
	ID   string
	Name string
}

// ModelRef is the bookable entity as seen by the rules and read projections.
type ModelRef struct {
	ID    string
	Name  string
	Notes string
	Size  *SizeRef
}

// Slot is an availability window of one model. Model is expanded when the
// accessor can resolve it.
type Slot struct {
	ID       string
	ModelID  string
	Model    ModelRef
	Window   Window
	IsActive bool
	Notes    string
}

// Booking is the part of a reservation the placement rule looks at.
type Booking struct {
	ID     string
	SlotID string
	UserID string
	Window Window
}

// State is the read side the placement rules consult. Inside a locked
// transaction the implementation must read through that transaction.
type State interface {
	GetModel(ctx context.Context, id string) (ModelRef, bool, error)
	GetSlot(ctx context.Context, id string) (Slot, bool, error)
	// ListReservations returns the reservations of a slot, skipping excludeID.
	ListReservations(ctx context.Context, slotID, excludeID string) ([]Booking, error)
	// ListActiveSlots returns active slots of a model overlapping within,
	// skipping excludeID.
	ListActiveSlots(ctx context.Context, modelID string, within Window, excludeID string) ([]Slot, error)
}

// Resolver expands references for read projections in batches.
type Resolver interface {
	ResolveSlots(ctx context.Context, ids []string) (map[string]Slot, error)
	ResolveModels(ctx context.Context, ids []string) (map[string]ModelRef, error)
}

type Accessor interface {
	State
	Resolver
}
