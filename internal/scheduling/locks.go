package scheduling

const (
	lockPrefixSlotModel       = "slot-model:"
	lockPrefixReservationSlot = "reservation-slot:"
)

// SlotModelLockKey serialises slot placement for one model.
func SlotModelLockKey(modelID string) string {
	return lockPrefixSlotModel + modelID
}

// ReservationSlotLockKey serialises reservation placement inside one slot.
func ReservationSlotLockKey(slotID string) string {
	return lockPrefixReservationSlot + slotID
}
