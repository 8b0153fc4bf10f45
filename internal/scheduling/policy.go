package scheduling

// Policy carries the switchable parts of reservation placement.
type Policy struct {
	// OneReservationPerUserPerSlot rejects a second reservation by the same
	// user on the same slot even when the windows do not overlap.
	OneReservationPerUserPerSlot bool
}
