package model

import (
	"time"

	"slotbook/internal/scheduling"
	"slotbook/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldUserName      = "user_name"
	FieldUserEmail     = "user_email"
	FieldModelID       = "model_id"
	FieldSlotID        = "slot_id"
	FieldStartDateTime = "start_date_time"
	FieldEndDateTime   = "end_date_time"
	FieldNotes         = "notes"
)

// Reservation carries a snapshot of the booking user and of the slot's model
// taken when the reservation was placed. SlotID may point at a deleted slot.
type Reservation struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	UserName      string    `db:"user_name"`
	UserEmail     string    `db:"user_email"`
	ModelID       string    `db:"model_id"`
	SlotID        string    `db:"slot_id"`
	StartDateTime time.Time `db:"start_date_time"`
	EndDateTime   time.Time `db:"end_date_time"`
	Notes         string    `db:"notes"`
	model.Metadata
}

func (r Reservation) Window() scheduling.Window {
	return scheduling.Window{Start: r.StartDateTime, End: r.EndDateTime}
}

func (r Reservation) ToBooking() scheduling.Booking {
	return scheduling.Booking{
		ID:     r.ID,
		SlotID: r.SlotID,
		UserID: r.UserID,
		Window: r.Window(),
	}
}
