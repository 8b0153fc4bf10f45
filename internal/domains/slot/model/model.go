package model

import (
	"time"

	"slotbook/internal/scheduling"
	"slotbook/shared/model"
)

const (
	TableName  = "slots"
	EntityName = "slot"

	FieldID            = "id"
	FieldModelID       = "model_id"
	FieldStartDateTime = "start_date_time"
	FieldEndDateTime   = "end_date_time"
	FieldIsActive      = "is_active"
	FieldNotes         = "notes"
)

type Slot struct {
	ID            string    `db:"id"`
	ModelID       string    `db:"model_id"`
	StartDateTime time.Time `db:"start_date_time"`
	EndDateTime   time.Time `db:"end_date_time"`
	IsActive      bool      `db:"is_active"`
	Notes         string    `db:"notes"`
	model.Metadata
}

func (s Slot) Window() scheduling.Window {
	return scheduling.Window{Start: s.StartDateTime, End: s.EndDateTime}
}

// ToScheduling converts the row. The model is referenced by id only.
func (s Slot) ToScheduling() scheduling.Slot {
	return scheduling.Slot{
		ID:       s.ID,
		ModelID:  s.ModelID,
		Model:    scheduling.ModelRef{ID: s.ModelID},
		Window:   s.Window(),
		IsActive: s.IsActive,
		Notes:    s.Notes,
	}
}
