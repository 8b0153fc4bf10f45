package model

import "slotbook/shared/model"

const (
	TableName  = "models"
	EntityName = "model"

	FieldID     = "id"
	FieldName   = "name"
	FieldSizeID = "size_id"
	FieldNic    = "nic"
	FieldNotes  = "notes"
)

// Model is a bookable entity. SizeID is nil when no size is assigned.
type Model struct {
	ID     string  `db:"id"`
	Name   string  `db:"name"`
	SizeID *string `db:"size_id"`
	Nic    string  `db:"nic"`
	Notes  string  `db:"notes"`
	model.Metadata
}
