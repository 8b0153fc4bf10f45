package model

import "slotbook/shared/model"

const (
	TableName  = "sizes"
	EntityName = "size"

	FieldID   = "id"
	FieldName = "name"
)

type Size struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}
