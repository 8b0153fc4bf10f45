package dto

import (
	"strings"

	"github.com/google/uuid"

	"slotbook/internal/domains/models/model"
	sizeModel "slotbook/internal/domains/size/model"
	"slotbook/internal/scheduling"
	"slotbook/shared"
	gDto "slotbook/shared/dto"
	gModel "slotbook/shared/model"
	"slotbook/shared/timezone"
)

type CreateModelRequest struct {
	Name   string  `json:"name"    validate:"required,notblank,max=100"`
	SizeID *string `json:"size_id" validate:"omitempty,uuid"`
	Nic    string  `json:"nic"     validate:"omitempty,max=100"`
	Notes  string  `json:"notes"   validate:"omitempty,max=1000"`
}

func (c *CreateModelRequest) ToModel(user string) model.Model {
	now := timezone.Now()

	return model.Model{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(c.Name),
		SizeID: c.SizeID,
		Nic:    strings.TrimSpace(c.Nic),
		Notes:  strings.TrimSpace(c.Notes),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateModelRequest is a patch. An empty size_id removes the size.
type UpdateModelRequest struct {
	Name   *string `db:"name"    json:"name"    validate:"omitempty,notblank,max=100"`
	SizeID *string `db:"size_id" json:"size_id" validate:"omitempty,uuid|len=0"`
	Nic    *string `db:"nic"     json:"nic"     validate:"omitempty,max=100"`
	Notes  *string `db:"notes"   json:"notes"   validate:"omitempty,max=1000"`
}

// Normalize trims the patch and reports whether it carries any field.
func (u *UpdateModelRequest) Normalize() bool {
	for _, field := range []**string{&u.Name, &u.Nic, &u.Notes} {
		if *field != nil {
			trimmed := strings.TrimSpace(**field)
			*field = &trimmed
		}
	}

	return u.Name != nil || u.SizeID != nil || u.Nic != nil || u.Notes != nil
}

// ClearsSize reports whether the patch removes the size assignment.
func (u *UpdateModelRequest) ClearsSize() bool {
	return u.SizeID != nil && *u.SizeID == ""
}

// Apply overlays the patch on m.
func (u *UpdateModelRequest) Apply(m *model.Model) {
	if u.Name != nil {
		m.Name = *u.Name
	}

	if u.SizeID != nil {
		m.SizeID = u.SizeID
		if u.ClearsSize() {
			m.SizeID = nil
		}
	}

	if u.Nic != nil {
		m.Nic = *u.Nic
	}

	if u.Notes != nil {
		m.Notes = *u.Notes
	}
}

type SizeRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ModelRef is the expanded model embedded in slot and reservation responses.
// A model that no longer exists renders with its id only.
type ModelRef struct {
	ID    string   `json:"id"`
	Name  string   `json:"name,omitempty"`
	Notes string   `json:"notes,omitempty"`
	Size  *SizeRef `json:"size,omitempty"`
}

func NewModelRef(id string, resolved map[string]scheduling.ModelRef) ModelRef {
	ref, ok := resolved[id]
	if !ok {
		return ModelRef{ID: id}
	}

	res := ModelRef{ID: ref.ID, Name: ref.Name, Notes: ref.Notes}
	if ref.Size != nil {
		res.Size = &SizeRef{ID: ref.Size.ID, Name: ref.Size.Name}
	}

	return res
}

type ModelResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	SizeID *string  `json:"size_id"`
	Size   *SizeRef `json:"size"`
	Nic    string   `json:"nic"`
	Notes  string   `json:"notes"`
	gDto.Metadata
}

// FromModel fills the response, expanding the size from sizes when known.
func (r *ModelResponse) FromModel(m model.Model, sizes map[string]sizeModel.Size) {
	r.ID = m.ID
	r.Name = m.Name
	r.SizeID = m.SizeID
	r.Nic = m.Nic
	r.Notes = m.Notes
	r.Size = nil

	if m.SizeID != nil {
		r.Size = &SizeRef{ID: *m.SizeID}
		if size, ok := sizes[*m.SizeID]; ok {
			r.Size.Name = size.Name
		}
	}

	r.Metadata.FromModel(m.Metadata)
}

type GetModelsResponse struct {
	Models    []ModelResponse `json:"models"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (g *GetModelsResponse) FromModels(models []model.Model, sizes map[string]sizeModel.Size, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Models = make([]ModelResponse, len(models))
	for i, m := range models {
		g.Models[i].FromModel(m, sizes)
	}
}
