package dto

import (
	"strings"

	"github.com/google/uuid"

	"slotbook/internal/domains/size/model"
	"slotbook/shared"
	gDto "slotbook/shared/dto"
	gModel "slotbook/shared/model"
	"slotbook/shared/timezone"
)

type CreateSizeRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

func (c *CreateSizeRequest) ToModel(user string) model.Size {
	now := timezone.Now()

	return model.Size{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(c.Name),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateSizeRequest struct {
	Name *string `db:"name" json:"name" validate:"omitempty,notblank,max=100"`
}

// Normalize trims the patch and reports whether it carries any field.
func (u *UpdateSizeRequest) Normalize() bool {
	if u.Name == nil {
		return false
	}

	name := strings.TrimSpace(*u.Name)
	u.Name = &name

	return true
}

type SizeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (s *SizeResponse) FromModel(size model.Size) {
	s.ID = size.ID
	s.Name = size.Name
	s.Metadata.FromModel(size.Metadata)
}

type GetSizesResponse struct {
	Sizes     []SizeResponse `json:"sizes"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (g *GetSizesResponse) FromModels(sizes []model.Size, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Sizes = make([]SizeResponse, len(sizes))
	for i, size := range sizes {
		g.Sizes[i].FromModel(size)
	}
}
