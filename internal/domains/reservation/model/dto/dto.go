package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	modelDto "slotbook/internal/domains/models/model/dto"
	"slotbook/internal/domains/reservation/model"
	slotDto "slotbook/internal/domains/slot/model/dto"
	userModel "slotbook/internal/domains/user/model"
	"slotbook/internal/scheduling"
	"slotbook/shared"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	gModel "slotbook/shared/model"
	"slotbook/shared/timezone"
)

// CreateReservationRequest books a window of a slot for the caller.
type CreateReservationRequest struct {
	SlotID        string `json:"slot_id"         validate:"required,uuid"`
	StartDateTime string `json:"start_date_time" validate:"required"`
	EndDateTime   string `json:"end_date_time"   validate:"required"`
	Notes         string `json:"notes"           validate:"omitempty,max=1000"`
}

// Window parses the requested instants without checking their order.
func (c *CreateReservationRequest) Window() (scheduling.Window, error) {
	start, err := scheduling.ParseInstant("start_date_time", c.StartDateTime)
	if err != nil {
		return scheduling.Window{}, err
	}

	end, err := scheduling.ParseInstant("end_date_time", c.EndDateTime)
	if err != nil {
		return scheduling.Window{}, err
	}

	return scheduling.Window{Start: start, End: end}, nil
}

// ToModel snapshots the booking user and the slot's model onto the row.
func (c *CreateReservationRequest) ToModel(window scheduling.Window, user userModel.User, modelID, actor string) model.Reservation {
	now := timezone.Now()

	return model.Reservation{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		UserName:      user.FullName(),
		UserEmail:     user.Email,
		ModelID:       modelID,
		SlotID:        c.SlotID,
		StartDateTime: window.Start,
		EndDateTime:   window.End,
		Notes:         strings.TrimSpace(c.Notes),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

// AdminCreateReservationRequest books on behalf of the user owning UserEmail.
type AdminCreateReservationRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	CreateReservationRequest
}

// UpdateReservationRequest is a patch. UserEmail is honoured for admins only.
type UpdateReservationRequest struct {
	SlotID        *string `json:"slot_id"         validate:"omitempty,uuid"`
	StartDateTime *string `json:"start_date_time" validate:"omitempty"`
	EndDateTime   *string `json:"end_date_time"   validate:"omitempty"`
	Notes         *string `json:"notes"           validate:"omitempty,max=1000"`
	UserEmail     *string `json:"user_email"      validate:"omitempty,email"`
}

func (u *UpdateReservationRequest) HasChanges() bool {
	return u.SlotID != nil || u.StartDateTime != nil || u.EndDateTime != nil || u.Notes != nil || u.UserEmail != nil
}

// Fields parses the patch into column form. User and model columns are
// filled in by the caller.
func (u *UpdateReservationRequest) Fields() (ReservationFields, error) {
	fields := ReservationFields{SlotID: u.SlotID}

	if u.Notes != nil {
		notes := strings.TrimSpace(*u.Notes)
		fields.Notes = &notes
	}

	if u.StartDateTime != nil {
		start, err := scheduling.ParseInstant("start_date_time", *u.StartDateTime)
		if err != nil {
			return fields, err
		}

		fields.StartDateTime = &start
	}

	if u.EndDateTime != nil {
		end, err := scheduling.ParseInstant("end_date_time", *u.EndDateTime)
		if err != nil {
			return fields, err
		}

		fields.EndDateTime = &end
	}

	return fields, nil
}

type ReservationFields struct {
	UserID        *string    `db:"user_id"`
	UserName      *string    `db:"user_name"`
	UserEmail     *string    `db:"user_email"`
	ModelID       *string    `db:"model_id"`
	SlotID        *string    `db:"slot_id"`
	StartDateTime *time.Time `db:"start_date_time"`
	EndDateTime   *time.Time `db:"end_date_time"`
	Notes         *string    `db:"notes"`
}

// SetUser rewrites the user snapshot.
func (f *ReservationFields) SetUser(user userModel.User) {
	name := user.FullName()

	f.UserID = &user.ID
	f.UserName = &name
	f.UserEmail = &user.Email
}

// Apply overlays the patch on r.
func (f ReservationFields) Apply(r model.Reservation) model.Reservation {
	for _, field := range []struct {
		src *string
		dst *string
	}{
		{f.UserID, &r.UserID},
		{f.UserName, &r.UserName},
		{f.UserEmail, &r.UserEmail},
		{f.ModelID, &r.ModelID},
		{f.SlotID, &r.SlotID},
		{f.Notes, &r.Notes},
	} {
		if field.src != nil {
			*field.dst = *field.src
		}
	}

	if f.StartDateTime != nil {
		r.StartDateTime = *f.StartDateTime
	}

	if f.EndDateTime != nil {
		r.EndDateTime = *f.EndDateTime
	}

	return r
}

type ReservationResponse struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	UserName      string            `json:"user_name"`
	UserEmail     string            `json:"user_email"`
	SlotID        string            `json:"slot_id"`
	Slot          slotDto.SlotRef   `json:"slot"`
	ModelID       string            `json:"model_id"`
	Model         modelDto.ModelRef `json:"model"`
	StartDateTime string            `json:"start_date_time"`
	EndDateTime   string            `json:"end_date_time"`
	Notes         string            `json:"notes"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(m model.Reservation, slots map[string]scheduling.Slot, models map[string]scheduling.ModelRef) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.UserName = m.UserName
	r.UserEmail = m.UserEmail
	r.SlotID = m.SlotID
	r.Slot = slotDto.NewSlotRef(m.SlotID, slots)
	r.ModelID = m.ModelID
	r.Model = modelDto.NewModelRef(m.ModelID, models)
	r.StartDateTime = timezone.Format(m.StartDateTime, constant.DateFormat)
	r.EndDateTime = timezone.Format(m.EndDateTime, constant.DateFormat)
	r.Notes = m.Notes
	r.Metadata.FromModel(m.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (g *GetReservationsResponse) FromModels(reservations []model.Reservation, slots map[string]scheduling.Slot, models map[string]scheduling.ModelRef, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Reservations = make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		g.Reservations[i].FromModel(r, slots, models)
	}
}
