package dto

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	modelDto "slotbook/internal/domains/models/model/dto"
	"slotbook/internal/domains/slot/model"
	"slotbook/internal/scheduling"
	"slotbook/shared"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	gModel "slotbook/shared/model"
	"slotbook/shared/timezone"
)

const (
	queryParamFrom    = "from"
	queryParamTo      = "to"
	queryParamActive  = "active"
	queryParamModelID = "model_id"
)

type CreateSlotRequest struct {
	ModelID       string `json:"model_id"        validate:"required,uuid"`
	StartDateTime string `json:"start_date_time" validate:"required"`
	EndDateTime   string `json:"end_date_time"   validate:"required"`
	IsActive      *bool  `json:"is_active"`
	Notes         string `json:"notes"           validate:"omitempty,max=1000"`
}

// ToModel builds the row for an already parsed window. is_active defaults to true.
func (c *CreateSlotRequest) ToModel(window scheduling.Window, user string) model.Slot {
	now := timezone.Now()

	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.Slot{
		ID:            uuid.NewString(),
		ModelID:       c.ModelID,
		StartDateTime: window.Start,
		EndDateTime:   window.End,
		IsActive:      active,
		Notes:         strings.TrimSpace(c.Notes),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateSlotRequest is a patch over the stored slot.
type UpdateSlotRequest struct {
	ModelID       *string `json:"model_id"        validate:"omitempty,uuid"`
	StartDateTime *string `json:"start_date_time" validate:"omitempty"`
	EndDateTime   *string `json:"end_date_time"   validate:"omitempty"`
	IsActive      *bool   `json:"is_active"`
	Notes         *string `json:"notes"           validate:"omitempty,max=1000"`
}

func (u *UpdateSlotRequest) HasChanges() bool {
	return u.ModelID != nil || u.StartDateTime != nil || u.EndDateTime != nil || u.IsActive != nil || u.Notes != nil
}

// Fields parses the patch timestamps. A malformed one is an invalid window.
func (u *UpdateSlotRequest) Fields() (SlotFields, error) {
	fields := SlotFields{
		ModelID:  u.ModelID,
		IsActive: u.IsActive,
	}

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

// SlotFields is the parsed patch in column form.
type SlotFields struct {
	ModelID       *string    `db:"model_id"`
	StartDateTime *time.Time `db:"start_date_time"`
	EndDateTime   *time.Time `db:"end_date_time"`
	IsActive      *bool      `db:"is_active"`
	Notes         *string    `db:"notes"`
}

// Apply overlays the patch on s.
func (f SlotFields) Apply(s model.Slot) model.Slot {
	if f.ModelID != nil {
		s.ModelID = *f.ModelID
	}

	if f.StartDateTime != nil {
		s.StartDateTime = *f.StartDateTime
	}

	if f.EndDateTime != nil {
		s.EndDateTime = *f.EndDateTime
	}

	if f.IsActive != nil {
		s.IsActive = *f.IsActive
	}

	if f.Notes != nil {
		s.Notes = *f.Notes
	}

	return s
}

// ListSlotsQuery narrows the slot listing. From and To bound the slot start.
type ListSlotsQuery struct {
	From    *time.Time
	To      *time.Time
	Active  *bool
	ModelID string
}

func (q *ListSlotsQuery) FromRequest(r *http.Request) error {
	values := r.URL.Query()

	if from := values.Get(queryParamFrom); from != "" {
		parsed, err := scheduling.ParseInstant(queryParamFrom, from)
		if err != nil {
			return err
		}

		q.From = &parsed
	}

	if to := values.Get(queryParamTo); to != "" {
		parsed, err := scheduling.ParseInstant(queryParamTo, to)
		if err != nil {
			return err
		}

		q.To = &parsed
	}

	q.Active = shared.ConvertStringToBool(values.Get(queryParamActive))
	q.ModelID = values.Get(queryParamModelID)

	return nil
}

func (q ListSlotsQuery) Filter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.ModelID != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldModelID, Value: q.ModelID, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if q.Active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldIsActive, Value: *q.Active, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if q.From != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldStartDateTime, ArgName: queryParamFrom, Value: *q.From, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName,
		})
	}

	if q.To != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldStartDateTime, ArgName: queryParamTo, Value: *q.To, Operator: gDto.FilterOperatorLessEq, Table: model.TableName,
		})
	}

	return filter
}

type SlotResponse struct {
	ID            string            `json:"id"`
	ModelID       string            `json:"model_id"`
	Model         modelDto.ModelRef `json:"model"`
	StartDateTime string            `json:"start_date_time"`
	EndDateTime   string            `json:"end_date_time"`
	IsActive      bool              `json:"is_active"`
	Notes         string            `json:"notes"`
	gDto.Metadata
}

func (r *SlotResponse) FromModel(s model.Slot, models map[string]scheduling.ModelRef) {
	r.ID = s.ID
	r.ModelID = s.ModelID
	r.Model = modelDto.NewModelRef(s.ModelID, models)
	r.StartDateTime = timezone.Format(s.StartDateTime, constant.DateFormat)
	r.EndDateTime = timezone.Format(s.EndDateTime, constant.DateFormat)
	r.IsActive = s.IsActive
	r.Notes = s.Notes
	r.Metadata.FromModel(s.Metadata)
}

type GetSlotsResponse struct {
	Slots     []SlotResponse `json:"slots"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (g *GetSlotsResponse) FromModels(slots []model.Slot, models map[string]scheduling.ModelRef, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Slots = make([]SlotResponse, len(slots))
	for i, s := range slots {
		g.Slots[i].FromModel(s, models)
	}
}

// SlotRef is the slot embedded in reservation responses. A deleted slot
// renders with its id only.
type SlotRef struct {
	ID            string             `json:"id"`
	StartDateTime string             `json:"start_date_time,omitempty"`
	EndDateTime   string             `json:"end_date_time,omitempty"`
	IsActive      *bool              `json:"is_active,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Model         *modelDto.ModelRef `json:"model,omitempty"`
}

func NewSlotRef(id string, resolved map[string]scheduling.Slot) SlotRef {
	slot, ok := resolved[id]
	if !ok {
		return SlotRef{ID: id}
	}

	active := slot.IsActive
	ref := modelDto.NewModelRef(slot.ModelID, map[string]scheduling.ModelRef{slot.ModelID: slot.Model})

	return SlotRef{
		ID:            slot.ID,
		StartDateTime: timezone.Format(slot.Window.Start, constant.DateFormat),
		EndDateTime:   timezone.Format(slot.Window.End, constant.DateFormat),
		IsActive:      &active,
		Notes:         slot.Notes,
		Model:         &ref,
	}
}

type WindowResponse struct {
	StartDateTime string `json:"start_date_time"`
	EndDateTime   string `json:"end_date_time"`
}

type AvailabilityResponse struct {
	SlotID           string           `json:"slot_id"`
	FreeWindows      []WindowResponse `json:"free_windows"`
	RemainingMinutes int              `json:"remaining_minutes"`
}

func (a *AvailabilityResponse) FromWindows(slotID string, slot scheduling.Window, booked []scheduling.Window) {
	a.SlotID = slotID
	a.RemainingMinutes = scheduling.RemainingMinutes(slot, booked)

	free := scheduling.FreeWindows(slot, booked)

	a.FreeWindows = make([]WindowResponse, len(free))
	for i, w := range free {
		a.FreeWindows[i] = WindowResponse{
			StartDateTime: timezone.Format(w.Start, constant.DateFormat),
			EndDateTime:   timezone.Format(w.End, constant.DateFormat),
		}
	}
}
