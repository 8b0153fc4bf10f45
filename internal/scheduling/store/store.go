// Package store backs the scheduling rules with the postgres repositories.
// Reads go through the transaction on ctx when one is open.
package store

import (
	"context"
	"fmt"

	modelModel "slotbook/internal/domains/models/model"
	modelRepo "slotbook/internal/domains/models/repository"
	reservationRepo "slotbook/internal/domains/reservation/repository"
	sizeModel "slotbook/internal/domains/size/model"
	sizeRepo "slotbook/internal/domains/size/repository"
	slotModel "slotbook/internal/domains/slot/model"
	slotRepo "slotbook/internal/domains/slot/repository"
	"slotbook/internal/scheduling"
	"slotbook/shared"
	gDto "slotbook/shared/dto"
)

type Store struct {
	slots        slotRepo.Slot
	models       modelRepo.Model
	sizes        sizeRepo.Size
	reservations reservationRepo.Reservation
}

func New(slots slotRepo.Slot, models modelRepo.Model, sizes sizeRepo.Size, reservations reservationRepo.Reservation) scheduling.Accessor {
	return &Store{
		slots:        slots,
		models:       models,
		sizes:        sizes,
		reservations: reservations,
	}
}

func (s *Store) GetModel(ctx context.Context, id string) (scheduling.ModelRef, bool, error) {
	resolved, err := s.ResolveModels(ctx, []string{id})
	if err != nil {
		return scheduling.ModelRef{}, false, err
	}

	ref, ok := resolved[id]

	return ref, ok, nil
}

func (s *Store) GetSlot(ctx context.Context, id string) (scheduling.Slot, bool, error) {
	resolved, err := s.ResolveSlots(ctx, []string{id})
	if err != nil {
		return scheduling.Slot{}, false, err
	}

	slot, ok := resolved[id]

	return slot, ok, nil
}

func (s *Store) ListReservations(ctx context.Context, slotID, excludeID string) ([]scheduling.Booking, error) {
	reservations, err := s.reservations.ListBySlot(ctx, slotID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations of slot: %w", err)
	}

	res := make([]scheduling.Booking, len(reservations))
	for i, r := range reservations {
		res[i] = r.ToBooking()
	}

	return res, nil
}

func (s *Store) ListActiveSlots(ctx context.Context, modelID string, within scheduling.Window, excludeID string) ([]scheduling.Slot, error) {
	slots, err := s.slots.ListActiveOverlapping(ctx, modelID, within, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active slots of model: %w", err)
	}

	res := make([]scheduling.Slot, len(slots))
	for i, slot := range slots {
		res[i] = slot.ToScheduling()
	}

	return res, nil
}

// ResolveSlots loads the slots among ids with their models expanded. Unknown
// ids are absent from the result.
func (s *Store) ResolveSlots(ctx context.Context, ids []string) (map[string]scheduling.Slot, error) {
	ids = shared.UniqueStrings(ids)
	res := make(map[string]scheduling.Slot, len(ids))

	if len(ids) == 0 {
		return res, nil
	}

	slots, err := s.slots.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(ids, slotModel.FieldID, slotModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve slots: %w", err)
	}

	modelIDs := make([]string, len(slots))
	for i, slot := range slots {
		modelIDs[i] = slot.ModelID
	}

	models, err := s.ResolveModels(ctx, modelIDs)
	if err != nil {
		return nil, err
	}

	for _, slot := range slots {
		converted := slot.ToScheduling()
		if ref, ok := models[slot.ModelID]; ok {
			converted.Model = ref
		}

		res[slot.ID] = converted
	}

	return res, nil
}

// ResolveModels loads the models among ids with their sizes expanded.
func (s *Store) ResolveModels(ctx context.Context, ids []string) (map[string]scheduling.ModelRef, error) {
	ids = shared.UniqueStrings(ids)
	res := make(map[string]scheduling.ModelRef, len(ids))

	if len(ids) == 0 {
		return res, nil
	}

	models, err := s.models.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(ids, modelModel.FieldID, modelModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve models: %w", err)
	}

	sizeIDs := make([]string, 0, len(models))
	for _, m := range models {
		if m.SizeID != nil {
			sizeIDs = append(sizeIDs, *m.SizeID)
		}
	}

	sizes, err := s.resolveSizes(ctx, sizeIDs)
	if err != nil {
		return nil, err
	}

	for _, m := range models {
		ref := scheduling.ModelRef{ID: m.ID, Name: m.Name, Notes: m.Notes}

		if m.SizeID != nil {
			ref.Size = &scheduling.SizeRef{ID: *m.SizeID}
			if size, ok := sizes[*m.SizeID]; ok {
				ref.Size.Name = size.Name
			}
		}

		res[m.ID] = ref
	}

	return res, nil
}

func (s *Store) resolveSizes(ctx context.Context, ids []string) (map[string]sizeModel.Size, error) {
	ids = shared.UniqueStrings(ids)
	res := make(map[string]sizeModel.Size, len(ids))

	if len(ids) == 0 {
		return res, nil
	}

	sizes, err := s.sizes.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(ids, sizeModel.FieldID, sizeModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sizes: %w", err)
	}

	for _, size := range sizes {
		res[size.ID] = size
	}

	return res, nil
}
