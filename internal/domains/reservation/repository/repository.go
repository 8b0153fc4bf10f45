package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"slotbook/infras/otel"
	"slotbook/infras/postgres"
	"slotbook/internal/domains/reservation/model"
	gDto "slotbook/shared/dto"
	gRepo "slotbook/shared/repository"
)

type Reservation interface {
	Insert(ctx context.Context, reservation model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// ListBySlot returns the reservations of a slot ordered by start, skipping excludeID.
	ListBySlot(ctx context.Context, slotID, excludeID string) ([]model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) ListBySlot(ctx context.Context, slotID, excludeID string) ([]model.Reservation, error) {
	return r.Select(ctx, func(query sq.SelectBuilder) sq.SelectBuilder { //nolint:wrapcheck
		query = query.Where(sq.Eq{column(model.FieldSlotID): slotID})

		if excludeID != "" {
			query = query.Where(sq.NotEq{column(model.FieldID): excludeID})
		}

		return query.OrderBy(column(model.FieldStartDateTime) + " ASC")
	})
}

func column(field string) string {
	return model.TableName + "." + field
}
