package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"slotbook/infras/otel"
	"slotbook/infras/postgres"
	"slotbook/internal/domains/slot/model"
	"slotbook/internal/scheduling"
	gDto "slotbook/shared/dto"
	gRepo "slotbook/shared/repository"
)

type Slot interface {
	Insert(ctx context.Context, slot model.Slot) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Slot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Slot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// ListActiveOverlapping returns active slots of a model that overlap within,
	// skipping excludeID.
	ListActiveOverlapping(ctx context.Context, modelID string, within scheduling.Window, excludeID string) ([]model.Slot, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Slot]
}

func New(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Slot](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) ListActiveOverlapping(ctx context.Context, modelID string, within scheduling.Window, excludeID string) ([]model.Slot, error) {
	return r.Select(ctx, func(query sq.SelectBuilder) sq.SelectBuilder { //nolint:wrapcheck
		query = query.
			Where(sq.Eq{column(model.FieldModelID): modelID, column(model.FieldIsActive): true}).
			Where(sq.Lt{column(model.FieldStartDateTime): within.End}).
			Where(sq.Gt{column(model.FieldEndDateTime): within.Start})

		if excludeID != "" {
			query = query.Where(sq.NotEq{column(model.FieldID): excludeID})
		}

		return query.OrderBy(column(model.FieldStartDateTime) + " ASC")
	})
}

func column(field string) string {
	return model.TableName + "." + field
}
