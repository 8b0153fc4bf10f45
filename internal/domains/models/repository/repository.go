package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"slotbook/infras/otel"
	"slotbook/infras/postgres"
	"slotbook/internal/domains/models/model"
	gDto "slotbook/shared/dto"
	gRepo "slotbook/shared/repository"
)

type Model interface {
	Insert(ctx context.Context, entity model.Model) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Model, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Model, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Model]
}

func New(db *postgres.Connection, otel otel.Otel) Model {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Model](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
