package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"slotbook/infras/otel"
	"slotbook/infras/postgres"
	"slotbook/internal/domains/size/model"
	gDto "slotbook/shared/dto"
	gRepo "slotbook/shared/repository"
)

type Size interface {
	Insert(ctx context.Context, size model.Size) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Size, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Size, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Size]
}

func New(db *postgres.Connection, otel otel.Otel) Size {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Size](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
