package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"slotbook/config"
	"slotbook/infras/otel/mocks"
	modelMocks "slotbook/internal/domains/models/mocks"
	"slotbook/internal/domains/models/model"
	"slotbook/internal/domains/models/model/dto"
	"slotbook/internal/domains/models/repository"
	"slotbook/internal/domains/models/service"
	sizeMocks "slotbook/internal/domains/size/mocks"
	sizeModel "slotbook/internal/domains/size/model"
	cacheMocks "slotbook/shared/cache/mocks"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/failure"
)

var _ repository.Model = (*modelMocks.MockModel)(nil)

type fixture struct {
	svc   service.Model
	repo  *modelMocks.MockModel
	sizes *sizeMocks.MockSize
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:  modelMocks.NewMockModel(ctrl),
		sizes: sizeMocks.NewMockSize(ctrl),
	}
	f.svc = service.New(f.repo, f.sizes, cfg, mockCache, mocks.NewOtel())

	return f
}

func ptr[T any](v T) *T {
	return &v
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
}

func TestModelService_Create(t *testing.T) {
	sizeID := "8d0f7a53-3a4f-4b0e-9a51-1c2d3e4f5a6b"

	t.Run("expands the size", func(t *testing.T) {
		f := newFixture(t)

		f.sizes.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m model.Model) error {
				assert.Equal(t, "Studio A", m.Name)
				assert.Equal(t, sizeID, *m.SizeID)

				return nil
			})
		f.sizes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]sizeModel.Size{{ID: sizeID, Name: "Large"}}, nil)

		res, err := f.svc.Create(adminContext(), dto.CreateModelRequest{Name: " Studio A ", SizeID: &sizeID})

		require.NoError(t, err)
		require.NotNil(t, res.Size)
		assert.Equal(t, "Large", res.Size.Name)
	})

	t.Run("without size", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(adminContext(), dto.CreateModelRequest{Name: "Studio B"})

		require.NoError(t, err)
		assert.Nil(t, res.Size)
		assert.Nil(t, res.SizeID)
	})

	t.Run("unknown size", func(t *testing.T) {
		f := newFixture(t)

		f.sizes.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(adminContext(), dto.CreateModelRequest{Name: "Studio A", SizeID: &sizeID})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("duplicate name", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to insert data (model): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))

		_, err := f.svc.Create(adminContext(), dto.CreateModelRequest{Name: "Studio A"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestModelService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Model, error) {
			assert.Equal(t, model.FieldName, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.Model{
				{ID: "m-1", Name: "A", SizeID: ptr("s-1")},
				{ID: "m-2", Name: "B", SizeID: ptr("s-1")},
				{ID: "m-3", Name: "C"},
			}, nil
		})
	f.sizes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]sizeModel.Size{{ID: "s-1", Name: "Large"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Models, 3)
	assert.Equal(t, "Large", res.Models[0].Size.Name)
	assert.Equal(t, "Large", res.Models[1].Size.Name)
	assert.Nil(t, res.Models[2].Size)
}

func TestModelService_Update(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(adminContext(), "m-1", dto.UpdateModelRequest{})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("clears the size", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Model{ID: "m-1", Name: "A", SizeID: ptr("s-1")}, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				value, ok := fields[model.FieldSizeID]
				assert.True(t, ok)
				assert.Nil(t, value)

				return nil
			})

		res, err := f.svc.Update(adminContext(), "m-1", dto.UpdateModelRequest{SizeID: ptr("")})

		require.NoError(t, err)
		assert.Nil(t, res.Size)
		assert.Equal(t, "A", res.Name)
	})

	t.Run("renames", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Model{ID: "m-1", Name: "A"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Update(adminContext(), "m-1", dto.UpdateModelRequest{Name: ptr("  B ")})

		require.NoError(t, err)
		assert.Equal(t, "B", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Model{}, nil)

		_, err := f.svc.Update(adminContext(), "missing", dto.UpdateModelRequest{Notes: ptr("x")})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestModelService_Delete(t *testing.T) {
	t.Run("still referenced by slots", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to delete data (model): %w", &pq.Error{Code: constant.PqErrorCodeFkViolation}))

		err := f.svc.Delete(adminContext(), "m-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("deletes", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(adminContext(), "m-1"))
	})
}
