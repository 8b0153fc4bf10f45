package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"slotbook/shared"
	cacheMocks "slotbook/shared/cache/mocks"
	"slotbook/shared/constant"
	"slotbook/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: boolPtr(true)},
		{input: "0", expected: boolPtr(false)},
		{input: "F", expected: boolPtr(false)},
		{input: "yes", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(25, 0))
	assert.Equal(t, 3, shared.CalculateTotalPage(25, 10))
	assert.Equal(t, 2, shared.CalculateTotalPage(20, 10))
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		Name     string     `db:"name"`
		Notes    *string    `db:"notes"`
		IsActive *bool      `db:"is_active"`
		Start    *time.Time `db:"start_date_time"`
		Ignored  string
		Skipped  string `db:"-"`
	}

	fields := shared.TransformFields(patch{
		Name:     "Studio A",
		IsActive: boolPtr(false),
		Ignored:  "x",
		Skipped:  "y",
	}, "admin-1")

	assert.Equal(t, "Studio A", fields["name"])
	assert.Equal(t, boolPtr(false), fields["is_active"])
	assert.NotContains(t, fields, "notes")
	assert.NotContains(t, fields, "start_date_time")
	assert.NotContains(t, fields, "-")
	assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
	assert.Len(t, fields, 4)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("abc", "id", "slots")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(slots.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "abc"}, args)
}

func TestFilterByIDs(t *testing.T) {
	filter := shared.FilterByIDs([]string{"a", "b"}, "id", "models")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(models.id IN (:id_0, :id_1) )", where)
	assert.Equal(t, map[string]any{"id_0": "a", "id_1": "b"}, args)

	empty := shared.FilterByIDs(nil, "id", "models")
	where, _ = empty.GetWhereClause()

	assert.Equal(t, "((1 = 0))", where)
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, shared.UniqueStrings([]string{"b", "", "a", "b"}))
	assert.Empty(t, shared.UniqueStrings(nil))
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "slot:get:123", shared.BuildCacheKey("slot:get", "123"))
	assert.Equal(t, "limiter:10.0.0.1:curl", shared.BuildCacheKey("limiter", "10.0.0.1", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "name", SortDir: dto.SortDirAsc}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "is_active", Operator: dto.FilterOperatorEq, Value: true},
			dto.Filter{Field: "model_id", Operator: dto.FilterOperatorEq, Value: "m-1"},
		},
	}

	first := shared.BuildCacheKeyWithQuery("slot:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("slot:gets", params, filter)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "slot:gets:")

	params.Page = 2
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("slot:gets", params, filter))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), "size:gets:*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "size:count:*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "size:gets")
	shared.InvalidateCaches(context.Background(), mockCache, "size:count")
}

func boolPtr(b bool) *bool {
	return &b
}
