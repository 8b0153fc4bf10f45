package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"slotbook/shared/constant"
	"slotbook/shared/dto"
	"slotbook/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	created := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  created,
		ModifiedAt: created.Add(time.Hour),
		CreatedBy:  "admin-1",
		ModifiedBy: "admin-2",
	})

	parsed, err := time.Parse(constant.DateFormat, metadata.ModifiedAt)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(created.Add(time.Hour)))
	assert.Equal(t, "admin-1", metadata.CreatedBy)
	assert.Equal(t, "admin-2", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			url:      "/v1/slots?page=2&limit=20&sort_by=start_date_time&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_date_time", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults",
			url:            "/v1/slots",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			url:      "/v1/slots",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid values fall back",
			url:            "/v1/slots?page=-1&limit=abc&sort_dir=sideways",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params dto.QueryParams
			params.FromRequest(httptest.NewRequest("GET", tt.url, nil), tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "model_id", Operator: dto.FilterOperatorEq, Value: "m-1", Table: "slots"},
			dto.Filter{ArgName: "from", Field: "start_date_time", Operator: dto.FilterOperatorGreaterEq, Value: "2026-01-01T00:00:00Z", Table: "slots"},
			dto.Filter{ArgName: "to", Field: "start_date_time", Operator: dto.FilterOperatorLessEq, Value: "2026-02-01T00:00:00Z", Table: "slots"},
			dto.Filter{Field: "id", Operator: dto.FilterOperatorNotEq, Value: "s-1", Table: "slots"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(slots.model_id = :model_id AND slots.start_date_time >= :from AND slots.start_date_time <= :to AND slots.id != :id)", where)
	assert.Equal(t, map[string]any{
		"model_id": "m-1",
		"from":     "2026-01-01T00:00:00Z",
		"to":       "2026-02-01T00:00:00Z",
		"id":       "s-1",
	}, args)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}
