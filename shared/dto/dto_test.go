package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "admin",
		ModifiedBy: "guest",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "admin", metadata.CreatedBy)
	assert.Equal(t, "guest", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=name&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			query:          "page=-1&limit=abc&sort_dir=sideways",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/rooms?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	checkIn := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)

	group := dto.And(
		dto.Filter{Field: "room_id", Operator: dto.FilterOperatorEq, Value: int64(1), Table: "bookings"},
		dto.Filter{Field: "status", Operator: dto.FilterOperatorNotEq, Value: "Cancelled", Table: "bookings"},
		dto.Filter{Field: "check_in_date", Operator: dto.FilterOperatorLess, Value: checkOut, Table: "bookings"},
		dto.Filter{Field: "check_out_date", Operator: dto.FilterOperatorGreater, Value: checkIn, Table: "bookings"},
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.room_id = :room_id AND bookings.status != :status AND "+
		"bookings.check_in_date < :check_in_date AND bookings.check_out_date > :check_out_date)", where)
	assert.Equal(t, map[string]any{
		"room_id":        int64(1),
		"status":         "Cancelled",
		"check_in_date":  checkOut,
		"check_out_date": checkIn,
	}, args)
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.And(
		dto.Filter{Field: "available", Operator: dto.FilterOperatorEq, Value: true},
		dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []any{
				dto.Filter{Field: "name", Operator: dto.FilterOperatorLike, Value: "suite"},
				dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []int64{1, 2}},
			},
		},
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(available = :available AND (LOWER(name) LIKE LOWER(:name)  OR id IN (:id_0, :id_1) ))", where)
	assert.Equal(t, "%suite%", args["name"])
	assert.Equal(t, int64(2), args["id_1"])

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}
