package shared_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"hotel/shared"
	"hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
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
		{input: "invalid", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToInt(""))
	assert.Nil(t, shared.ConvertStringToInt("two"))
	assert.Equal(t, 2, *shared.ConvertStringToInt("2"))

	assert.Nil(t, shared.ConvertStringToInt64("1.5"))
	assert.Equal(t, int64(9000000000), *shared.ConvertStringToInt64("9000000000"))
}

func TestParseID(t *testing.T) {
	id, err := shared.ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, input := range []string{"", "0", "-3", "abc"} {
		_, err := shared.ParseID(input)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err), input)
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 100, limit: 0, expected: 1},
		{name: "negative limit", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type statusPatch struct {
	Status  string `db:"status"`
	Note    string `db:"special_requests"`
	Ignored string `db:"-"`
	NoTag   string
}

func TestTransformFields(t *testing.T) {
	patch := statusPatch{Status: "Confirmed", Ignored: "x", NoTag: "y"}

	result := shared.TransformFields(patch, "admin")

	assert.Equal(t, "Confirmed", result["status"])
	assert.NotContains(t, result, "special_requests")
	assert.NotContains(t, result, "-")
	assert.Equal(t, "admin", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.Len(t, result, 3)
}

func TestParseStay(t *testing.T) {
	stay, err := shared.ParseStay("2025-06-01", "2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, 3, stay.Nights())

	_, err = shared.ParseStay("2025-06-04", "2025-06-04")
	assert.Equal(t, []string{"checkOutDate must be after checkInDate"}, failure.GetErrors(err))

	_, err = shared.ParseStay("June 1st", "2025-06-04")
	assert.Equal(t, []string{"checkInDate and checkOutDate must be dates in YYYY-MM-DD format"}, failure.GetErrors(err))
}

func TestParseDateParam(t *testing.T) {
	date, err := shared.ParseDateParam("2025-06-01", "startDate")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), date)

	_, err = shared.ParseDateParam("", "startDate")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, []string{"startDate must be a date in YYYY-MM-DD format"}, failure.GetErrors(err))
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID(int64(7), "id", "bookings")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: int64(7), Operator: dto.FilterOperatorEq, Table: "bookings"},
		},
	}, result)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:7", shared.BuildCacheKey("booking:get", int64(7)))
	assert.Equal(t, "grid:2025-04-01:2025-04-30", shared.BuildCacheKey("grid", "2025-04-01", "2025-04-30"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	available := dto.FilterGroup{Filters: []any{dto.Filter{Field: "available", Value: true, Operator: dto.FilterOperatorEq}}}
	hidden := dto.FilterGroup{Filters: []any{dto.Filter{Field: "available", Value: false, Operator: dto.FilterOperatorEq}}}

	key := shared.BuildCacheKeyWithQuery("room:gets", params, available)

	assert.Equal(t, key, shared.BuildCacheKeyWithQuery("room:gets", params, available))
	assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("room:gets", params, hidden))
	assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 2, Limit: 10}, available))
	assert.Contains(t, key, "room:gets:1:10:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := mocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), "booking:gets*").Return(errors.New("redis down"))
	mockCache.EXPECT().Clear(gomock.Any(), "grid*").Return(nil)

	shared.InvalidateCaches(context.Background(), mockCache, "booking:gets", "grid")
}

func boolPtr(b bool) *bool {
	return &b
}

func TestIsPqError(t *testing.T) {
	wrapped := fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: constant.PqErrorCodeExclusionViolation})

	assert.True(t, shared.IsPqError(wrapped, constant.PqErrorCodeExclusionViolation))
	assert.False(t, shared.IsPqError(wrapped, constant.PqErrorCodeFkViolation))
	assert.False(t, shared.IsPqError(errors.New("plain"), constant.PqErrorCodeFkViolation))
}
