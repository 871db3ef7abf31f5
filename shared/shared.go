package shared

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	"hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt(value string) *int {
	if value == "" {
		return nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to int")

		return nil
	}

	return &intValue
}

func ConvertStringToInt64(value string) *int64 {
	if value == "" {
		return nil
	}

	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to int64")

		return nil
	}

	return &intValue
}

// ParseID parses a positive numeric path id.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.BadRequestFromString("invalid id") //nolint:wrapcheck
	}

	return id, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero fields of a struct into a map of updated fields.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins prefix and parts with ":".
func BuildCacheKey(prefix string, parts ...any) string {
	keys := make([]string, 0, len(parts)+1)
	keys = append(keys, prefix)

	for _, part := range parts {
		keys = append(keys, fmt.Sprint(part))
	}

	return strings.Join(keys, ":")
}

// BuildCacheKeyWithQuery derives a stable key for a list query. Filter arguments are
// hashed so that keys stay short.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	hash := fnv.New64a()
	_, _ = fmt.Fprintf(hash, "%s|%v", where, args)

	return BuildCacheKey(prefix, params.Page, params.Limit, params.SortBy, params.SortDir, strconv.FormatUint(hash.Sum64(), 16))
}

// InvalidateCaches clears every key under the given prefixes. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}

// ParseStay parses a check-in/check-out pair of request values.
func ParseStay(checkIn, checkOut string) (daterange.DateRange, error) {
	stay, err := daterange.Parse(checkIn, checkOut)

	switch {
	case errors.Is(err, daterange.ErrInvalidDate):
		return stay, failure.Validation([]string{"checkInDate and checkOutDate must be dates in YYYY-MM-DD format"}) //nolint:wrapcheck
	case err != nil:
		return stay, failure.Validation([]string{"checkOutDate must be after checkInDate"}) //nolint:wrapcheck
	}

	return stay, nil
}

// ParseDateParam parses the date request value named name.
func ParseDateParam(value, name string) (time.Time, error) {
	date, err := daterange.ParseDate(value)
	if err != nil {
		return date, failure.Validation([]string{name + " must be a date in YYYY-MM-DD format"}) //nolint:wrapcheck
	}

	return date, nil
}

// IsPqError reports whether err wraps a Postgres error with the given SQLSTATE code.
func IsPqError(err error, code string) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
