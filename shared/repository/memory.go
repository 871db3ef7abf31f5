package repository

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"hotel/shared/dto"
)

// Memory is an in-process stand-in for Repository, keyed by the same `db` tags. It
// evaluates FilterGroup conditions itself; joined columns (`table` tag) are left as
// stored.
type Memory[T any] struct {
	mu      sync.RWMutex
	rows    []T
	fields  map[string][]int
	primary string
	autoID  bool
	nextID  int64
}

func NewMemory[T any](primaryColumn string) *Memory[T] {
	var zero T

	fields := map[string][]int{}
	autoID := false

	collectFields(reflect.TypeOf(zero), nil, fields, primaryColumn, &autoID)

	return &Memory[T]{
		fields:  fields,
		primary: primaryColumn,
		autoID:  autoID,
		nextID:  1,
	}
}

func collectFields(typ reflect.Type, parent []int, fields map[string][]int, primary string, autoID *bool) {
	for i := range typ.NumField() {
		field := typ.Field(i)
		index := append(slices.Clone(parent), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			collectFields(field.Type, index, fields, primary, autoID)

			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}

		fields[tag] = index

		if tag == primary && field.Tag.Get("readonly") == "true" && field.Type.Kind() == reflect.Int64 {
			*autoID = true
		}
	}
}

func (m *Memory[T]) Insert(_ context.Context, model T) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.autoID {
		m.rows = append(m.rows, model)

		return 0, nil
	}

	id := m.nextID
	m.nextID++

	reflect.ValueOf(&model).Elem().FieldByIndex(m.fields[m.primary]).SetInt(id)
	m.rows = append(m.rows, model)

	return id, nil
}

func (m *Memory[T]) Get(_ context.Context, filter dto.FilterGroup, _ ...string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T

	for _, row := range m.rows {
		ok, err := m.match(row, filter)
		if err != nil {
			return zero, err
		}

		if ok {
			return row, nil
		}
	}

	return zero, nil
}

func (m *Memory[T]) GetAll(_ context.Context, params dto.QueryParams, filter dto.FilterGroup, _ ...string) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res, err := m.filter(filter)
	if err != nil {
		return nil, err
	}

	if params.SortBy != "" && params.SortDir != "" {
		sortBy := params.SortBy
		if idx := strings.LastIndex(sortBy, "."); idx >= 0 {
			sortBy = sortBy[idx+1:]
		}

		if index, ok := m.fields[sortBy]; ok {
			slices.SortStableFunc(res, func(a, b T) int {
				c, _ := compareValues(reflect.ValueOf(a).FieldByIndex(index).Interface(), reflect.ValueOf(b).FieldByIndex(index).Interface())
				if params.SortDir == dto.SortDirDesc {
					return -c
				}

				return c
			})
		}
	}

	if params.Limit > 0 {
		offset := 0
		if params.Page > 0 {
			offset = (params.Page - 1) * params.Limit
		}

		if offset >= len(res) {
			return []T{}, nil
		}

		res = res[offset:min(offset+params.Limit, len(res))]
	}

	return res, nil
}

func (m *Memory[T]) Exist(_ context.Context, filter dto.FilterGroup) (bool, error) {
	if len(filter.Filters) == 0 {
		return false, errRequiredFilter
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	res, err := m.filter(filter)

	return len(res) > 0, err
}

func (m *Memory[T]) Count(_ context.Context, filter dto.FilterGroup) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res, err := m.filter(filter)

	return len(res), err
}

func (m *Memory[T]) Update(_ context.Context, mod map[string]any, filter dto.FilterGroup) error {
	if len(filter.Filters) == 0 {
		return errRequiredFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.rows {
		ok, err := m.match(m.rows[i], filter)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		row := reflect.ValueOf(&m.rows[i]).Elem()

		for col, value := range mod {
			index, found := m.fields[col]
			if !found {
				return fmt.Errorf("unknown column %q", col)
			}

			if err := assign(row.FieldByIndex(index), value); err != nil {
				return fmt.Errorf("failed to update column %q: %w", col, err)
			}
		}
	}

	return nil
}

func (m *Memory[T]) Delete(_ context.Context, filter dto.FilterGroup) error {
	if len(filter.Filters) == 0 {
		return errRequiredFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.rows[:0]

	for _, row := range m.rows {
		ok, err := m.match(row, filter)
		if err != nil {
			return err
		}

		if !ok {
			kept = append(kept, row)
		}
	}

	clear(m.rows[len(kept):])
	m.rows = kept

	return nil
}

func (m *Memory[T]) filter(filter dto.FilterGroup) ([]T, error) {
	res := []T{}

	for _, row := range m.rows {
		ok, err := m.match(row, filter)
		if err != nil {
			return nil, err
		}

		if ok {
			res = append(res, row)
		}
	}

	return res, nil
}

func (m *Memory[T]) match(row T, group dto.FilterGroup) (bool, error) {
	if len(group.Filters) == 0 {
		return true, nil
	}

	or := strings.EqualFold(group.Operator, dto.FilterGroupOperatorOr)

	for _, item := range group.Filters {
		var (
			ok  bool
			err error
		)

		switch f := item.(type) {
		case dto.Filter:
			ok, err = m.matchFilter(row, f)
		case dto.FilterGroup:
			ok, err = m.match(row, f)
		default:
			continue
		}

		if err != nil {
			return false, err
		}

		if or && ok {
			return true, nil
		}

		if !or && !ok {
			return false, nil
		}
	}

	return !or, nil
}

func (m *Memory[T]) matchFilter(row T, f dto.Filter) (bool, error) {
	index, ok := m.fields[f.Field]
	if !ok {
		return false, fmt.Errorf("unknown column %q", f.Field)
	}

	field := reflect.ValueOf(row).FieldByIndex(index)
	value := field.Interface()

	switch f.Operator {
	case dto.FilterIsNull:
		return field.IsZero(), nil
	case dto.FilterIsNotNull:
		return !field.IsZero(), nil
	case dto.FilterOperatorLike:
		return strings.Contains(strings.ToLower(fmt.Sprint(value)), strings.ToLower(fmt.Sprint(f.Value))), nil
	case dto.FilterOperatorIn:
		candidates := reflect.ValueOf(f.Value)
		if candidates.Kind() != reflect.Slice && candidates.Kind() != reflect.Array {
			return false, fmt.Errorf("operator in on %q needs a slice", f.Field)
		}

		for i := range candidates.Len() {
			if c, err := compareValues(value, candidates.Index(i).Interface()); err == nil && c == 0 {
				return true, nil
			}
		}

		return false, nil
	}

	c, err := compareValues(value, f.Value)
	if err != nil {
		return false, fmt.Errorf("column %q: %w", f.Field, err)
	}

	switch f.Operator {
	case dto.FilterOperatorEq:
		return c == 0, nil
	case dto.FilterOperatorNotEq:
		return c != 0, nil
	case dto.FilterOperatorLess:
		return c < 0, nil
	case dto.FilterOperatorLessEq:
		return c <= 0, nil
	case dto.FilterOperatorGreater:
		return c > 0, nil
	case dto.FilterOperatorGreaterEq:
		return c >= 0, nil
	default:
		return false, fmt.Errorf("unsupported operator %q", f.Operator)
	}
}

func compareValues(a, b any) (int, error) {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		if !ok {
			return 0, fmt.Errorf("cannot compare time with %T", b)
		}

		return ta.Compare(tb), nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)

	switch {
	case isInt(va) && isInt(vb):
		return cmp.Compare(va.Int(), vb.Int()), nil
	case isNumber(va) && isNumber(vb):
		return cmp.Compare(toFloat(va), toFloat(vb)), nil
	case va.Kind() == reflect.String && vb.Kind() == reflect.String:
		return strings.Compare(va.String(), vb.String()), nil
	case va.Kind() == reflect.Bool && vb.Kind() == reflect.Bool:
		if va.Bool() == vb.Bool() {
			return 0, nil
		}

		if !va.Bool() {
			return -1, nil
		}

		return 1, nil
	}

	if sa, ok := a.(fmt.Stringer); ok {
		return strings.Compare(sa.String(), fmt.Sprint(b)), nil
	}

	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return isInt(v)
	}
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	default:
		return float64(v.Int())
	}
}

func assign(field reflect.Value, value any) error {
	if value == nil {
		field.SetZero()

		return nil
	}

	val := reflect.ValueOf(value)

	switch {
	case val.Type().AssignableTo(field.Type()):
		field.Set(val)
	case val.Type().ConvertibleTo(field.Type()):
		field.Set(val.Convert(field.Type()))
	default:
		return fmt.Errorf("cannot assign %T to %s", value, field.Type())
	}

	return nil
}
