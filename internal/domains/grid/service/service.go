package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/grid/model"
	"hotel/internal/domains/grid/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheProject = constant.CacheKeyGrid + ":project"
	cacheEvents  = constant.CacheKeyGrid + ":events"
)

// Grid renders stored bookings for the back office. It shows every status and does
// not flag double bookings.
type Grid interface {
	Project(ctx context.Context, start, end time.Time) (dto.Grid, error)
	Events(ctx context.Context, start, end time.Time, status string) ([]dto.Event, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Grid {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) palette() []string {
	if len(s.cfg.App.Grid.Palette) > 0 {
		return s.cfg.App.Grid.Palette
	}

	return model.Palette
}

func window(start, end time.Time) (time.Time, time.Time, error) {
	start, end = daterange.Truncate(start), daterange.Truncate(end)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return start, end, failure.Validation([]string{"endDate must not be before startDate"}) //nolint:wrapcheck
	}

	return start, end, nil
}

// bookings returns the bookings occupying a day of [start, end], in check-in order.
func (s *serviceImpl) bookings(ctx context.Context, start, end time.Time, extra ...any) ([]bookingModel.Booking, error) {
	filters := append([]any{
		gDto.Filter{
			Field:    bookingModel.FieldCheckInDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    end,
			Table:    bookingModel.TableName,
		},
		gDto.Filter{
			Field:    bookingModel.FieldCheckOutDate,
			Operator: gDto.FilterOperatorGreater,
			Value:    start,
			Table:    bookingModel.TableName,
		},
	}, extra...)

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.And(filters...))
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	slices.SortFunc(bookings, func(a, b bookingModel.Booking) int {
		return cmp.Or(a.CheckInDate.Compare(b.CheckInDate), cmp.Compare(a.ID, b.ID))
	})

	return bookings, nil
}

func (s *serviceImpl) Project(ctx context.Context, start, end time.Time) (res dto.Grid, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Project")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if start, end, err = window(start, end); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheProject, daterange.FormatDate(start), daterange.FormatDate(end))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for grid")

		return res, nil
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.bookings(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for grid")

		return res, err
	}

	res = project(rooms, bookings, start, end, newColorPicker(s.palette(), start))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save grid to cache")
		}
	}()

	return res, nil
}

func project(rooms []roomModel.Room, bookings []bookingModel.Booking, start, end time.Time, colors *colorPicker) dto.Grid {
	grid := dto.Grid{
		StartDate: daterange.FormatDate(start),
		EndDate:   daterange.FormatDate(end),
		Dates:     []string{},
		Rows:      []dto.Row{},
	}

	for day := range daterange.Between(start, end) {
		grid.Dates = append(grid.Dates, daterange.FormatDate(day))
	}

	newRow := func(id int64, name string) *dto.Row {
		row := &dto.Row{RoomID: id, RoomName: name, Cells: make(map[string]dto.Cell, len(grid.Dates))}
		for _, date := range grid.Dates {
			row.Cells[date] = dto.Cell{Status: model.CellAvailable}
		}

		return row
	}

	rows := make(map[int64]*dto.Row, len(rooms))
	for _, room := range rooms {
		rows[room.ID] = newRow(room.ID, room.Name)
	}

	for _, booking := range bookings {
		row, ok := rows[booking.RoomID]
		if !ok {
			row = newRow(booking.RoomID, model.UnknownRoom)
			rows[booking.RoomID] = row
		}

		color := colors.pick(booking.ID)

		for day := range booking.Range().Days() {
			date := daterange.FormatDate(day)
			if _, inWindow := row.Cells[date]; !inWindow {
				continue
			}

			row.Cells[date] = dto.Cell{
				Status:        model.CellBooked,
				BookingID:     booking.ID,
				GuestName:     booking.GuestName,
				Color:         color,
				BookingStatus: booking.Status,
			}
		}
	}

	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	for _, id := range ids {
		grid.Rows = append(grid.Rows, *rows[id])
	}

	return grid
}

func (s *serviceImpl) Events(ctx context.Context, start, end time.Time, status string) (res []dto.Event, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Events")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if start, end, err = window(start, end); err != nil {
		return nil, err
	}

	var extra []any

	if status != "" {
		if !slices.Contains(bookingModel.Statuses, status) {
			return nil, failure.Validation([]string{"status must be one of Pending Confirmed CheckedIn CheckedOut Cancelled"}) //nolint:wrapcheck
		}

		extra = append(extra, gDto.Filter{
			Field:    bookingModel.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    bookingModel.TableName,
		})
	}

	cacheKey := shared.BuildCacheKey(cacheEvents, daterange.FormatDate(start), daterange.FormatDate(end), status)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	bookings, err := s.bookings(ctx, start, end, extra...)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for calendar")

		return nil, err
	}

	res = make([]dto.Event, 0, len(bookings))

	for _, booking := range bookings {
		roomName := booking.RoomName
		if roomName == "" {
			roomName = model.UnknownRoom
		}

		stay := booking.Range()

		res = append(res, dto.Event{
			ID:     booking.ID,
			Title:  booking.GuestName + " - " + roomName,
			Start:  daterange.FormatDate(stay.CheckIn),
			End:    daterange.FormatDate(stay.CheckOut),
			Color:  model.StatusColor(booking.Status),
			Status: booking.Status,
			RoomID: booking.RoomID,
		})
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save calendar events to cache")
		}
	}()

	return res, nil
}
