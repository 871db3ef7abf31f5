package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const argExcludeID = "exclude_id"

// Availability answers whether rooms are free for a stay. The administrative
// available flag of a single room is left to the caller of IsRoomAvailable.
type Availability interface {
	IsRoomAvailable(ctx context.Context, roomID int64, stay daterange.DateRange, excludeBookingID int64) (bool, error)
	ListAvailableRooms(ctx context.Context, stay daterange.DateRange) ([]roomModel.Room, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, roomRepo roomRepo.Room, otel otel.Otel) Availability {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		otel:        otel,
	}
}

// candidates narrows the stored bookings to active ones that may overlap stay.
// excludeBookingID 0 excludes nothing.
func candidates(stay daterange.DateRange, excludeBookingID int64, extra ...any) gDto.FilterGroup {
	filters := append([]any{
		gDto.Filter{
			Field:    bookingModel.FieldStatus,
			Operator: gDto.FilterOperatorNotEq,
			Value:    bookingModel.StatusCancelled,
			Table:    bookingModel.TableName,
		},
		gDto.Filter{
			Field:    bookingModel.FieldCheckInDate,
			Operator: gDto.FilterOperatorLess,
			Value:    stay.CheckOut,
			Table:    bookingModel.TableName,
		},
		gDto.Filter{
			Field:    bookingModel.FieldCheckOutDate,
			Operator: gDto.FilterOperatorGreater,
			Value:    stay.CheckIn,
			Table:    bookingModel.TableName,
		},
	}, extra...)

	if excludeBookingID > 0 {
		filters = append(filters, gDto.Filter{
			ArgName:  argExcludeID,
			Field:    bookingModel.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeBookingID,
			Table:    bookingModel.TableName,
		})
	}

	return gDto.And(filters...)
}

func (s *serviceImpl) IsRoomAvailable(ctx context.Context, roomID int64, stay daterange.DateRange, excludeBookingID int64) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRoomAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = stay.Validate(); err != nil {
		return false, failure.Validation([]string{"checkOutDate must be after checkInDate"}) //nolint:wrapcheck
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("roomId", roomID).Msg("failed to check if room exists")

		return false, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return false, failure.NotFound("room not found") //nolint:wrapcheck
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, candidates(stay, excludeBookingID, gDto.Filter{
		Field:    bookingModel.FieldRoomID,
		Operator: gDto.FilterOperatorEq,
		Value:    roomID,
		Table:    bookingModel.TableName,
	}))
	if err != nil {
		log.Error().Err(err).Int64("roomId", roomID).Msg("failed to get room bookings")

		return false, fmt.Errorf("failed to get room bookings: %w", err)
	}

	for _, booking := range bookings {
		if booking.Active() && booking.ID != excludeBookingID && booking.Range().Overlaps(stay) {
			return false, nil
		}
	}

	return true, nil
}

func (s *serviceImpl) ListAvailableRooms(ctx context.Context, stay daterange.DateRange) (res []roomModel.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAvailableRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = stay.Validate(); err != nil {
		return nil, failure.Validation([]string{"checkOutDate must be after checkInDate"}) //nolint:wrapcheck
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.And(gDto.Filter{
		Field:    roomModel.FieldAvailable,
		Operator: gDto.FilterOperatorEq,
		Value:    true,
		Table:    roomModel.TableName,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, candidates(stay, 0))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	taken := map[int64]struct{}{}

	for _, booking := range bookings {
		if booking.Active() && booking.Range().Overlaps(stay) {
			taken[booking.RoomID] = struct{}{}
		}
	}

	res = make([]roomModel.Room, 0, len(rooms))

	for _, room := range rooms {
		if _, ok := taken[room.ID]; !ok && room.Available {
			res = append(res, room)
		}
	}

	slices.SortFunc(res, func(a, b roomModel.Room) int {
		return cmp.Compare(a.ID, b.ID)
	})

	scope.SetAttribute("availableRooms", len(res))

	return res, nil
}
