package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/availability/service"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/daterange"
	"hotel/shared/failure"
)

type fixture struct {
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	svc      service.Availability
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	rooms := roomRepo.NewMemory()
	bookings := bookingRepo.NewMemory(rooms)

	return &fixture{
		rooms:    rooms,
		bookings: bookings,
		svc:      service.New(bookings, rooms, mocks.NewOtel()),
	}
}

func (f *fixture) room(t *testing.T, name string, available bool) int64 {
	t.Helper()

	id, err := f.rooms.Insert(context.Background(), roomModel.Room{
		Name:      name,
		Price:     decimal.NewFromInt(100),
		Capacity:  2,
		Available: available,
	})
	require.NoError(t, err)

	return id
}

func (f *fixture) booking(t *testing.T, roomID int64, in, out, status string) int64 {
	t.Helper()

	id, err := f.bookings.Insert(context.Background(), bookingModel.Booking{
		RoomID:       roomID,
		GuestName:    "Guest",
		CheckInDate:  date(t, in),
		CheckOutDate: date(t, out),
		Status:       status,
	})
	require.NoError(t, err)

	return id
}

func date(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := daterange.ParseDate(value)
	require.NoError(t, err)

	return d
}

func stay(t *testing.T, in, out string) daterange.DateRange {
	t.Helper()

	dr, err := daterange.Parse(in, out)
	require.NoError(t, err)

	return dr
}

func TestIsRoomAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.room(t, "Deluxe", true)
	f.booking(t, roomID, "2025-04-10", "2025-04-13", bookingModel.StatusConfirmed)
	f.booking(t, roomID, "2025-05-01", "2025-05-05", bookingModel.StatusCancelled)

	tests := []struct {
		name     string
		in, out  string
		expected bool
	}{
		{name: "back to back after", in: "2025-04-13", out: "2025-04-15", expected: true},
		{name: "back to back before", in: "2025-04-08", out: "2025-04-10", expected: true},
		{name: "overlaps the last night", in: "2025-04-12", out: "2025-04-15", expected: false},
		{name: "inside existing", in: "2025-04-11", out: "2025-04-12", expected: false},
		{name: "contains existing", in: "2025-04-01", out: "2025-04-30", expected: false},
		{name: "cancelled booking is ignored", in: "2025-05-02", out: "2025-05-04", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available, err := f.svc.IsRoomAvailable(ctx, roomID, stay(t, tt.in, tt.out), 0)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, available)
		})
	}
}

func TestIsRoomAvailable_ExcludesEditedBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.room(t, "Deluxe", true)
	f.booking(t, roomID, "2025-01-01", "2025-01-02", bookingModel.StatusPending)
	bookingID := f.booking(t, roomID, "2025-06-01", "2025-06-05", bookingModel.StatusConfirmed)

	available, err := f.svc.IsRoomAvailable(ctx, roomID, stay(t, "2025-06-01", "2025-06-05"), bookingID)
	require.NoError(t, err)
	assert.True(t, available)

	available, err = f.svc.IsRoomAvailable(ctx, roomID, stay(t, "2025-06-01", "2025-06-05"), 0)
	require.NoError(t, err)
	assert.False(t, available)
}

func TestIsRoomAvailable_IgnoresAvailableFlag(t *testing.T) {
	f := newFixture(t)

	roomID := f.room(t, "Closed", false)

	available, err := f.svc.IsRoomAvailable(context.Background(), roomID, stay(t, "2025-06-01", "2025-06-05"), 0)

	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsRoomAvailable_Failures(t *testing.T) {
	f := newFixture(t)
	roomID := f.room(t, "Deluxe", true)

	_, err := f.svc.IsRoomAvailable(context.Background(), roomID+1, stay(t, "2025-06-01", "2025-06-05"), 0)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	inverted := daterange.DateRange{CheckIn: date(t, "2025-06-05"), CheckOut: date(t, "2025-06-01")}

	_, err = f.svc.IsRoomAvailable(context.Background(), roomID, inverted, 0)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestListAvailableRooms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booked := f.room(t, "Booked", true)
	closed := f.room(t, "Closed", false)
	free := f.room(t, "Free", true)
	cancelled := f.room(t, "Cancelled", true)

	f.booking(t, booked, "2025-07-01", "2025-07-04", bookingModel.StatusConfirmed)
	f.booking(t, cancelled, "2025-07-01", "2025-07-04", bookingModel.StatusCancelled)
	f.booking(t, free, "2025-06-28", "2025-07-01", bookingModel.StatusCheckedOut)

	rooms, err := f.svc.ListAvailableRooms(ctx, stay(t, "2025-07-01", "2025-07-03"))
	require.NoError(t, err)

	ids := make([]int64, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}

	assert.Equal(t, []int64{free, cancelled}, ids)
	assert.NotContains(t, ids, closed)

	// a disabled room stays hidden even when nothing is booked
	rooms, err = f.svc.ListAvailableRooms(ctx, stay(t, "2030-01-01", "2030-01-02"))
	require.NoError(t, err)

	ids = ids[:0]
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}

	assert.Equal(t, []int64{booked, free, cancelled}, ids)
}
