package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	availabilityMocks "hotel/internal/domains/availability/mocks"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/service"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

type fixture struct {
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	svc      service.Booking
}

func newFixture(t *testing.T, cfg *config.Config, client kafka.Client) *fixture {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{}
		cfg.App.Booking.RecentCount = 5
	}

	otl := mocks.NewOtel()
	rooms := roomRepo.NewMemory()
	bookings := bookingRepo.NewMemory(rooms)

	return &fixture{
		rooms:    rooms,
		bookings: bookings,
		svc: service.New(bookings, rooms, availability.New(bookings, rooms, otl),
			cfg, cacheMocks.NewCache(), client, otl),
	}
}

func (f *fixture) room(t *testing.T, name string, available bool) int64 {
	t.Helper()

	id, err := f.rooms.Insert(context.Background(), roomModel.Room{
		Name:      name,
		Price:     decimal.NewFromInt(120),
		Capacity:  2,
		Available: available,
	})
	require.NoError(t, err)

	return id
}

func (f *fixture) count(t *testing.T, roomID int64) int {
	t.Helper()

	n, err := f.bookings.Count(context.Background(), gDto.And(gDto.Filter{
		Field:    model.FieldRoomID,
		Operator: gDto.FilterOperatorEq,
		Value:    roomID,
	}))
	require.NoError(t, err)

	return n
}

func request(roomID int64, in, out string) dto.BookingRequest {
	return dto.BookingRequest{
		RoomID:          roomID,
		GuestName:       "Jane Doe",
		GuestEmail:      "jane@example.com",
		GuestPhone:      "+62 811 000",
		CheckInDate:     in,
		CheckOutDate:    out,
		NumberOfGuests:  2,
		TotalPrice:      decimal.NewFromInt(360),
		SpecialRequests: "late check-in",
	}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := daterange.ParseDate(value)
	require.NoError(t, err)

	return d
}

func TestCreate_RoundTrip(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	roomID := f.room(t, "Deluxe", true)
	req := request(roomID, "2025-07-10", "2025-07-13")
	req.TotalPrice = decimal.RequireFromString("99.50")

	id, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, roomID, got.RoomID)
	assert.Equal(t, "Deluxe", got.RoomName)
	assert.Equal(t, req.GuestName, got.GuestName)
	assert.Equal(t, req.GuestEmail, got.GuestEmail)
	assert.Equal(t, req.GuestPhone, got.GuestPhone)
	assert.Equal(t, "2025-07-10", got.CheckInDate)
	assert.Equal(t, "2025-07-13", got.CheckOutDate)
	assert.Equal(t, 3, got.Nights)
	assert.True(t, req.TotalPrice.Equal(got.TotalPrice))
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, "admin-1", got.CreatedBy)
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	roomID := f.room(t, "Deluxe", true)
	closedID := f.room(t, "Closed", false)

	confirmed := request(roomID, "2025-07-01", "2025-07-04")
	confirmed.Status = model.StatusConfirmed

	_, err := f.svc.Create(ctx, confirmed)
	require.NoError(t, err)

	invalid := request(roomID, "2025-07-05", "2025-07-05")
	invalid.GuestEmail = "not-an-email"
	invalid.NumberOfGuests = 0
	invalid.TotalPrice = decimal.Zero

	tests := []struct {
		name    string
		req     dto.BookingRequest
		code    int
		message string
		errors  []string
	}{
		{
			name:    "conflicting dates",
			req:     request(roomID, "2025-07-02", "2025-07-03"),
			code:    http.StatusConflict,
			message: "room not available for selected dates",
		},
		{
			name:    "missing room",
			req:     request(roomID+100, "2025-07-02", "2025-07-03"),
			code:    http.StatusNotFound,
			message: "room not found",
		},
		{
			name:    "room switched off",
			req:     request(closedID, "2025-07-02", "2025-07-03"),
			code:    http.StatusConflict,
			message: "room is not open for booking",
		},
		{
			name:    "every invalid field is reported",
			req:     invalid,
			code:    http.StatusBadRequest,
			message: "validation failed",
			errors: []string{
				"guestEmail must be a valid email address",
				"numberOfGuests must be greater than 0",
				"checkOutDate must be after checkInDate",
				"totalPrice must be greater than 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
			assert.ErrorContains(t, err, tt.message)

			if tt.errors != nil {
				assert.Equal(t, tt.errors, failure.GetErrors(err))
			}
		})
	}

	assert.Equal(t, 1, f.count(t, roomID))
	assert.Equal(t, 0, f.count(t, closedID))
}

func TestCreate_BackToBackAndCancelled(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	roomID := f.room(t, "Deluxe", true)

	cancelled := request(roomID, "2025-05-01", "2025-05-05")
	cancelled.Status = model.StatusCancelled

	_, err := f.svc.Create(ctx, cancelled)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, request(roomID, "2025-05-02", "2025-05-04"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, request(roomID, "2025-05-04", "2025-05-06"))
	require.NoError(t, err)

	assert.Equal(t, 3, f.count(t, roomID))
}

func TestCreate_ConcurrentRequestsBookOnce(t *testing.T) {
	f := newFixture(t, nil, nil)
	roomID := f.room(t, "Deluxe", true)

	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := f.svc.Create(context.Background(), request(roomID, "2025-08-01", "2025-08-03")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.count(t, roomID))
}

func TestUpdate(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	roomA := f.room(t, "A", true)
	roomB := f.room(t, "B", true)
	closed := f.room(t, "Closed", false)

	id, err := f.svc.Create(ctx, request(roomA, "2025-06-01", "2025-06-05"))
	require.NoError(t, err)

	other, err := f.svc.Create(ctx, request(roomB, "2025-06-10", "2025-06-12"))
	require.NoError(t, err)

	// same dates do not conflict with the booking being edited
	same := request(roomA, "2025-06-01", "2025-06-05")
	same.GuestName = "John Roe"
	same.Status = model.StatusConfirmed
	require.NoError(t, f.svc.Update(ctx, same, id))

	got, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "John Roe", got.GuestName)
	assert.Equal(t, model.StatusConfirmed, got.Status)

	err = f.svc.Update(ctx, request(roomB, "2025-06-11", "2025-06-13"), id)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	err = f.svc.Update(ctx, request(closed, "2025-06-11", "2025-06-13"), id)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.ErrorContains(t, err, "room is not open for booking")

	err = f.svc.Update(ctx, request(roomA, "2025-06-01", "2025-06-05"), other+100)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	// moving to a free slot in another room
	require.NoError(t, f.svc.Update(ctx, request(roomB, "2025-06-12", "2025-06-14"), id))

	got, err = f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, roomB, got.RoomID)
	assert.Equal(t, "B", got.RoomName)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	roomID := f.room(t, "Deluxe", true)

	id, err := f.svc.Create(ctx, request(roomID, "2025-09-01", "2025-09-03"))
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: model.StatusCancelled}, id))

	// the slot is free again once cancelled
	newer, err := f.svc.Create(ctx, request(roomID, "2025-09-01", "2025-09-03"))
	require.NoError(t, err)

	// any status may follow any other; reviving is not re-checked
	require.NoError(t, f.svc.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: model.StatusCheckedIn}, id))

	got, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedIn, got.Status)

	err = f.svc.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: "Lost"}, newer)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	err = f.svc.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: model.StatusConfirmed}, newer+100)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestDelete(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	roomID := f.room(t, "Deluxe", true)

	id, err := f.svc.Create(ctx, request(roomID, "2025-09-01", "2025-09-03"))
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: model.StatusCheckedIn}, id))
	require.NoError(t, f.svc.Delete(ctx, id))

	_, err = f.svc.Get(ctx, id)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = f.svc.Delete(ctx, id)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestGetByRange(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	roomA := f.room(t, "A", true)
	roomB := f.room(t, "B", true)

	late, err := f.svc.Create(ctx, request(roomA, "2025-03-20", "2025-03-25"))
	require.NoError(t, err)

	early, err := f.svc.Create(ctx, request(roomB, "2025-03-09", "2025-03-11"))
	require.NoError(t, err)

	cancelled := request(roomA, "2025-03-09", "2025-03-12")
	cancelled.Status = model.StatusCancelled

	sameDay, err := f.svc.Create(ctx, cancelled)
	require.NoError(t, err)

	// ends the day the range starts
	_, err = f.svc.Create(ctx, request(roomB, "2025-03-01", "2025-03-09"))
	require.NoError(t, err)

	// starts after the range ends
	_, err = f.svc.Create(ctx, request(roomB, "2025-03-21", "2025-03-22"))
	require.NoError(t, err)

	res, err := f.svc.GetByRange(ctx, mustDate(t, "2025-03-09"), mustDate(t, "2025-03-20"))
	require.NoError(t, err)

	ids := make([]int64, 0, len(res))
	for _, booking := range res {
		ids = append(ids, booking.ID)
	}

	assert.Equal(t, []int64{sameDay, early, late}, ids)

	_, err = f.svc.GetByRange(ctx, mustDate(t, "2025-03-20"), mustDate(t, "2025-03-09"))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestGetRecent(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	roomID := f.room(t, "Deluxe", true)

	var ids []int64

	for day := 1; day <= 7; day++ {
		in := time.Date(2025, time.October, day, 0, 0, 0, 0, time.UTC)

		id, err := f.svc.Create(ctx, request(roomID, daterange.FormatDate(in), daterange.FormatDate(in.AddDate(0, 0, 1))))
		require.NoError(t, err)

		ids = append(ids, id)

		// created_at must differ between bookings
		time.Sleep(2 * time.Millisecond)
	}

	res, err := f.svc.GetRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, res, 5)
	assert.Equal(t, ids[6], res[0].ID)
	assert.Equal(t, ids[2], res[4].ID)

	res, err = f.svc.GetRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestCreate_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.BookingTopic = "hotel.booking.events"

	f := newFixture(t, cfg, client)
	roomID := f.room(t, "Deluxe", true)

	published := make(chan kafka.Message, 1)

	client.EXPECT().
		SendMessages(gomock.Any(), "hotel.booking.events", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			published <- messages[0]

			return nil
		})

	id, err := f.svc.Create(context.Background(), request(roomID, "2025-11-01", "2025-11-02"))
	require.NoError(t, err)

	select {
	case msg := <-published:
		event, ok := msg.Value.(model.Event)
		require.True(t, ok)
		assert.Equal(t, model.EventCreated, event.Type)
		assert.Equal(t, id, event.BookingID)
		assert.Equal(t, "2025-11-01", event.CheckInDate)
		assert.Equal(t, event.Key(), msg.Key)
	case <-time.After(time.Second):
		t.Fatal("booking event was not published")
	}
}

func TestCreate_AvailabilityFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAvailability := availabilityMocks.NewMockAvailability(ctrl)

	otl := mocks.NewOtel()
	rooms := roomRepo.NewMemory()
	bookings := bookingRepo.NewMemory(rooms)
	svc := service.New(bookings, rooms, mockAvailability, &config.Config{}, cacheMocks.NewCache(), nil, otl)

	roomID, err := rooms.Insert(context.Background(), roomModel.Room{Name: "Deluxe", Available: true})
	require.NoError(t, err)

	mockAvailability.EXPECT().
		IsRoomAvailable(gomock.Any(), roomID, gomock.Any(), int64(0)).
		Return(false, errors.New("connection reset"))

	_, err = svc.Create(context.Background(), request(roomID, "2025-07-01", "2025-07-02"))

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))

	count, err := bookings.Count(context.Background(), gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Zero(t, count)
}
