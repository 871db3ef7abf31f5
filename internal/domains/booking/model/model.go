package model

import (
	"time"

	"hotel/shared/daterange"
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldGuestName       = "guest_name"
	FieldGuestEmail      = "guest_email"
	FieldGuestPhone      = "guest_phone"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldNumberOfGuests  = "number_of_guests"
	FieldTotalPrice      = "total_price"
	FieldSpecialRequests = "special_requests"
	FieldStatus          = "status"
	FieldCreatedAt       = "created_at"
)

// Booking statuses. Any status may follow any other; only Cancelled has a meaning for
// availability.
const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusCheckedIn  = "CheckedIn"
	StatusCheckedOut = "CheckedOut"
	StatusCancelled  = "Cancelled"
)

var Statuses = []string{StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled}

type Booking struct {
	ID              int64           `db:"id"               readonly:"true"`
	RoomID          int64           `db:"room_id"`
	RoomName        string          `db:"room_name"        column:"name" table:"rooms"`
	GuestName       string          `db:"guest_name"`
	GuestEmail      string          `db:"guest_email"`
	GuestPhone      string          `db:"guest_phone"`
	CheckInDate     time.Time       `db:"check_in_date"`
	CheckOutDate    time.Time       `db:"check_out_date"`
	NumberOfGuests  int             `db:"number_of_guests"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	SpecialRequests string          `db:"special_requests"`
	Status          string          `db:"status"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id"
}

func (b Booking) Range() daterange.DateRange {
	return daterange.DateRange{
		CheckIn:  daterange.Truncate(b.CheckInDate),
		CheckOut: daterange.Truncate(b.CheckOutDate),
	}
}

// Active reports whether the booking holds its room, i.e. it is not cancelled.
func (b Booking) Active() bool {
	return b.Status != StatusCancelled
}
