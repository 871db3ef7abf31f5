package model

import (
	"strconv"
	"time"

	"hotel/shared/daterange"
)

const (
	EventCreated       = "booking.created"
	EventUpdated       = "booking.updated"
	EventStatusChanged = "booking.status_changed"
	EventDeleted       = "booking.deleted"
)

// Event is published on the booking topic after a successful write.
type Event struct {
	Type         string    `json:"type"`
	BookingID    int64     `json:"bookingId"`
	RoomID       int64     `json:"roomId,omitempty"`
	Status       string    `json:"status,omitempty"`
	CheckInDate  string    `json:"checkInDate,omitempty"`
	CheckOutDate string    `json:"checkOutDate,omitempty"`
	Actor        string    `json:"actor,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func NewEvent(eventType string, booking Booking, actor string, at time.Time) Event {
	event := Event{
		Type:       eventType,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		Status:     booking.Status,
		Actor:      actor,
		OccurredAt: at,
	}

	if !booking.CheckInDate.IsZero() {
		event.CheckInDate = daterange.FormatDate(booking.CheckInDate)
		event.CheckOutDate = daterange.FormatDate(booking.CheckOutDate)
	}

	return event
}

// Key partitions events by room so a room's history stays ordered.
func (e Event) Key() string {
	return strconv.FormatInt(e.RoomID, 10)
}
