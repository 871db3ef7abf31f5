package dto

import (
	"errors"

	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/shopspring/decimal"
)

// BookingRequest is the body of both create and full update.
type BookingRequest struct {
	RoomID          int64           `json:"roomId"          validate:"gt=0"`
	GuestName       string          `json:"guestName"       validate:"required,max=100"`
	GuestEmail      string          `json:"guestEmail"      validate:"required,email,max=100"`
	GuestPhone      string          `json:"guestPhone"      validate:"required,max=20"`
	CheckInDate     string          `json:"checkInDate"     validate:"required"`
	CheckOutDate    string          `json:"checkOutDate"    validate:"required"`
	NumberOfGuests  int             `json:"numberOfGuests"  validate:"gt=0"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	SpecialRequests string          `json:"specialRequests" validate:"max=500"`
	Status          string          `json:"status"          validate:"omitempty,oneof=Pending Confirmed CheckedIn CheckedOut Cancelled"`
}

// ValidateFields covers the rules that span fields or need parsing.
func (r *BookingRequest) ValidateFields() []string {
	msgs := []string{}

	if r.CheckInDate != "" && r.CheckOutDate != "" {
		_, err := r.Range()

		switch {
		case errors.Is(err, daterange.ErrInvalidRange):
			msgs = append(msgs, "checkOutDate must be after checkInDate")
		case err != nil:
			msgs = append(msgs, "checkInDate and checkOutDate must be dates in YYYY-MM-DD format")
		}
	}

	if !r.TotalPrice.IsPositive() {
		msgs = append(msgs, "totalPrice must be greater than 0")
	}

	return msgs
}

func (r *BookingRequest) Range() (daterange.DateRange, error) {
	return daterange.Parse(r.CheckInDate, r.CheckOutDate) //nolint:wrapcheck
}

// StatusOrDefault returns the requested status, Pending when none was given.
func (r *BookingRequest) StatusOrDefault() string {
	if r.Status == "" {
		return model.StatusPending
	}

	return r.Status
}

// ToModel expects a request that passed validation.
func (r *BookingRequest) ToModel(user string) model.Booking {
	stay, _ := r.Range()
	now := timezone.Now()

	return model.Booking{
		RoomID:          r.RoomID,
		GuestName:       r.GuestName,
		GuestEmail:      r.GuestEmail,
		GuestPhone:      r.GuestPhone,
		CheckInDate:     stay.CheckIn,
		CheckOutDate:    stay.CheckOut,
		NumberOfGuests:  r.NumberOfGuests,
		TotalPrice:      r.TotalPrice,
		SpecialRequests: r.SpecialRequests,
		Status:          r.StatusOrDefault(),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// ToFields returns the columns overwritten by a full update.
func (r *BookingRequest) ToFields(user string) map[string]any {
	stay, _ := r.Range()

	return map[string]any{
		model.FieldRoomID:          r.RoomID,
		model.FieldGuestName:       r.GuestName,
		model.FieldGuestEmail:      r.GuestEmail,
		model.FieldGuestPhone:      r.GuestPhone,
		model.FieldCheckInDate:     stay.CheckIn,
		model.FieldCheckOutDate:    stay.CheckOut,
		model.FieldNumberOfGuests:  r.NumberOfGuests,
		model.FieldTotalPrice:      r.TotalPrice,
		model.FieldSpecialRequests: r.SpecialRequests,
		model.FieldStatus:          r.StatusOrDefault(),
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   user,
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=Pending Confirmed CheckedIn CheckedOut Cancelled"`
}

type CreateBookingResponse struct {
	ID int64 `json:"id"`
}

type BookingResponse struct {
	ID              int64           `json:"id"`
	RoomID          int64           `json:"roomId"`
	RoomName        string          `json:"roomName"`
	GuestName       string          `json:"guestName"`
	GuestEmail      string          `json:"guestEmail"`
	GuestPhone      string          `json:"guestPhone"`
	CheckInDate     string          `json:"checkInDate"`
	CheckOutDate    string          `json:"checkOutDate"`
	Nights          int             `json:"nights"`
	NumberOfGuests  int             `json:"numberOfGuests"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	SpecialRequests string          `json:"specialRequests"`
	Status          string          `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	stay := model.Range()

	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.CheckInDate = daterange.FormatDate(stay.CheckIn)
	r.CheckOutDate = daterange.FormatDate(stay.CheckOut)
	r.Nights = stay.Nights()
	r.NumberOfGuests = model.NumberOfGuests
	r.TotalPrice = model.TotalPrice
	r.SpecialRequests = model.SpecialRequests
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"totalPage"`
	TotalData int               `json:"totalData"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Bookings = FromModels(models)
}
