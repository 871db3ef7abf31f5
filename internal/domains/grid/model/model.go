package model

import (
	bookingModel "hotel/internal/domains/booking/model"
)

const (
	EntityName = "grid"

	CellAvailable = "available"
	CellBooked    = "booked"

	UnknownRoom = "Unknown Room"
)

// Palette is handed out in order to the bookings of one month.
var Palette = []string{
	"#4caf50", "#2196f3", "#ff9800", "#3f51b5", "#9c27b0",
	"#607d8b", "#795548", "#673ab7", "#e91e63", "#009688",
	"#cddc39", "#ffc107", "#00bcd4", "#8bc34a", "#ff5722",
}

const DefaultStatusColor = "#42a5f5"

var statusColors = map[string]string{
	bookingModel.StatusPending:    "#ffa726",
	bookingModel.StatusConfirmed:  "#42a5f5",
	bookingModel.StatusCheckedIn:  "#66bb6a",
	bookingModel.StatusCheckedOut: "#78909c",
	bookingModel.StatusCancelled:  "#ef5350",
}

func StatusColor(status string) string {
	if color, ok := statusColors[status]; ok {
		return color
	}

	return DefaultStatusColor
}
