package dto

// Cell is one room on one day. Booking fields are empty for available cells.
type Cell struct {
	Status        string `json:"status"`
	BookingID     int64  `json:"bookingId,omitempty"`
	GuestName     string `json:"guestName,omitempty"`
	Color         string `json:"color,omitempty"`
	BookingStatus string `json:"bookingStatus,omitempty"`
}

type Row struct {
	RoomID   int64           `json:"roomId"`
	RoomName string          `json:"roomName"`
	Cells    map[string]Cell `json:"cells"`
}

// Grid is keyed by room row, then by YYYY-MM-DD.
type Grid struct {
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Dates     []string `json:"dates"`
	Rows      []Row    `json:"rows"`
}

// Event is one booking on the calendar. End is the check-out day, exclusive.
type Event struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Color  string `json:"color"`
	Status string `json:"status"`
	RoomID int64  `json:"roomId"`
}
