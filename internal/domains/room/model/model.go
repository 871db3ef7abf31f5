package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldSize        = "size"
	FieldBeds        = "beds"
	FieldAmenities   = "amenities"
	FieldImages      = "images"
	FieldAvailable   = "available"
)

// Room is a bookable unit. Available is the administrative switch; date based
// availability is derived from bookings.
type Room struct {
	ID          int64           `db:"id"          readonly:"true"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Capacity    int             `db:"capacity"`
	Size        int             `db:"size"`
	Beds        string          `db:"beds"`
	Amenities   pq.StringArray  `db:"amenities"`
	Images      pq.StringArray  `db:"images"`
	Available   bool            `db:"available"`
	model.Metadata
}
