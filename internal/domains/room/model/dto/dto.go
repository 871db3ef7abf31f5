package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// RoomRequest is the body of both create and full update.
type RoomRequest struct {
	Name        string          `json:"name"        validate:"required,max=100"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity"    validate:"gt=0"`
	Size        int             `json:"size"        validate:"gt=0"`
	Beds        string          `json:"beds"        validate:"required,max=100"`
	Amenities   []string        `json:"amenities"   validate:"omitempty,dive,required,max=100"`
	Images      []string        `json:"images"      validate:"omitempty,dive,required"`
	Available   *bool           `json:"available"`
}

func (r *RoomRequest) ValidateFields() []string {
	if !r.Price.IsPositive() {
		return []string{"price must be greater than 0"}
	}

	return nil
}

func (r *RoomRequest) available() bool {
	return r.Available == nil || *r.Available
}

func (r *RoomRequest) ToModel(user string) model.Room {
	now := timezone.Now()

	return model.Room{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Size:        r.Size,
		Beds:        r.Beds,
		Amenities:   nonNil(r.Amenities),
		Images:      nonNil(r.Images),
		Available:   r.available(),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// ToFields returns the columns overwritten by a full update.
func (r *RoomRequest) ToFields(user string) map[string]any {
	return map[string]any{
		model.FieldName:          r.Name,
		model.FieldDescription:   r.Description,
		model.FieldPrice:         r.Price,
		model.FieldCapacity:      r.Capacity,
		model.FieldSize:          r.Size,
		model.FieldBeds:          r.Beds,
		model.FieldAmenities:     nonNil(r.Amenities),
		model.FieldImages:        nonNil(r.Images),
		model.FieldAvailable:     r.available(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

func nonNil(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}

	return pq.StringArray(values)
}

type CreateRoomResponse struct {
	ID int64 `json:"id"`
}

type RoomResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity"`
	Size        int             `json:"size"`
	Beds        string          `json:"beds"`
	Amenities   []string        `json:"amenities"`
	Images      []string        `json:"images"`
	Available   bool            `json:"available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Size = model.Size
	r.Beds = model.Beds
	r.Amenities = []string(nonNil(model.Amenities))
	r.Images = []string(nonNil(model.Images))
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"totalPage"`
	TotalData int            `json:"totalData"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Rooms = FromModels(models)
}

type AvailabilityResponse struct {
	RoomID    int64 `json:"roomId"`
	Available bool  `json:"available"`
}
