package main

import (
	"hotel/internal/domains/room/model/dto"

	"github.com/shopspring/decimal"
)

var sampleRooms = []dto.RoomRequest{
	{
		Name:        "Deluxe Room",
		Description: "Spacious room with city view",
		Price:       decimal.NewFromInt(150),
		Capacity:    2,
		Size:        35,
		Beds:        "1 King",
		Amenities:   []string{"WIFI", "AIR_CONDITIONING", "FLAT_SCREEN_TV", "MINIBAR", "SAFE"},
		Images:      []string{"/assets/images/rooms/deluxe-1.jpg", "/assets/images/rooms/deluxe-2.jpg"},
	},
	{
		Name:        "Superior Room",
		Description: "Elegant room with garden view",
		Price:       decimal.NewFromInt(200),
		Capacity:    2,
		Size:        40,
		Beds:        "1 King",
		Amenities:   []string{"WIFI", "AIR_CONDITIONING", "FLAT_SCREEN_TV", "MINIBAR", "SAFE", "COFFEE_MACHINE", "MARBLE_BATHROOM"},
		Images:      []string{"/assets/images/rooms/superior-1.jpg", "/assets/images/rooms/superior-2.jpg"},
	},
	{
		Name:        "Family Room",
		Description: "Comfortable room for families",
		Price:       decimal.NewFromInt(250),
		Capacity:    4,
		Size:        55,
		Beds:        "2 Queen",
		Amenities:   []string{"WIFI", "AIR_CONDITIONING", "FLAT_SCREEN_TV", "MINIBAR", "SAFE", "COFFEE_MACHINE", "BATHTUB"},
		Images:      []string{"/assets/images/rooms/family-1.jpg", "/assets/images/rooms/family-2.jpg"},
	},
	{
		Name:        "Executive Suite",
		Description: "Luxurious suite with separate living area",
		Price:       decimal.NewFromInt(350),
		Capacity:    2,
		Size:        70,
		Beds:        "1 King",
		Amenities:   []string{"WIFI", "AIR_CONDITIONING", "FLAT_SCREEN_TV", "MINIBAR", "SAFE", "COFFEE_MACHINE", "MARBLE_BATHROOM", "BATHTUB", "LIVING_ROOM", "DESK"},
		Images:      []string{"/assets/images/rooms/executive-1.jpg", "/assets/images/rooms/executive-2.jpg"},
	},
	{
		Name:        "Presidential Suite",
		Description: "Our finest accommodation with panoramic views",
		Price:       decimal.NewFromInt(600),
		Capacity:    4,
		Size:        120,
		Beds:        "1 King",
		Amenities:   []string{"WIFI", "AIR_CONDITIONING", "FLAT_SCREEN_TV", "MINIBAR", "SAFE", "COFFEE_MACHINE", "MARBLE_BATHROOM", "BATHTUB", "LIVING_ROOM", "DESK", "DINING_ROOM", "BUTLER", "BALCONY"},
		Images:      []string{"/assets/images/rooms/presidential-1.jpg", "/assets/images/rooms/presidential-2.jpg"},
	},
}
