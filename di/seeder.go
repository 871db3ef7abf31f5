package di

import (
	"hotel/config"
	roomRepository "hotel/internal/domains/room/repository"
	userService "hotel/internal/domains/user/service"
)

// Seeder carries what cmd/seed needs to populate an empty database.
type Seeder struct {
	Config *config.Config
	Rooms  roomRepository.Room
	Users  userService.User
}
