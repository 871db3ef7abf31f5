package main

import (
	"context"

	"hotel/config"
	"hotel/di"
	userDto "hotel/internal/domains/user/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD is required")
	}

	seeder := di.InitializeSeeder()
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, constant.ContextSystem)

	created, err := seeder.Users.CreateIfAbsent(ctx, userDto.CreateUserRequest{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Name:     cfg.Seed.AdminName,
		Role:     constant.RoleAdmin,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin user")
	}

	log.Info().Bool("created", created).Str("email", cfg.Seed.AdminEmail).Msg("Admin user seeded")

	count, err := seeder.Rooms.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to count rooms")
	}

	if count > 0 {
		log.Info().Int("rooms", count).Msg("Rooms already exist, skipping room seeding")

		return
	}

	for _, room := range sampleRooms {
		if _, err = seeder.Rooms.Insert(ctx, room.ToModel(constant.ContextSystem)); err != nil {
			log.Fatal().Err(err).Str("room", room.Name).Msg("Failed to seed room")
		}
	}

	log.Info().Int("rooms", len(sampleRooms)).Msg("Rooms seeded successfully")
}
