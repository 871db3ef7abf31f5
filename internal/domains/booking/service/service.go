package service

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheRangeBooking  = "booking:range"
	cacheRecentBooking = "booking:recent"
)

const (
	msgBookingNotFound = "booking not found"
	msgRoomNotFound    = "room not found"
	msgRoomClosed      = "room is not open for booking"
	msgNotAvailable    = "room not available for selected dates"
)

type Booking interface {
	Create(ctx context.Context, req dto.BookingRequest) (int64, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	GetByRange(ctx context.Context, start, end time.Time) ([]dto.BookingResponse, error)
	GetRecent(ctx context.Context, count int) ([]dto.BookingResponse, error)
	Update(ctx context.Context, req dto.BookingRequest, id int64) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	availability availability.Availability
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	availability availability.Availability,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		availability: availability,
		cfg:          cfg,
		cache:        cache,
		kafka:        kafka,
		otel:         otel,
	}
}

func actor(ctx context.Context) string {
	if user, _ := ctx.Value(constant.ContextKeyUserID).(string); user != "" {
		return user
	}

	return constant.ContextGuest
}

// checkRoom fails when the room is missing or switched off by an admin.
func (s *serviceImpl) checkRoom(ctx context.Context, roomID int64) error {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("roomId", roomID).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return failure.NotFound(msgRoomNotFound) //nolint:wrapcheck
	}

	if !room.Available {
		return failure.Conflict(msgRoomClosed) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) ensureAvailable(ctx context.Context, roomID int64, stay daterange.DateRange, excludeID int64) error {
	available, err := s.availability.IsRoomAvailable(ctx, roomID, stay, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check room availability: %w", err)
	}

	if !available {
		return failure.Conflict(msgNotAvailable) //nolint:wrapcheck
	}

	return nil
}

// writeError maps store errors that carry a business meaning.
func writeError(err error, action string) error {
	if failure.GetCode(err) != http.StatusInternalServerError {
		return err
	}

	if shared.IsPqError(err, constant.PqErrorCodeExclusionViolation) {
		return failure.Conflict(msgNotAvailable) //nolint:wrapcheck
	}

	if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
		return failure.NotFound(msgRoomNotFound) //nolint:wrapcheck
	}

	return fmt.Errorf("failed to %s booking: %w", action, err)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.BookingRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return 0, err
	}

	user := actor(ctx)
	booking := req.ToModel(user)

	if err = s.checkRoom(ctx, booking.RoomID); err != nil {
		return 0, err
	}

	err = s.repo.WithRoomLock(ctx, []int64{booking.RoomID}, func(ctx context.Context) error {
		if err := s.ensureAvailable(ctx, booking.RoomID, booking.Range(), 0); err != nil {
			return err
		}

		newID, err := s.repo.Insert(ctx, booking)
		if err != nil {
			return err //nolint:wrapcheck
		}

		id = newID

		return nil
	})
	if err != nil {
		log.Error().Err(err).Int64("roomId", booking.RoomID).Msg("failed to create booking")

		return 0, writeError(err, "create")
	}

	booking.ID = id
	scope.SetAttribute("bookingId", id)

	s.afterWrite(ctx, id, model.NewEvent(model.EventCreated, booking, user, timezone.Now()))

	return id, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// GetByRange returns every booking, whatever its status, that occupies at least one
// day of the inclusive range [start, end].
func (s *serviceImpl) GetByRange(ctx context.Context, start, end time.Time) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByRange")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end = daterange.Truncate(start), daterange.Truncate(end)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, failure.Validation([]string{"endDate must not be before startDate"}) //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheRangeBooking, daterange.FormatDate(start), daterange.FormatDate(end))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.And(
		gDto.Filter{
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    end,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldCheckOutDate,
			Operator: gDto.FilterOperatorGreater,
			Value:    start,
			Table:    model.TableName,
		},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings by range")

		return nil, fmt.Errorf("failed to get bookings by range: %w", err)
	}

	slices.SortFunc(models, func(a, b model.Booking) int {
		return cmp.Or(
			a.CheckInDate.Compare(b.CheckInDate),
			cmp.Compare(a.RoomID, b.RoomID),
			cmp.Compare(a.ID, b.ID),
		)
	})

	res = dto.FromModels(models)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetRecent(ctx context.Context, count int) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRecent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if count <= 0 {
		count = s.cfg.App.Booking.RecentCount
	}

	cacheKey := shared.BuildCacheKey(cacheRecentBooking, count)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{
		Page:    1,
		Limit:   count,
		SortBy:  model.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent bookings")

		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	res = dto.FromModels(models)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// Update overwrites every mutable field. Moving the booking to another room locks
// both rooms.
func (s *serviceImpl) Update(ctx context.Context, req dto.BookingRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if req.RoomID != existing.RoomID {
		if err = s.checkRoom(ctx, req.RoomID); err != nil {
			return err
		}
	} else if err = s.roomExists(ctx, req.RoomID); err != nil {
		return err
	}

	user := actor(ctx)
	stay, _ := req.Range()

	err = s.repo.WithRoomLock(ctx, []int64{existing.RoomID, req.RoomID}, func(ctx context.Context) error {
		if err := s.ensureAvailable(ctx, req.RoomID, stay, id); err != nil {
			return err
		}

		return s.repo.Update(ctx, req.ToFields(user), shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Int64("bookingId", id).Msg("failed to update booking")

		return writeError(err, "update")
	}

	updated := req.ToModel(user)
	updated.ID = id

	s.afterWrite(ctx, id, model.NewEvent(model.EventUpdated, updated, user, timezone.Now()))

	return nil
}

// UpdateStatus sets any status from any other. Availability is not re-checked, so
// reviving a cancelled booking can collide with a newer one; the store's exclusion
// constraint rejects that case.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	user := actor(ctx)

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("bookingId", id).Msg("failed to update booking status")

		return writeError(err, "update status of")
	}

	booking.Status = req.Status

	s.afterWrite(ctx, id, model.NewEvent(model.EventStatusChanged, booking, user, timezone.Now()))

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("bookingId", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.afterWrite(ctx, id, model.NewEvent(model.EventDeleted, booking, actor(ctx), timezone.Now()))

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id int64) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("bookingId", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.NotFound(msgBookingNotFound) //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) roomExists(ctx context.Context, roomID int64) error {
	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("roomId", roomID).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound(msgRoomNotFound) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save bookings to cache")
		}
	}()
}

// afterWrite drops every cached view a booking can appear in and publishes event.
func (s *serviceImpl) afterWrite(ctx context.Context, id int64, event model.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking, cacheCountBooking, cacheRangeBooking, cacheRecentBooking, constant.CacheKeyGrid)
	}()

	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.BookingTopic, kafka.Message{Key: event.Key(), Value: event})
		if err != nil {
			log.Error().Err(err).Str("event", event.Type).Int64("bookingId", id).Msg("failed to publish booking event")
		}
	}()
}
