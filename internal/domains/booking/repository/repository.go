package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"slices"
	"sync"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// WithRoomLock runs fn while holding an exclusive lock on each of the given rooms.
	// Availability checks and booking writes made from fn cannot interleave with another
	// writer on the same rooms.
	WithRoomLock(ctx context.Context, roomIDs []int64, fn func(ctx context.Context) error) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	rooms gRepo.Repository[roomModel.Room]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		rooms:      gRepo.NewRepository[roomModel.Room](roomModel.EntityName, roomModel.TableName, roomModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) WithRoomLock(ctx context.Context, roomIDs []int64, fn func(ctx context.Context) error) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.WithRoomLock")
	defer scope.End()

	return r.db.WithTx(ctx, func(ctx context.Context, _ *sqlx.Tx) error {
		err := r.rooms.Lock(ctx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    roomModel.FieldID,
					Operator: gDto.FilterOperatorIn,
					Value:    uniqueSorted(roomIDs),
					Table:    roomModel.TableName,
				},
			},
		})
		if err != nil {
			scope.TraceError(err)

			return err //nolint:wrapcheck
		}

		return fn(ctx)
	})
}

type memoryImpl struct {
	*gRepo.Memory[model.Booking]
	rooms roomRepo.Room

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewMemory returns a process local Booking store. Room names are read from rooms, the
// way the SQL implementation joins them.
func NewMemory(rooms roomRepo.Room) Booking {
	return &memoryImpl{
		Memory: gRepo.NewMemory[model.Booking](model.FieldID),
		rooms:  rooms,
		locks:  map[int64]*sync.Mutex{},
	}
}

func (m *memoryImpl) Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error) {
	booking, err := m.Memory.Get(ctx, filter, columns...)
	if err != nil || booking.ID == 0 {
		return booking, err //nolint:wrapcheck
	}

	if err = m.fillRoomName(ctx, &booking); err != nil {
		return model.Booking{}, err
	}

	return booking, nil
}

func (m *memoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error) {
	bookings, err := m.Memory.GetAll(ctx, params, filter, columns...)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	for i := range bookings {
		if err = m.fillRoomName(ctx, &bookings[i]); err != nil {
			return nil, err
		}
	}

	return bookings, nil
}

func (m *memoryImpl) fillRoomName(ctx context.Context, booking *model.Booking) error {
	room, err := m.rooms.Get(ctx, gDto.And(gDto.Filter{
		Field:    roomModel.FieldID,
		Operator: gDto.FilterOperatorEq,
		Value:    booking.RoomID,
	}))
	if err != nil {
		return err //nolint:wrapcheck
	}

	booking.RoomName = room.Name

	return nil
}

func (m *memoryImpl) WithRoomLock(ctx context.Context, roomIDs []int64, fn func(ctx context.Context) error) error {
	ids := uniqueSorted(roomIDs)
	held := make([]*sync.Mutex, 0, len(ids))

	m.mu.Lock()
	for _, id := range ids {
		lock, ok := m.locks[id]
		if !ok {
			lock = &sync.Mutex{}
			m.locks[id] = lock
		}

		held = append(held, lock)
	}
	m.mu.Unlock()

	// ascending order, so two writers never wait on each other
	for _, lock := range held {
		lock.Lock()
	}

	defer func() {
		for _, lock := range held {
			lock.Unlock()
		}
	}()

	return fn(ctx)
}

func uniqueSorted(ids []int64) []int64 {
	res := slices.Clone(ids)
	slices.Sort(res)

	return slices.Compact(res)
}
