package router

import (
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/grid"
	"hotel/internal/handlers/image"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
	Grid    grid.Handler
	Image   image.Handler
	User    user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes registers every domain under router, which is expected to be the /api group.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Auth.Router(router)
	r.DomainHandlers.Room.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Grid.Router(router)
	r.DomainHandlers.Image.Router(router)
	r.DomainHandlers.User.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
