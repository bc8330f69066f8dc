package router

import (
	"github.com/go-chi/chi/v5"

	"hotelier/internal/handlers/booking"
	"hotelier/internal/handlers/room"
)

// DomainHandlers bundles every domain's HTTP handler for the router.
type DomainHandlers struct {
	Room    *room.Handler
	Booking *booking.Handler
}

type Router struct {
	handlers DomainHandlers
}

func NewRouter(handlers DomainHandlers) *Router {
	return &Router{
		handlers: handlers,
	}
}

// SetupRoutes mounts every domain under the /v1 prefix.
func (r *Router) SetupRoutes(mux chi.Router) {
	mux.Route("/v1", func(v1 chi.Router) {
		r.handlers.Room.Router(v1)
		r.handlers.Booking.Router(v1)
	})
}
