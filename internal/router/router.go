package router // package router wires HTTP routes to their handlers and middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gigstage/music-event-backend/internal/handler"
	"github.com/gigstage/music-event-backend/internal/middleware"
	"github.com/gigstage/music-event-backend/internal/model"
)

// Handlers collects every handler the router needs. All fields must be
// non-nil.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Events    *handler.EventHandler
	Bookings  *handler.BookingHandler
	Contracts *handler.ContractHandler
}

// Register wires the full API surface onto e.
//
// /api/auth bypasses the auth gate entirely. Everything else under /api
// passes through it: the gate resolves identity when a valid token is
// present but never rejects, so reads stay open to guests while
// mutations carry explicit RequireAuth/RequireRole policy.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := e.Group("/api/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	api := e.Group("/api", middleware.AuthGate(jwtSecret))

	// Account directory.
	api.GET("/users/artists", h.Users.GetArtists)
	api.GET("/users/organizers", h.Users.GetOrganizers)
	api.GET("/users/:id", h.Users.GetByID)

	// Events: reads are open, mutations are organizer-only.
	organizer := middleware.RequireRole(model.RoleOrganizer)
	api.GET("/events", h.Events.List)
	api.GET("/events/upcoming", h.Events.ListUpcoming)
	api.GET("/events/organizer/:id", h.Events.ListByOrganizer)
	api.GET("/events/:id", h.Events.GetByID)
	api.POST("/events", h.Events.Create, organizer)
	api.PUT("/events/:id", h.Events.Update, organizer)
	api.DELETE("/events/:id", h.Events.Delete, organizer)

	// Bookings: any authenticated caller may book.
	api.POST("/bookings", h.Bookings.Create, middleware.RequireAuth())
	api.GET("/bookings/user/:userId", h.Bookings.ListByUser)
	api.GET("/bookings/event/:eventId", h.Bookings.ListByEvent)
	api.GET("/bookings/:id", h.Bookings.GetByID)

	// Contracts: organizers propose and link, musicians decide.
	musician := middleware.RequireRole(model.RoleMusician)
	api.POST("/contracts", h.Contracts.Create, organizer)
	api.GET("/contracts/artist/:id", h.Contracts.ListByArtist)
	api.GET("/contracts/artist/:id/pending", h.Contracts.ListPendingByArtist)
	api.GET("/contracts/organizer/:id", h.Contracts.ListByOrganizer)
	api.GET("/contracts/:id", h.Contracts.GetByID)
	api.PUT("/contracts/:id/status", h.Contracts.UpdateStatus, musician)
	api.PUT("/contracts/:id/link-event", h.Contracts.LinkEvent, organizer)
}
