package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/gigstage/music-event-backend/internal/middleware"
	"github.com/gigstage/music-event-backend/internal/model"
	"github.com/gigstage/music-event-backend/internal/repository"
)

// EventHandler implements event CRUD. Creation and mutation are
// organizer-only (enforced by route middleware); the organizer identity
// on a created event always comes from the caller's token, never the
// request body.
type EventHandler struct {
	Events *repository.EventRepo
	Users  *repository.UserRepo
}

func NewEventHandler(e *repository.EventRepo, u *repository.UserRepo) *EventHandler {
	return &EventHandler{Events: e, Users: u}
}

// eventReq carries the client-settable fields of an event. Organizer id
// and name are deliberately absent: they are derived from the
// authenticated caller on create and immutable on update.
type eventReq struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Location         string          `json:"location"`
	Date             string          `json:"date"` // YYYY-MM-DD
	Time             string          `json:"time"`
	Price            decimal.Decimal `json:"price"`
	Category         string          `json:"category"`
	Emoji            string          `json:"emoji"`
	TotalTickets     int             `json:"totalTickets"`
	AvailableTickets *int            `json:"availableTickets"` // defaults to totalTickets
	Status           string          `json:"status"`
	MusicianID       *uint64         `json:"musicianId"`
	MusicianName     *string         `json:"musicianName"`
}

// validate normalizes the request and reports the first field problem.
func (r *eventReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
	r.Category = strings.TrimSpace(r.Category)
	if r.Name == "" {
		return "name is required"
	}
	if r.Location == "" {
		return "location is required"
	}
	if r.Category == "" {
		return "category is required"
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return "date must be YYYY-MM-DD"
	}
	if strings.TrimSpace(r.Time) == "" {
		return "time is required"
	}
	if r.Price.IsNegative() {
		return "price must not be negative"
	}
	if r.TotalTickets <= 0 {
		return "totalTickets must be positive"
	}
	if r.AvailableTickets == nil {
		n := r.TotalTickets
		r.AvailableTickets = &n
	}
	if *r.AvailableTickets < 0 || *r.AvailableTickets > r.TotalTickets {
		return "availableTickets must be between 0 and totalTickets"
	}
	if r.Status == "" {
		r.Status = model.EventUpcoming
	} else {
		r.Status = strings.ToUpper(r.Status)
		if !model.ValidEventStatus(r.Status) {
			return "invalid status"
		}
	}
	return ""
}

func (r *eventReq) apply(e *model.Event) {
	e.Name = r.Name
	e.Description = r.Description
	e.Location = r.Location
	e.Date = r.Date
	e.Time = r.Time
	e.Price = r.Price
	e.Category = r.Category
	e.Emoji = r.Emoji
	e.TotalTickets = r.TotalTickets
	e.AvailableTickets = *r.AvailableTickets
	e.Status = r.Status
	e.MusicianID = r.MusicianID
	e.MusicianName = r.MusicianName
}

// Create handles POST /api/events.
func (h *EventHandler) Create(c echo.Context) error {
	organizerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	organizer, err := h.Users.GetByID(ctx, organizerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load organizer failed"})
	}

	var e model.Event
	req.apply(&e)
	e.OrganizerID = organizer.ID
	e.OrganizerName = organizer.Name

	if err := h.Events.Create(ctx, &e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusOK, e)
}

// List handles GET /api/events.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, events)
}

// ListUpcoming handles GET /api/events/upcoming.
func (h *EventHandler) ListUpcoming(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.ListUpcoming(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, events)
}

// ListByOrganizer handles GET /api/events/organizer/:id.
func (h *EventHandler) ListByOrganizer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organizer id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.ListByOrganizer(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, events)
}

// GetByID handles GET /api/events/:id.
func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, e)
}

// Update handles PUT /api/events/:id. Every mutable field is replaced
// from the request; organizer identity and creation time are not.
func (h *EventHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var e model.Event
	req.apply(&e)
	updated, err := h.Events.Update(ctx, id, e)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/events/:id.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
