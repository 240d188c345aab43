package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gigstage/music-event-backend/internal/middleware"
	"github.com/gigstage/music-event-backend/internal/model"
	"github.com/gigstage/music-event-backend/internal/monitoring"
	"github.com/gigstage/music-event-backend/internal/queue"
	"github.com/gigstage/music-event-backend/internal/repository"
	queue_publisher "github.com/gigstage/music-event-backend/internal/service"
	"github.com/gigstage/music-event-backend/internal/utils"
)

// BookingHandler implements the ticket booking workflow. Create runs the
// availability check, booking insert and inventory decrement inside one
// transaction so concurrent bookings against the same event cannot
// oversell it. Publisher may be nil, in which case confirmed bookings
// are not announced on the queue.
type BookingHandler struct {
	Bookings  *repository.BookingRepo
	Events    *repository.EventRepo
	Users     *repository.UserRepo
	Publisher *queue_publisher.BookingPublisher
}

func NewBookingHandler(b *repository.BookingRepo, e *repository.EventRepo, u *repository.UserRepo, p *queue_publisher.BookingPublisher) *BookingHandler {
	return &BookingHandler{Bookings: b, Events: e, Users: u, Publisher: p}
}

type bookingReq struct {
	EventID uint64 `json:"eventId"`
	Tickets int    `json:"tickets"`
}

// Create handles POST /api/bookings. The caller's identity comes from
// the auth gate; the event id and ticket count from the body. Failures
// while resolving the event surface as 400, not 404, because the event
// is a parent entity of this operation.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventId is required"})
	}
	if req.Tickets <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tickets must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	tx, err := h.Events.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Row lock on the event serializes concurrent bookings; the
	// conditional decrement below re-checks availability regardless.
	event, err := h.Events.GetForUpdateTx(ctx, tx, req.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	if event.AvailableTickets < req.Tickets {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "not enough tickets available"})
	}

	booking := model.Booking{
		UserID:   user.ID,
		UserName: user.Name,
		EventID:  event.ID,
		Tickets:  req.Tickets,
		QRCode:   utils.NewRedemptionCode(event.ID),
		Status:   model.BookingConfirmed,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if err := h.Events.DecrementTicketsTx(ctx, tx, event.ID, req.Tickets); err != nil {
		if errors.Is(err, repository.ErrInsufficientTickets) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "not enough tickets available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update tickets failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	monitoring.ObserveBooking(booking.Tickets)
	if h.Publisher != nil {
		// Best effort; a broker outage must not fail the booking.
		_ = h.Publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
			BookingID:   booking.ID,
			UserID:      booking.UserID,
			UserName:    booking.UserName,
			EventID:     event.ID,
			EventName:   event.Name,
			Tickets:     booking.Tickets,
			QRCode:      booking.QRCode,
			ConfirmedAt: booking.BookingDate.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, booking)
}

// ListByUser handles GET /api/bookings/user/:userId.
func (h *BookingHandler) ListByUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListByEvent handles GET /api/bookings/event/:eventId.
func (h *BookingHandler) ListByEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("eventId"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// GetByID handles GET /api/bookings/:id.
func (h *BookingHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, b)
}
