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

// ContractHandler implements the artist-booking contract lifecycle:
// organizers propose, artists accept or reject, and accepted contracts
// get the eventually-created event linked back onto them.
type ContractHandler struct {
	Contracts *repository.ContractRepo
	Users     *repository.UserRepo
	Events    *repository.EventRepo
}

func NewContractHandler(cr *repository.ContractRepo, u *repository.UserRepo, e *repository.EventRepo) *ContractHandler {
	return &ContractHandler{Contracts: cr, Users: u, Events: e}
}

type contractReq struct {
	ArtistID         uint64          `json:"artistId"`
	EventName        string          `json:"eventName"`
	Venue            string          `json:"venue"`
	EventDate        string          `json:"eventDate"`
	EventTime        string          `json:"eventTime"`
	EventDescription string          `json:"eventDescription"`
	PaymentAmount    decimal.Decimal `json:"paymentAmount"`
	Notes            string          `json:"notes"`
}

// Create handles POST /api/contracts. The organizer comes from the
// caller's token; the artist is resolved by id, and a missing artist is
// a 400 because it is a parent entity of this operation.
func (h *ContractHandler) Create(c echo.Context) error {
	organizerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req contractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.EventName = strings.TrimSpace(req.EventName)
	if req.ArtistID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artistId is required"})
	}
	if req.EventName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventName is required"})
	}
	if req.PaymentAmount.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "paymentAmount must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	organizer, err := h.Users.GetByID(ctx, organizerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load organizer failed"})
	}
	artist, err := h.Users.GetByID(ctx, req.ArtistID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load artist failed"})
	}
	if artist.Role != model.RoleMusician {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist must be a musician"})
	}

	contract := model.Contract{
		OrganizerID:      organizer.ID,
		OrganizerName:    organizer.Name,
		ArtistID:         artist.ID,
		ArtistName:       artist.Name,
		EventName:        req.EventName,
		Venue:            req.Venue,
		EventDate:        req.EventDate,
		EventTime:        req.EventTime,
		EventDescription: req.EventDescription,
		PaymentAmount:    req.PaymentAmount,
		Notes:            req.Notes,
		Status:           model.ContractPending,
	}
	if err := h.Contracts.Create(ctx, &contract); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create contract failed"})
	}
	return c.JSON(http.StatusOK, contract)
}

// ListByArtist handles GET /api/contracts/artist/:id.
func (h *ContractHandler) ListByArtist(c echo.Context) error {
	return h.listBy(c, h.Contracts.ListByArtist)
}

// ListByOrganizer handles GET /api/contracts/organizer/:id.
func (h *ContractHandler) ListByOrganizer(c echo.Context) error {
	return h.listBy(c, h.Contracts.ListByOrganizer)
}

// ListPendingByArtist handles GET /api/contracts/artist/:id/pending.
func (h *ContractHandler) ListPendingByArtist(c echo.Context) error {
	return h.listBy(c, h.Contracts.ListPendingByArtist)
}

func (h *ContractHandler) listBy(c echo.Context, query func(context.Context, uint64) ([]model.Contract, error)) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contracts, err := query(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, contracts)
}

// GetByID handles GET /api/contracts/:id.
func (h *ContractHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contract, err := h.Contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, contract)
}

// UpdateStatus handles PUT /api/contracts/:id/status. Only the two
// terminal states are accepted; a contract cannot be moved back to
// PENDING.
func (h *ContractHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(body.Status))
	if status != model.ContractAccepted && status != model.ContractRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be ACCEPTED or REJECTED"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contract, err := h.Contracts.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update contract failed"})
	}
	return c.JSON(http.StatusOK, contract)
}

// LinkEvent handles PUT /api/contracts/:id/link-event, attaching the id
// of an event created after acceptance. The event must exist; it is a
// parent entity here, so its absence is a 400.
func (h *ContractHandler) LinkEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	var body struct {
		EventID uint64 `json:"eventId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventId is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Events.GetByID(ctx, body.EventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}

	contract, err := h.Contracts.LinkEvent(ctx, id, body.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update contract failed"})
	}
	return c.JSON(http.StatusOK, contract)
}
