package handler

import (
	"log/slog"
	"net/http"

	"fixly/internal/delivery/http/middleware"
	"fixly/internal/delivery/http/response"
	"fixly/internal/domain/entity"
	"fixly/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TicketHandler holds dependencies for support ticket handlers.
type TicketHandler struct {
	uc     usecase.TicketUsecase
	logger *slog.Logger
}

// NewTicketHandler is the constructor for TicketHandler, injected by Fx.
func NewTicketHandler(uc usecase.TicketUsecase, logger *slog.Logger) *TicketHandler {
	return &TicketHandler{
		uc:     uc,
		logger: logger,
	}
}

type createTicketRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"omitempty,oneof=general booking payment account other"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

// Create files a new support ticket for the authenticated user.
func (h *TicketHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid ticket input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	ticket, err := h.uc.CreateTicket(c.Request().Context(), &usecase.CreateTicketInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    entity.TicketCategory(req.Category),
		Priority:    entity.TicketPriority(req.Priority),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, ticket, "Ticket created")
}

// ListMine returns the authenticated user's own tickets.
func (h *TicketHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	limit, offset := paginationParams(c)
	tickets, err := h.uc.ListUserTickets(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tickets, "")
}

// ListAll returns every ticket, optionally filtered by status. Admin only.
func (h *TicketHandler) ListAll(c echo.Context) error {
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	limit, offset := paginationParams(c)
	status := entity.TicketStatus(c.QueryParam("status"))

	tickets, err := h.uc.ListTickets(c.Request().Context(), actorID, status, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tickets, "")
}

type advanceTicketRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress resolved closed"`
}

// Advance moves a ticket to a later lifecycle status. Admin only.
func (h *TicketHandler) Advance(c echo.Context) error {
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid ticket id")
	}

	var req advanceTicketRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	ticket, err := h.uc.AdvanceTicket(c.Request().Context(), &usecase.AdvanceTicketInput{
		ActorID:  actorID,
		TicketID: ticketID,
		Status:   entity.TicketStatus(req.Status),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ticket, "Ticket advanced")
}
