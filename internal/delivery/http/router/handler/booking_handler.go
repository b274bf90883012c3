package handler

import (
	"log/slog"
	"net/http"
	"time"

	"fixly/internal/delivery/http/middleware"
	"fixly/internal/delivery/http/response"
	"fixly/internal/domain/entity"
	"fixly/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookingHandler holds dependencies for booking-related handlers across the
// customer, admin and provider surfaces.
type BookingHandler struct {
	uc     usecase.BookingUsecase
	logger *slog.Logger
}

// NewBookingHandler is the constructor for BookingHandler, injected by Fx.
func NewBookingHandler(uc usecase.BookingUsecase, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitBookingRequest struct {
	Category       string  `json:"category" validate:"required"`
	ServiceName    string  `json:"serviceName" validate:"max=128"`
	Description    string  `json:"description"`
	CustomerName   string  `json:"customerName" validate:"required,max=100"`
	CustomerPhone  string  `json:"customerPhone" validate:"required,max=32"`
	CustomerEmail  string  `json:"customerEmail" validate:"omitempty,email"`
	ServiceAddress string  `json:"serviceAddress" validate:"required"`
	PreferredDate  string  `json:"preferredDate" validate:"omitempty,datetime=2006-01-02"`
	TimeSlot       string  `json:"timeSlot" validate:"omitempty,oneof=morning afternoon evening"`
	Urgency        string  `json:"urgency" validate:"omitempty,oneof=low normal high urgent"`
	EstimatedPrice float64 `json:"estimatedPrice" validate:"min=0"`
}

// Submit handles a customer's booking request submission.
func (h *BookingHandler) Submit(c echo.Context) error {
	customerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	var req submitBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid booking input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	var preferredDate *time.Time
	if req.PreferredDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PreferredDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_DATE", "Preferred date must be YYYY-MM-DD")
		}
		preferredDate = &parsed
	}

	booking, err := h.uc.SubmitBooking(c.Request().Context(), &usecase.SubmitBookingInput{
		CustomerID:     customerID,
		Category:       entity.ServiceCategory(req.Category),
		ServiceName:    req.ServiceName,
		Description:    req.Description,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerEmail:  req.CustomerEmail,
		ServiceAddress: req.ServiceAddress,
		PreferredDate:  preferredDate,
		TimeSlot:       entity.TimeSlot(req.TimeSlot),
		Urgency:        entity.Urgency(req.Urgency),
		EstimatedPrice: req.EstimatedPrice,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, booking, "Booking submitted")
}

// ListMine returns the authenticated customer's booking history.
func (h *BookingHandler) ListMine(c echo.Context) error {
	customerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	limit, offset := paginationParams(c)
	bookings, err := h.uc.ListCustomerBookings(c.Request().Context(), customerID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, bookings, "")
}

// ListOpen returns unassigned bookings for admin triage.
func (h *BookingHandler) ListOpen(c echo.Context) error {
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	limit, offset := paginationParams(c)
	bookings, err := h.uc.ListOpenBookings(c.Request().Context(), actorID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, bookings, "")
}

// ListAvailableProviders returns assignment candidates for a category.
func (h *BookingHandler) ListAvailableProviders(c echo.Context) error {
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	limit, offset := paginationParams(c)
	category := entity.ServiceCategory(c.QueryParam("category"))

	providers, err := h.uc.ListAvailableProviders(c.Request().Context(), actorID, category, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, providers, "")
}

type assignRequest struct {
	ProviderID string `json:"providerId" validate:"required,uuid"`
}

// Assign pairs a pending booking with a provider. Admin only.
func (h *BookingHandler) Assign(c echo.Context) error {
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid booking id")
	}

	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid provider id")
	}

	assignment, err := h.uc.AssignProvider(c.Request().Context(), &usecase.AssignProviderInput{
		ActorID:    actorID,
		BookingID:  bookingID,
		ProviderID: providerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, assignment, "Provider assigned")
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress completed cancelled"`
}

// UpdateStatus moves an assigned job along its lifecycle. Provider only.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid booking id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	booking, err := h.uc.UpdateBookingStatus(c.Request().Context(), &usecase.UpdateBookingStatusInput{
		ActorID:   actorID,
		BookingID: bookingID,
		Status:    entity.BookingStatus(req.Status),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, booking, "Booking status updated")
}

// ListJobs returns the bookings assigned to the authenticated provider.
func (h *BookingHandler) ListJobs(c echo.Context) error {
	providerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	limit, offset := paginationParams(c)
	jobs, err := h.uc.ListProviderJobs(c.Request().Context(), providerID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, jobs, "")
}
