package handler

import (
	"log/slog"
	"net/http"

	"fixly/internal/delivery/http/middleware"
	"fixly/internal/delivery/http/response"
	"fixly/internal/domain/entity"
	"fixly/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProviderHandler holds dependencies for provider-related handlers.
type ProviderHandler struct {
	uc     usecase.ProviderUsecase
	logger *slog.Logger
}

// NewProviderHandler is the constructor for ProviderHandler, injected by Fx.
func NewProviderHandler(uc usecase.ProviderUsecase, logger *slog.Logger) *ProviderHandler {
	return &ProviderHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerProviderRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	BusinessName    string `json:"businessName" validate:"required,max=100"`
	Category        string `json:"category" validate:"required"`
	Subcategory     string `json:"subcategory" validate:"max=64"`
	Description     string `json:"description"`
	Location        string `json:"location" validate:"max=255"`
	Contact         string `json:"contact" validate:"max=64"`
}

// Register handles the provider registration request. The confirmation
// password is checked against the password server-side.
func (h *ProviderHandler) Register(c echo.Context) error {
	var req registerProviderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid provider registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RegisterProvider(c.Request().Context(), &usecase.RegisterProviderInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		BusinessName: req.BusinessName,
		Category:     entity.ServiceCategory(req.Category),
		Subcategory:  req.Subcategory,
		Description:  req.Description,
		Location:     req.Location,
		Contact:      req.Contact,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "Provider registered successfully")
}

// GetProfile returns the authenticated provider's own profile.
func (h *ProviderHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}

type updateProfileRequest struct {
	BusinessName string `json:"businessName" validate:"required,max=100"`
	Subcategory  string `json:"subcategory" validate:"max=64"`
	Description  string `json:"description"`
	Location     string `json:"location" validate:"max=255"`
	Contact      string `json:"contact" validate:"max=64"`
	Version      int    `json:"version" validate:"min=0"`
}

// UpdateProfile saves profile edits with optimistic concurrency.
func (h *ProviderHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), &usecase.UpdateProviderProfileInput{
		UserID:       userID,
		BusinessName: req.BusinessName,
		Subcategory:  req.Subcategory,
		Description:  req.Description,
		Location:     req.Location,
		Contact:      req.Contact,
		Version:      req.Version,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated")
}

type availabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// SetAvailability flips whether the provider accepts new assignments.
func (h *ProviderHandler) SetAvailability(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
	}

	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid availability input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.SetAvailability(c.Request().Context(), userID, *req.Available)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Availability updated")
}
