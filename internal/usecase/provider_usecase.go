package usecase

import (
	"context"

	"fixly/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterProviderInput defines the data required to register a provider
// account together with its business profile.
type RegisterProviderInput struct {
	Name         string
	Email        string
	Password     string
	BusinessName string
	Category     entity.ServiceCategory
	Subcategory  string
	Description  string
	Location     string
	Contact      string
}

// UpdateProviderProfileInput carries editable profile fields. Version must be
// the value the client last read; a mismatch fails the update.
type UpdateProviderProfileInput struct {
	UserID       uuid.UUID
	BusinessName string
	Subcategory  string
	Description  string
	Location     string
	Contact      string
	Version      int
}

// ProviderUsecase defines the interface for provider-side business operations.
type ProviderUsecase interface {
	// RegisterProvider creates the user, credential and profile rows in one
	// transaction. The account starts pending and unavailable.
	RegisterProvider(ctx context.Context, input *RegisterProviderInput) (*SignUpOutput, error)

	// GetProfile returns the provider's own profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error)

	// UpdateProfile saves profile edits with optimistic concurrency.
	UpdateProfile(ctx context.Context, input *UpdateProviderProfileInput) (*entity.ProviderProfile, error)

	// SetAvailability flips whether the provider accepts new assignments.
	SetAvailability(ctx context.Context, userID uuid.UUID, available bool) (*entity.ProviderProfile, error)
}
