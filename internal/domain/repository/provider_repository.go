package repository

import (
	"context"
	"errors"

	"fixly/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProviderNotFound is returned when no provider profile matches the lookup.
var ErrProviderNotFound = errors.New("provider profile not found")

// ErrStaleVersion is returned when a compare-and-set update finds the row was
// modified by another writer since it was read.
var ErrStaleVersion = errors.New("stale version, row modified concurrently")

// ProviderRepository defines the operations for provider profile persistence.
type ProviderRepository interface {
	// Create persists a new provider profile.
	Create(ctx context.Context, profile *entity.ProviderProfile) error

	// FindByUserID retrieves the profile owned by the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error)

	// Update saves profile edits with compare-and-set on the version column.
	// Returns ErrStaleVersion if the row changed since profile was loaded.
	Update(ctx context.Context, profile *entity.ProviderProfile) error

	// ListAvailable returns assignment candidates: profiles with
	// availability=true whose owning user is approved, ordered by descending
	// aggregate rating. A non-empty category narrows the list to one trade.
	ListAvailable(ctx context.Context, category entity.ServiceCategory, limit, offset int) ([]*entity.ProviderProfile, error)
}
