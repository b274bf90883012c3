package entity

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCategory is the fixed enum of trades a provider can offer and a
// customer can request.
type ServiceCategory string

const (
	CategoryElectrician  ServiceCategory = "electrician"
	CategoryPlumber      ServiceCategory = "plumber"
	CategoryACTechnician ServiceCategory = "ac_technician"
	CategoryCarpenter    ServiceCategory = "carpenter"
	CategoryPainter      ServiceCategory = "painter"
	CategoryCleaner      ServiceCategory = "cleaner"
	CategoryHandyman     ServiceCategory = "handyman"
)

// String returns the string representation of the ServiceCategory.
func (c ServiceCategory) String() string {
	return string(c)
}

// IsValid checks if the ServiceCategory is a valid value.
func (c ServiceCategory) IsValid() bool {
	switch c {
	case CategoryElectrician, CategoryPlumber, CategoryACTechnician,
		CategoryCarpenter, CategoryPainter, CategoryCleaner, CategoryHandyman:
		return true
	default:
		return false
	}
}

// ProviderProfile holds the data specific to the "provider" role. Exactly one
// profile exists per provider-role user.
type ProviderProfile struct {
	UserID       uuid.UUID       // Foreign key linking this profile to a core User entity (1:1).
	BusinessName string          // The provider's public business name.
	Category     ServiceCategory // The single trade this provider offers.
	Subcategory  string          // Optional finer-grained specialization, free text.
	Description  string          // Free-text description of the business.
	Location     string          // Service area, stored as an opaque location string.
	Contact      string          // Preferred contact, phone or other free text.
	Available    bool            // Whether the provider accepts new assignments. Defaults to false on every creation path.
	Rating       float64         // Aggregate rating, written by the rating pipeline, never recomputed here.
	ReviewCount  int             // Number of reviews behind Rating.
	Version      int             // Optimistic concurrency token; updates must compare-and-swap on it.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
