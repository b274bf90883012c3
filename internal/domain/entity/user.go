// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique "person" or "account".
// It contains the identity information shared across all roles plus the two gates
// every role-specific screen depends on: Role and Status.
type User struct {
	ID              uuid.UUID        // The unique identifier for the user.
	Email           string           // The user's primary contact email, used as the login identifier.
	Name            string           // The user's display name or real name.
	Role            Role             // The single role this account holds. Immutable after creation.
	Status          ApprovalStatus   // Admin-controlled approval gate for role-specific screens.
	ProviderProfile *ProviderProfile // The provider-specific profile. Nil unless Role is RoleProvider.
	CreatedAt       time.Time        // Timestamp of when this user account was created.
	UpdatedAt       time.Time        // Timestamp of the last modification to this user's data.
}

// IsApproved reports whether the account has passed admin review.
func (u *User) IsApproved() bool {
	return u.Status == ApprovalApproved
}

// CanActAsAdmin reports whether this account may perform admin-only
// operations. Both the role and the approval gate must hold; approval can be
// revoked between sessions, so callers re-check this against fresh data.
func (u *User) CanActAsAdmin() bool {
	return u.Role == RoleAdmin && u.IsApproved()
}
