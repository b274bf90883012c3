// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
// A user carries exactly one role, fixed at sign-up.
type Role string

const (
	// RoleCustomer indicates a regular customer who submits booking requests.
	RoleCustomer Role = "customer"
	// RoleProvider indicates a service provider who works assigned bookings.
	RoleProvider Role = "provider"
	// RoleAdmin indicates an administrator who approves users and assigns jobs.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	default:
		return false
	}
}

// ApprovalStatus is the gate on whether a freshly signed-up user may use
// role-specific screens. Only an approved admin may change it.
type ApprovalStatus string

const (
	// ApprovalPending is the initial status of every normal sign-up.
	ApprovalPending ApprovalStatus = "pending"
	// ApprovalApproved unlocks the role-gated surface.
	ApprovalApproved ApprovalStatus = "approved"
	// ApprovalRejected permanently locks the account out.
	ApprovalRejected ApprovalStatus = "rejected"
)

// String returns the string representation of the ApprovalStatus.
func (s ApprovalStatus) String() string {
	return string(s)
}

// IsValid checks if the ApprovalStatus is a valid value.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	default:
		return false
	}
}
