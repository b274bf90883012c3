package entity

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus is the lifecycle state of a support ticket. It only ever
// advances forward along open → in_progress → resolved → closed.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// String returns the string representation of the TicketStatus.
func (s TicketStatus) String() string {
	return string(s)
}

// IsValid checks if the TicketStatus is a valid value.
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	default:
		return false
	}
}

// ticketRank orders statuses along the monotonic progression.
var ticketRank = map[TicketStatus]int{
	TicketOpen:       0,
	TicketInProgress: 1,
	TicketResolved:   2,
	TicketClosed:     3,
}

// CanAdvanceTo reports whether moving from s to next is a forward step.
// Backward moves and no-op moves are rejected.
func (s TicketStatus) CanAdvanceTo(next TicketStatus) bool {
	from, ok := ticketRank[s]
	if !ok {
		return false
	}
	to, ok := ticketRank[next]
	if !ok {
		return false
	}

	return to > from
}

// TicketCategory classifies what a support ticket is about.
type TicketCategory string

const (
	TicketCategoryGeneral TicketCategory = "general"
	TicketCategoryBooking TicketCategory = "booking"
	TicketCategoryPayment TicketCategory = "payment"
	TicketCategoryAccount TicketCategory = "account"
	TicketCategoryOther   TicketCategory = "other"
)

// IsValid checks if the TicketCategory is a valid value.
func (c TicketCategory) IsValid() bool {
	switch c {
	case TicketCategoryGeneral, TicketCategoryBooking, TicketCategoryPayment,
		TicketCategoryAccount, TicketCategoryOther:
		return true
	default:
		return false
	}
}

// TicketPriority is the filer's declared priority.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// IsValid checks if the TicketPriority is a valid value.
func (p TicketPriority) IsValid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	default:
		return false
	}
}

// SupportTicket is an independent complaint/request record tied to a user.
// Its lifecycle is unrelated to bookings; only an admin advances it.
type SupportTicket struct {
	ID          uuid.UUID
	UserID      uuid.UUID // The user who filed the ticket.
	Title       string
	Description string
	Category    TicketCategory
	Priority    TicketPriority
	Status      TicketStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
