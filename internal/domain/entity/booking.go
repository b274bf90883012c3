package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking request.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingAssigned   BookingStatus = "assigned"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// String returns the string representation of the BookingStatus.
func (s BookingStatus) String() string {
	return string(s)
}

// IsValid checks if the BookingStatus is a valid value.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingAssigned, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	default:
		return false
	}
}

// bookingTransitions is the full forward-only transition table. Status moves
// along pending → assigned → in_progress → completed, with cancellation
// allowed from pending or assigned. Terminal states have no successors.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingAssigned, BookingCancelled},
	BookingAssigned:   {BookingInProgress, BookingCompleted, BookingCancelled},
	BookingInProgress: {BookingCompleted},
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step. This table is authoritative regardless of caller; the UI showing the
// right buttons is not the enforcement layer.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Urgency is the customer-declared priority on a booking request.
// Informational only; no SLA engine consumes it.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// IsValid checks if the Urgency is a valid value.
func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyUrgent:
		return true
	default:
		return false
	}
}

// TimeSlot is the customer's preferred part of day for the visit.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// IsValid checks if the TimeSlot is a valid value.
func (t TimeSlot) IsValid() bool {
	switch t {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	default:
		return false
	}
}

// BookingRequest is a customer's structured ask for a service. It enters the
// system unassigned and stays in the admin's triage queue until paired with a
// provider.
type BookingRequest struct {
	ID             uuid.UUID       // The unique identifier for this request.
	CustomerID     uuid.UUID       // The customer who submitted the request.
	Category       ServiceCategory // Requested trade.
	ServiceName    string          // Free-text name of the requested service.
	Description    string          // Free-text description of the problem.
	CustomerName   string          // Contact fields captured on the form; stored verbatim.
	CustomerPhone  string
	CustomerEmail  string
	ServiceAddress string
	PreferredDate  *time.Time    // Optional preferred date.
	TimeSlot       TimeSlot      // Preferred part of day; defaults to morning when unset.
	Urgency        Urgency       // Customer-declared priority; defaults to normal when unset.
	EstimatedPrice float64       // Customer-side estimate, informational.
	Status         BookingStatus // Lifecycle state, guarded by the transition table.
	Version        int           // Optimistic concurrency token for status writes.
	CreatedAt      time.Time
}

// ApplyDefaults fills the enum fields the form may leave unset.
func (b *BookingRequest) ApplyDefaults() {
	if b.Urgency == "" {
		b.Urgency = UrgencyNormal
	}
	if b.TimeSlot == "" {
		b.TimeSlot = SlotMorning
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
}

// AssignmentType records how a booking was paired with a provider.
// Only manual assignment is implemented.
type AssignmentType string

const (
	// AssignmentManual is an admin's explicit "assign technician" action.
	AssignmentManual AssignmentType = "manual"
	// AssignmentAutomatic is reserved; no flow produces it.
	AssignmentAutomatic AssignmentType = "automatic"
)

// BookingAssignment links a BookingRequest to exactly one ProviderProfile.
// Creating one is atomic with flipping the booking's status to assigned.
type BookingAssignment struct {
	ID         uuid.UUID      // The unique identifier for this assignment record.
	BookingID  uuid.UUID      // The booking being assigned. One active assignment per booking.
	ProviderID uuid.UUID      // The provider profile's owning user id.
	AssignedBy uuid.UUID      // The admin who performed the assignment.
	Type       AssignmentType // Always AssignmentManual in implemented flows.
	// ProviderAccepted is persisted but never set true by any implemented
	// flow; whether it should gate the job handoff is an open product
	// question, so it is carried as-is rather than completed or removed.
	ProviderAccepted bool
	CreatedAt        time.Time
}
