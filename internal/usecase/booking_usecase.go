package usecase

import (
	"context"
	"time"

	"fixly/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SubmitBookingInput defines the data a customer submits to request a service.
type SubmitBookingInput struct {
	CustomerID     uuid.UUID
	Category       entity.ServiceCategory
	ServiceName    string
	Description    string
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	ServiceAddress string
	PreferredDate  *time.Time
	TimeSlot       entity.TimeSlot
	Urgency        entity.Urgency
	EstimatedPrice float64
}

// AssignProviderInput defines an admin's manual pairing of a booking with a provider.
type AssignProviderInput struct {
	ActorID    uuid.UUID
	BookingID  uuid.UUID
	ProviderID uuid.UUID
}

// UpdateBookingStatusInput defines a provider's move of an assigned job
// through its lifecycle.
type UpdateBookingStatusInput struct {
	ActorID   uuid.UUID
	BookingID uuid.UUID
	Status    entity.BookingStatus
}

// BookingUsecase defines the interface for booking-related business operations.
type BookingUsecase interface {
	// SubmitBooking creates a new pending booking request for a customer.
	SubmitBooking(ctx context.Context, input *SubmitBookingInput) (*entity.BookingRequest, error)

	// ListCustomerBookings returns the customer's own requests, newest first.
	ListCustomerBookings(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error)

	// ListOpenBookings returns unassigned requests for admin triage, oldest first. Admin only.
	ListOpenBookings(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error)

	// ListAvailableProviders returns assignment candidates for a category,
	// best rated first. Admin only.
	ListAvailableProviders(ctx context.Context, actorID uuid.UUID, category entity.ServiceCategory, limit, offset int) ([]*entity.ProviderProfile, error)

	// AssignProvider pairs a pending booking with a provider. The assignment
	// row and the status flip commit in one transaction. Admin only.
	AssignProvider(ctx context.Context, input *AssignProviderInput) (*entity.BookingAssignment, error)

	// UpdateBookingStatus moves an assigned job along its lifecycle. Only the
	// assigned provider may call it.
	UpdateBookingStatus(ctx context.Context, input *UpdateBookingStatusInput) (*entity.BookingRequest, error)

	// ListProviderJobs returns the bookings assigned to a provider, newest first.
	ListProviderJobs(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error)
}
