package repository

import (
	"context"
	"errors"

	"fixly/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookingNotFound is returned when no booking request matches the lookup.
var ErrBookingNotFound = errors.New("booking request not found")

// ErrStatusConflict is returned when a guarded status update finds the
// booking no longer in the expected state. The caller lost the race.
var ErrStatusConflict = errors.New("booking status changed concurrently")

// BookingRepository defines the operations for booking request persistence.
type BookingRepository interface {
	// Create persists a new booking request.
	Create(ctx context.Context, booking *entity.BookingRequest) error

	// FindByID retrieves a single booking request.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingRequest, error)

	// ListByCustomer returns a customer's booking history, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error)

	// ListByStatus returns bookings in a given state, oldest first, for admin triage.
	ListByStatus(ctx context.Context, status entity.BookingStatus, limit, offset int) ([]*entity.BookingRequest, error)

	// ListByProvider returns bookings joined through the provider's assignments, newest first.
	ListByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error)

	// UpdateStatus transitions a booking from exactly the given status to a
	// new one, as a compare-and-set. Returns ErrStatusConflict when the
	// booking is no longer in the from state.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error
}

// ErrAssignmentNotFound is returned when no assignment matches the lookup.
var ErrAssignmentNotFound = errors.New("booking assignment not found")

// AssignmentRepository defines the operations for booking assignment persistence.
type AssignmentRepository interface {
	// Create persists a new assignment record.
	Create(ctx context.Context, assignment *entity.BookingAssignment) error

	// FindByBookingID retrieves the assignment for a booking, if any.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.BookingAssignment, error)

	// FindByBookingAndProvider retrieves the assignment pairing a booking with
	// a specific provider. Used to verify job ownership.
	FindByBookingAndProvider(ctx context.Context, bookingID, providerID uuid.UUID) (*entity.BookingAssignment, error)
}
