package repository

import (
	"context"
	"errors"

	"fixly/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTicketNotFound is returned when no support ticket matches the lookup.
var ErrTicketNotFound = errors.New("support ticket not found")

// ErrTicketStatusConflict is returned when a guarded status update finds the
// ticket already moved by a concurrent writer.
var ErrTicketStatusConflict = errors.New("ticket status changed concurrently")

// TicketRepository defines the operations for support ticket persistence.
type TicketRepository interface {
	// Create persists a new support ticket.
	Create(ctx context.Context, ticket *entity.SupportTicket) error

	// FindByID retrieves a single support ticket.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SupportTicket, error)

	// ListByUser returns a user's own tickets, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.SupportTicket, error)

	// List returns tickets for the admin view, optionally filtered by status,
	// newest first. An empty status means no filter.
	List(ctx context.Context, status entity.TicketStatus, limit, offset int) ([]*entity.SupportTicket, error)

	// UpdateStatus advances a ticket from exactly the given status to a new
	// one, as a compare-and-set. Returns ErrTicketStatusConflict when the
	// ticket's current status no longer matches from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TicketStatus) error
}
