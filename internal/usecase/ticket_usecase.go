package usecase

import (
	"context"

	"fixly/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateTicketInput defines the data required to file a support ticket.
type CreateTicketInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Category    entity.TicketCategory
	Priority    entity.TicketPriority
}

// AdvanceTicketInput defines an admin's move of a ticket to a later status.
type AdvanceTicketInput struct {
	ActorID  uuid.UUID
	TicketID uuid.UUID
	Status   entity.TicketStatus
}

// TicketUsecase defines the interface for support ticket business operations.
type TicketUsecase interface {
	// CreateTicket files a new ticket for the calling user. Tickets open as open.
	CreateTicket(ctx context.Context, input *CreateTicketInput) (*entity.SupportTicket, error)

	// ListUserTickets returns the caller's own tickets, newest first.
	ListUserTickets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.SupportTicket, error)

	// ListTickets returns all tickets, optionally filtered by status. Admin only.
	ListTickets(ctx context.Context, actorID uuid.UUID, status entity.TicketStatus, limit, offset int) ([]*entity.SupportTicket, error)

	// AdvanceTicket moves a ticket to a strictly later lifecycle status. Admin only.
	AdvanceTicket(ctx context.Context, input *AdvanceTicketInput) (*entity.SupportTicket, error)
}
