package impl

import (
	"context"
	"log/slog"

	deliverycontext "fixly/internal/delivery/context"
	"fixly/internal/domain/entity"
	domainerrors "fixly/internal/domain/errors"
	"fixly/internal/domain/repository"
	"fixly/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ticketService implements the TicketUsecase interface.
type ticketService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	ticketRepo repository.TicketRepository
	logger     *slog.Logger
}

// TicketServiceParams holds dependencies for TicketService, injected by Fx.
type TicketServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	UserRepo   repository.UserRepository
	TicketRepo repository.TicketRepository
	Logger     *slog.Logger
}

// NewTicketService is the constructor for ticketService.
func NewTicketService(params TicketServiceParams) usecase.TicketUsecase {
	return &ticketService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		ticketRepo: params.TicketRepo,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *ticketService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateTicket files a new ticket for the calling user. Every ticket starts
// open; the filer cannot choose a status.
func (srv *ticketService) CreateTicket(ctx context.Context, input *usecase.CreateTicketInput) (*entity.SupportTicket, error) {
	srv.log(ctx).Info("Creating support ticket", slog.Any("userID", input.UserID), slog.Any("category", input.Category))

	category := input.Category
	if category == "" {
		category = entity.TicketCategoryGeneral
	}
	if !category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown ticket category")
	}

	priority := input.Priority
	if priority == "" {
		priority = entity.TicketPriorityMedium
	}
	if !priority.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown ticket priority")
	}

	ticket := &entity.SupportTicket{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    category,
		Priority:    priority,
		Status:      entity.TicketOpen,
	}

	if err := srv.ticketRepo.Create(ctx, ticket); err != nil {
		srv.log(ctx).Error("Failed to create support ticket", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create support ticket")
	}

	srv.log(ctx).Debug("Support ticket created", slog.Any("ticketID", ticket.ID))

	return ticket, nil
}

// ListUserTickets returns the caller's own tickets, newest first.
func (srv *ticketService) ListUserTickets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.SupportTicket, error) {
	tickets, err := srv.ticketRepo.ListByUser(ctx, userID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user tickets")
	}

	return tickets, nil
}

// ListTickets returns all tickets for the admin view, optionally filtered by status.
func (srv *ticketService) ListTickets(ctx context.Context, actorID uuid.UUID, status entity.TicketStatus, limit, offset int) ([]*entity.SupportTicket, error) {
	if err := requireApprovedAdmin(ctx, srv.userRepo, actorID); err != nil {
		return nil, err
	}

	if status != "" && !status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown ticket status")
	}

	tickets, err := srv.ticketRepo.List(ctx, status, normalizeLimit(limit), offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tickets")
	}

	return tickets, nil
}

// AdvanceTicket moves a ticket to a strictly later lifecycle status. Backward
// and repeated moves are rejected regardless of who asks.
func (srv *ticketService) AdvanceTicket(ctx context.Context, input *usecase.AdvanceTicketInput) (*entity.SupportTicket, error) {
	srv.log(ctx).Info("Advancing support ticket", slog.Any("ticketID", input.TicketID), slog.Any("status", input.Status), slog.Any("actorID", input.ActorID))

	if !input.Status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown ticket status")
	}

	var updated *entity.SupportTicket
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		ticketRepo := repoFactory.TicketRepo()

		if err := requireApprovedAdmin(ctx, userRepo, input.ActorID); err != nil {
			return err
		}

		ticket, err := ticketRepo.FindByID(ctx, input.TicketID)
		if err != nil {
			if errors.Is(err, repository.ErrTicketNotFound) {
				return errors.Wrap(domainerrors.ErrTicketNotFound, "ticket not found")
			}

			return errors.Wrap(err, "failed to load ticket")
		}

		if !ticket.Status.CanAdvanceTo(input.Status) {
			return errors.Wrapf(domainerrors.ErrInvalidTransition, "cannot move ticket from %s to %s", ticket.Status, input.Status)
		}

		if err := ticketRepo.UpdateStatus(ctx, input.TicketID, ticket.Status, input.Status); err != nil {
			if errors.Is(err, repository.ErrTicketStatusConflict) {
				return errors.Wrap(domainerrors.ErrInvalidTransition, "ticket status changed concurrently")
			}

			return errors.Wrap(err, "failed to update ticket status")
		}

		ticket.Status = input.Status
		updated = ticket

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to advance ticket", slog.Any("ticketID", input.TicketID), slog.Any("error", err))

		return nil, err
	}

	return updated, nil
}
