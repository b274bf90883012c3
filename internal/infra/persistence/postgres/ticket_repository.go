package postgres

import (
	"context"

	"fixly/internal/domain/entity"
	domainerrors "fixly/internal/domain/errors"
	"fixly/internal/domain/repository"
	"fixly/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ticketRepository implements the domain.TicketRepository interface using GORM.
type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository is the constructor for ticketRepository.
func NewTicketRepository(db *gorm.DB) repository.TicketRepository {
	return &ticketRepository{db: db}
}

// Create persists a new support ticket.
func (repo *ticketRepository) Create(ctx context.Context, ticket *entity.SupportTicket) error {
	ticketM := fromTicketDomain(ticket)

	if err := repo.db.WithContext(ctx).Create(ticketM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required ticket information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create support ticket")
	}

	ticket.ID = ticketM.ID
	ticket.CreatedAt = ticketM.CreatedAt
	ticket.UpdatedAt = ticketM.UpdatedAt

	return nil
}

// FindByID retrieves a single support ticket.
func (repo *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SupportTicket, error) {
	var ticketM model.SupportTicketModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ticketM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTicketNotFound
		}

		return nil, errors.Wrap(err, "failed to find ticket by id")
	}

	return toTicketDomain(&ticketM), nil
}

// ListByUser returns a user's own tickets, newest first.
func (repo *ticketRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.SupportTicket, error) {
	var ticketModels []*model.SupportTicketModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ticketModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tickets by user")
	}

	return toTicketDomainList(ticketModels), nil
}

// List returns tickets for the admin view, optionally filtered by status, newest first.
func (repo *ticketRepository) List(ctx context.Context, status entity.TicketStatus, limit, offset int) ([]*entity.SupportTicket, error) {
	query := repo.db.WithContext(ctx).Model(&model.SupportTicketModel{})
	if status != "" {
		query = query.Where("status = ?", status.String())
	}

	var ticketModels []*model.SupportTicketModel
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ticketModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tickets")
	}

	return toTicketDomainList(ticketModels), nil
}

// UpdateStatus advances a ticket from exactly the given status to a new one
// as a compare-and-set. The status guard in the WHERE clause keeps a
// concurrent advance from resurrecting an earlier status.
func (repo *ticketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TicketStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SupportTicketModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Update("status", to.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update ticket status")
	}
	if result.RowsAffected == 0 {
		// Distinguish a lost race from a missing ticket.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.SupportTicketModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check ticket existence")
		}
		if count == 0 {
			return repository.ErrTicketNotFound
		}

		return repository.ErrTicketStatusConflict
	}

	return nil
}

// --- Mapper Functions ---

// toTicketDomain converts a GORM SupportTicketModel to a domain SupportTicket entity.
func toTicketDomain(data *model.SupportTicketModel) *entity.SupportTicket {
	if data == nil {
		return nil
	}

	return &entity.SupportTicket{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Category:    entity.TicketCategory(data.Category),
		Priority:    entity.TicketPriority(data.Priority),
		Status:      entity.TicketStatus(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toTicketDomainList(data []*model.SupportTicketModel) []*entity.SupportTicket {
	tickets := make([]*entity.SupportTicket, 0, len(data))
	for _, ticketM := range data {
		tickets = append(tickets, toTicketDomain(ticketM))
	}

	return tickets
}

// fromTicketDomain converts a domain SupportTicket entity to a GORM SupportTicketModel.
func fromTicketDomain(data *entity.SupportTicket) *model.SupportTicketModel {
	if data == nil {
		return nil
	}

	return &model.SupportTicketModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Category:    string(data.Category),
		Priority:    string(data.Priority),
		Status:      data.Status.String(),
	}
}
