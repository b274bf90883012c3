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

// assignmentRepository implements the domain.AssignmentRepository interface using GORM.
type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository is the constructor for assignmentRepository.
func NewAssignmentRepository(db *gorm.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Create persists a new assignment record. The unique index on booking_id
// rejects a second assignment for the same booking at the storage level.
func (repo *assignmentRepository) Create(ctx context.Context, assignment *entity.BookingAssignment) error {
	assignmentM := fromAssignmentDomain(assignment)

	if err := repo.db.WithContext(ctx).Create(assignmentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrBookingAlreadyAssigned.WrapMessage("booking already has an assignment")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBookingNotFound.WrapMessage("invalid booking or provider reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking assignment")
	}

	assignment.ID = assignmentM.ID
	assignment.CreatedAt = assignmentM.CreatedAt

	return nil
}

// FindByBookingID retrieves the assignment for a booking, if any.
func (repo *assignmentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.BookingAssignment, error) {
	var assignmentM model.BookingAssignmentModel
	err := repo.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&assignmentM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAssignmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find assignment by booking")
	}

	return toAssignmentDomain(&assignmentM), nil
}

// FindByBookingAndProvider retrieves the assignment pairing a booking with a
// specific provider. Used to verify job ownership before status changes.
func (repo *assignmentRepository) FindByBookingAndProvider(ctx context.Context, bookingID, providerID uuid.UUID) (*entity.BookingAssignment, error) {
	var assignmentM model.BookingAssignmentModel
	err := repo.db.WithContext(ctx).
		Where("booking_id = ? AND provider_id = ?", bookingID, providerID).
		First(&assignmentM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAssignmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find assignment by booking and provider")
	}

	return toAssignmentDomain(&assignmentM), nil
}

// --- Mapper Functions ---

// toAssignmentDomain converts a GORM BookingAssignmentModel to a domain BookingAssignment entity.
func toAssignmentDomain(data *model.BookingAssignmentModel) *entity.BookingAssignment {
	if data == nil {
		return nil
	}

	return &entity.BookingAssignment{
		ID:               data.ID,
		BookingID:        data.BookingID,
		ProviderID:       data.ProviderID,
		AssignedBy:       data.AssignedBy,
		Type:             entity.AssignmentType(data.Type),
		ProviderAccepted: data.ProviderAccepted,
		CreatedAt:        data.CreatedAt,
	}
}

// fromAssignmentDomain converts a domain BookingAssignment entity to a GORM BookingAssignmentModel.
func fromAssignmentDomain(data *entity.BookingAssignment) *model.BookingAssignmentModel {
	if data == nil {
		return nil
	}

	return &model.BookingAssignmentModel{
		ID:               data.ID,
		BookingID:        data.BookingID,
		ProviderID:       data.ProviderID,
		AssignedBy:       data.AssignedBy,
		Type:             string(data.Type),
		ProviderAccepted: data.ProviderAccepted,
	}
}
