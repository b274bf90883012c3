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

// bookingRepository implements the domain.BookingRepository interface using GORM.
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// Create persists a new booking request.
func (repo *bookingRepository) Create(ctx context.Context, booking *entity.BookingRequest) error {
	bookingM := fromBookingDomain(booking)

	if err := repo.db.WithContext(ctx).Create(bookingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid customer reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required booking information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking request")
	}

	booking.ID = bookingM.ID
	booking.CreatedAt = bookingM.CreatedAt

	return nil
}

// FindByID retrieves a single booking request.
func (repo *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingRequest, error) {
	var bookingM model.BookingRequestModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&bookingM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking by id")
	}

	return toBookingDomain(&bookingM), nil
}

// ListByCustomer returns a customer's booking history, newest first.
func (repo *bookingRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error) {
	var bookingModels []*model.BookingRequestModel
	err := repo.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookingModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookings by customer")
	}

	return toBookingDomainList(bookingModels), nil
}

// ListByStatus returns bookings in a given state, oldest first, for admin triage.
func (repo *bookingRepository) ListByStatus(ctx context.Context, status entity.BookingStatus, limit, offset int) ([]*entity.BookingRequest, error) {
	var bookingModels []*model.BookingRequestModel
	err := repo.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&bookingModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookings by status")
	}

	return toBookingDomainList(bookingModels), nil
}

// ListByProvider returns bookings joined through the provider's assignments, newest first.
func (repo *bookingRepository) ListByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error) {
	var bookingModels []*model.BookingRequestModel
	err := repo.db.WithContext(ctx).
		Joins("JOIN booking_assignments ON booking_assignments.booking_id = booking_requests.id").
		Where("booking_assignments.provider_id = ?", providerID).
		Order("booking_requests.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookingModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookings by provider")
	}

	return toBookingDomainList(bookingModels), nil
}

// UpdateStatus transitions a booking from exactly the given status to a new
// one as a compare-and-set. The status guard in the WHERE clause makes
// concurrent double-transitions impossible; whoever hits zero rows lost.
func (repo *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookingRequestModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(map[string]any{
			"status":  to.String(),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update booking status")
	}
	if result.RowsAffected == 0 {
		// Distinguish a lost race from a missing booking.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.BookingRequestModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check booking existence")
		}
		if count == 0 {
			return repository.ErrBookingNotFound
		}

		return repository.ErrStatusConflict
	}

	return nil
}

// --- Mapper Functions ---

// toBookingDomain converts a GORM BookingRequestModel to a domain BookingRequest entity.
func toBookingDomain(data *model.BookingRequestModel) *entity.BookingRequest {
	if data == nil {
		return nil
	}

	return &entity.BookingRequest{
		ID:             data.ID,
		CustomerID:     data.CustomerID,
		Category:       entity.ServiceCategory(data.Category),
		ServiceName:    data.ServiceName,
		Description:    data.Description,
		CustomerName:   data.CustomerName,
		CustomerPhone:  data.CustomerPhone,
		CustomerEmail:  data.CustomerEmail,
		ServiceAddress: data.ServiceAddress,
		PreferredDate:  data.PreferredDate,
		TimeSlot:       entity.TimeSlot(data.TimeSlot),
		Urgency:        entity.Urgency(data.Urgency),
		EstimatedPrice: data.EstimatedPrice,
		Status:         entity.BookingStatus(data.Status),
		Version:        data.Version,
		CreatedAt:      data.CreatedAt,
	}
}

func toBookingDomainList(data []*model.BookingRequestModel) []*entity.BookingRequest {
	bookings := make([]*entity.BookingRequest, 0, len(data))
	for _, bookingM := range data {
		bookings = append(bookings, toBookingDomain(bookingM))
	}

	return bookings
}

// fromBookingDomain converts a domain BookingRequest entity to a GORM BookingRequestModel.
func fromBookingDomain(data *entity.BookingRequest) *model.BookingRequestModel {
	if data == nil {
		return nil
	}

	return &model.BookingRequestModel{
		ID:             data.ID,
		CustomerID:     data.CustomerID,
		Category:       data.Category.String(),
		ServiceName:    data.ServiceName,
		Description:    data.Description,
		CustomerName:   data.CustomerName,
		CustomerPhone:  data.CustomerPhone,
		CustomerEmail:  data.CustomerEmail,
		ServiceAddress: data.ServiceAddress,
		PreferredDate:  data.PreferredDate,
		TimeSlot:       string(data.TimeSlot),
		Urgency:        string(data.Urgency),
		EstimatedPrice: data.EstimatedPrice,
		Status:         data.Status.String(),
		Version:        data.Version,
	}
}
