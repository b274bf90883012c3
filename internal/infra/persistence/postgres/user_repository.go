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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading the provider profile.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("ProviderProfile").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address, preloading the provider profile.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("ProviderProfile").
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity, including its provider profile when present.
// GORM's Create with associations inserts into users and provider_profiles together.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid foreign key reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	if user.ProviderProfile != nil && userM.ProviderProfile != nil {
		user.ProviderProfile.UserID = userM.ProviderProfile.UserID
		user.ProviderProfile.CreatedAt = userM.ProviderProfile.CreatedAt
		user.ProviderProfile.UpdatedAt = userM.ProviderProfile.UpdatedAt
	}

	return nil
}

// UpdateStatus changes a user's approval status.
func (repo *userRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// ListByStatus retrieves users with a given approval status, oldest sign-up first.
func (repo *userRepository) ListByStatus(ctx context.Context, status entity.ApprovalStatus, limit, offset int) ([]*entity.User, error) {
	var userModels []*model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("ProviderProfile").
		Where("status = ?", status.String()).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&userModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users by status")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:              data.ID,
		Email:           data.Email,
		Name:            data.Name,
		Role:            entity.Role(data.Role),
		Status:          entity.ApprovalStatus(data.Status),
		ProviderProfile: toProviderProfileDomain(data.ProviderProfile),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:              data.ID,
		Email:           data.Email,
		Name:            data.Name,
		Role:            data.Role.String(),
		Status:          data.Status.String(),
		ProviderProfile: fromProviderProfileDomain(data.ProviderProfile),
	}
}

// toProviderProfileDomain converts a GORM ProviderProfileModel to a domain ProviderProfile entity.
func toProviderProfileDomain(data *model.ProviderProfileModel) *entity.ProviderProfile {
	if data == nil {
		return nil
	}

	return &entity.ProviderProfile{
		UserID:       data.UserID,
		BusinessName: data.BusinessName,
		Category:     entity.ServiceCategory(data.Category),
		Subcategory:  data.Subcategory,
		Description:  data.Description,
		Location:     data.Location,
		Contact:      data.Contact,
		Available:    data.Available,
		Rating:       data.Rating,
		ReviewCount:  data.ReviewCount,
		Version:      data.Version,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromProviderProfileDomain converts a domain ProviderProfile entity to a GORM ProviderProfileModel.
func fromProviderProfileDomain(data *entity.ProviderProfile) *model.ProviderProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProviderProfileModel{
		UserID:       data.UserID,
		BusinessName: data.BusinessName,
		Category:     data.Category.String(),
		Subcategory:  data.Subcategory,
		Description:  data.Description,
		Location:     data.Location,
		Contact:      data.Contact,
		Available:    data.Available,
		Rating:       data.Rating,
		ReviewCount:  data.ReviewCount,
		Version:      data.Version,
	}
}
