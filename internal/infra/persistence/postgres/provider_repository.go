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

// providerRepository implements the domain.ProviderRepository interface using GORM.
type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository is the constructor for providerRepository.
func NewProviderRepository(db *gorm.DB) repository.ProviderRepository {
	return &providerRepository{db: db}
}

// Create persists a new provider profile.
func (repo *providerRepository) Create(ctx context.Context, profile *entity.ProviderProfile) error {
	profileM := fromProviderProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrProviderAlreadyExists.WrapMessage("profile already exists for user")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid user reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required profile information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create provider profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByUserID retrieves the profile owned by the given user.
func (repo *providerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error) {
	var profileM model.ProviderProfileModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProviderNotFound
		}

		return nil, errors.Wrap(err, "failed to find provider profile")
	}

	return toProviderProfileDomain(&profileM), nil
}

// Update saves profile edits with compare-and-set on the version column. The
// WHERE clause pins the version the caller read; zero rows affected means
// another writer got there first.
func (repo *providerRepository) Update(ctx context.Context, profile *entity.ProviderProfile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProviderProfileModel{}).
		Where("user_id = ? AND version = ?", profile.UserID, profile.Version).
		Updates(map[string]any{
			"business_name": profile.BusinessName,
			"category":      profile.Category.String(),
			"subcategory":   profile.Subcategory,
			"description":   profile.Description,
			"location":      profile.Location,
			"contact":       profile.Contact,
			"available":     profile.Available,
			"version":       profile.Version + 1,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update provider profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaleVersion
	}

	profile.Version++

	return nil
}

// ListAvailable returns assignment candidates: profiles with availability on
// whose owning user is approved, best rated first.
func (repo *providerRepository) ListAvailable(ctx context.Context, category entity.ServiceCategory, limit, offset int) ([]*entity.ProviderProfile, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ProviderProfileModel{}).
		Joins("JOIN users ON users.id = provider_profiles.user_id").
		Where("provider_profiles.available = ?", true).
		Where("users.status = ?", entity.ApprovalApproved.String())

	if category != "" {
		query = query.Where("provider_profiles.category = ?", category.String())
	}

	var profileModels []*model.ProviderProfileModel
	err := query.
		Order("provider_profiles.rating DESC, provider_profiles.review_count DESC").
		Limit(limit).
		Offset(offset).
		Find(&profileModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list available providers")
	}

	profiles := make([]*entity.ProviderProfile, 0, len(profileModels))
	for _, profileM := range profileModels {
		profiles = append(profiles, toProviderProfileDomain(profileM))
	}

	return profiles, nil
}
