package impl

import (
	"context"
	"log/slog"

	deliverycontext "fixly/internal/delivery/context"
	"fixly/internal/domain/entity"
	domainerrors "fixly/internal/domain/errors"
	"fixly/internal/domain/repository"
	"fixly/internal/domain/service"
	"fixly/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// providerService implements the ProviderUsecase interface.
type providerService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	providerRepo repository.ProviderRepository
	hasher       service.PasswordHasher
	logger       *slog.Logger
}

// ProviderServiceParams holds dependencies for ProviderService, injected by Fx.
type ProviderServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	ProviderRepo repository.ProviderRepository
	Hasher       service.PasswordHasher
	Logger       *slog.Logger
}

// NewProviderService is the constructor for providerService.
func NewProviderService(params ProviderServiceParams) usecase.ProviderUsecase {
	return &providerService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		providerRepo: params.ProviderRepo,
		hasher:       params.Hasher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *providerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterProvider creates the user, credential and business profile in a
// single transaction. A failure at any step leaves no orphaned rows behind.
// The account starts pending and the profile starts unavailable.
func (srv *providerService) RegisterProvider(ctx context.Context, input *usecase.RegisterProviderInput) (*usecase.SignUpOutput, error) {
	srv.log(ctx).Info("Starting provider registration", slog.String("email", input.Email))

	if !input.Category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown service category")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during provider registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during provider registration")
	}

	newUser := &entity.User{
		Name:   input.Name,
		Email:  input.Email,
		Role:   entity.RoleProvider,
		Status: entity.ApprovalPending,
		ProviderProfile: &entity.ProviderProfile{
			BusinessName: input.BusinessName,
			Category:     input.Category,
			Subcategory:  input.Subcategory,
			Description:  input.Description,
			Location:     input.Location,
			Contact:      input.Contact,
			Available:    false,
		},
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		_, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
		}

		// Creating the user also inserts the associated profile row.
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create provider user")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create authentication for provider")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute provider registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Provider registration completed", slog.Any("userID", newUser.ID))

	return &usecase.SignUpOutput{User: newUser}, nil
}

// GetProfile returns the provider's own profile.
func (srv *providerService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error) {
	profile, err := srv.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProviderNotFound, "provider profile not found")
		}

		return nil, errors.Wrap(err, "failed to load provider profile")
	}

	return profile, nil
}

// UpdateProfile saves profile edits. The version the client read rides along
// and the write only lands if the row has not moved since; a concurrent edit
// surfaces as a conflict instead of silently overwriting.
func (srv *providerService) UpdateProfile(ctx context.Context, input *usecase.UpdateProviderProfileInput) (*entity.ProviderProfile, error) {
	srv.log(ctx).Debug("Updating provider profile", slog.Any("userID", input.UserID))

	profile, err := srv.providerRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProviderNotFound, "provider profile not found")
		}

		return nil, errors.Wrap(err, "failed to load provider profile")
	}

	profile.BusinessName = input.BusinessName
	profile.Subcategory = input.Subcategory
	profile.Description = input.Description
	profile.Location = input.Location
	profile.Contact = input.Contact
	profile.Version = input.Version

	if err := srv.providerRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrStaleVersion) {
			return nil, errors.Wrap(domainerrors.ErrConflict, "profile was modified concurrently")
		}

		return nil, errors.Wrap(err, "failed to update provider profile")
	}

	return profile, nil
}

// SetAvailability flips whether the provider accepts new assignments.
func (srv *providerService) SetAvailability(ctx context.Context, userID uuid.UUID, available bool) (*entity.ProviderProfile, error) {
	srv.log(ctx).Debug("Setting provider availability", slog.Any("userID", userID), slog.Bool("available", available))

	profile, err := srv.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProviderNotFound, "provider profile not found")
		}

		return nil, errors.Wrap(err, "failed to load provider profile")
	}

	profile.Available = available

	if err := srv.providerRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrStaleVersion) {
			return nil, errors.Wrap(domainerrors.ErrConflict, "profile was modified concurrently")
		}

		return nil, errors.Wrap(err, "failed to update provider availability")
	}

	return profile, nil
}
