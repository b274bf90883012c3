// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"fixly/config"
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

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	authRepo          repository.AuthRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	authConfig        *config.AuthConfig
	maxActiveSessions int
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	AuthRepo         repository.AuthRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	maxActiveSessions := 0
	if params.Config != nil && params.Config.Auth != nil {
		maxActiveSessions = params.Config.Auth.MaxActiveSessions
	}

	var authConfig *config.AuthConfig
	if params.Config != nil {
		authConfig = params.Config.Auth
	}

	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		authRepo:          params.AuthRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		authConfig:        authConfig,
		maxActiveSessions: maxActiveSessions,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp orchestrates the complete account registration process for customers
// and admins. Providers register through ProviderUsecase.RegisterProvider, which
// additionally creates the business profile.
func (srv *userService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*usecase.SignUpOutput, error) {
	srv.log(ctx).Info("Starting sign up", slog.Any("role", input.Role), slog.String("email", input.Email))

	if !input.Role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown role")
	}
	if input.Role == entity.RoleProvider {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "provider accounts register with a business profile")
	}

	status := entity.ApprovalPending
	if input.Role == entity.RoleAdmin {
		// The admin allow-list is the only path to an admin account. Listed
		// addresses skip the review queue; everyone else is turned away.
		if !srv.authConfig.IsAdminAllowed(input.Email) {
			srv.log(ctx).Warn("Admin sign up outside allow-list", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrAdminNotAllowed, "email not on admin allow-list")
		}
		status = entity.ApprovalApproved
	}

	newUser := &entity.User{
		Name:   input.Name,
		Email:  input.Email,
		Role:   input.Role,
		Status: status,
	}

	if err := srv.createAccount(ctx, newUser, input.Password); err != nil {
		srv.log(ctx).Error("Failed to execute sign up transaction", slog.Any("role", input.Role), slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Sign up completed", slog.Any("role", input.Role), slog.Any("userID", newUser.ID))

	return &usecase.SignUpOutput{User: newUser}, nil
}

// createAccount validates the password, then writes the user row and its
// credential row in a single transaction so no half-created account can
// survive a failure between the two inserts.
func (srv *userService) createAccount(ctx context.Context, newUser *entity.User, password string) error {
	if err := srv.hasher.ValidatePasswordStrength(password); err != nil {
		srv.log(ctx).Warn("Password validation failed during sign up", slog.String("email", newUser.Email), slog.Any("error", err))

		return err
	}

	hashedPassword, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during sign up", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during sign up")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		_, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, newUser.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during sign up")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: newUser.Email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create authentication during sign up")
		}

		return nil
	})
}

// SignIn orchestrates the login process. The role and approval gates run
// before any token is issued; a mismatched portal or an unapproved account
// never receives tokens.
func (srv *userService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SignInOutput, error) {
	srv.log(ctx).Debug("Starting sign in", slog.String("email", input.Email), slog.Any("role", input.Role))

	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			srv.log(ctx).Warn("Sign in failed", slog.String("email", input.Email), slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign in failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Sign in failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign in failed")
	}

	loggedInUser, err := srv.userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user during sign in")
	}

	if input.Role != "" && input.Role != loggedInUser.Role {
		srv.log(ctx).Warn("Sign in role mismatch", slog.String("email", input.Email), slog.Any("requested", input.Role), slog.Any("actual", loggedInUser.Role))

		return nil, errors.Wrap(domainerrors.ErrRoleMismatch, "account role does not match requested portal")
	}

	if !loggedInUser.IsApproved() {
		srv.log(ctx).Warn("Sign in blocked by approval status", slog.Any("userID", loggedInUser.ID), slog.Any("status", loggedInUser.Status))

		return nil, errors.Wrap(domainerrors.ErrNotApproved, "account has not been approved")
	}

	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(loggedInUser.ID, loggedInUser.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.persistRefreshToken(ctx, loggedInUser.ID, refreshTokenString); err != nil {
		srv.log(ctx).Warn("Sign in failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User signed in successfully", slog.Any("userID", loggedInUser.ID))

	return &usecase.SignInOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         loggedInUser,
	}, nil
}

// persistRefreshToken stores the session row. When the session cap is
// enabled, the count and insert share one transaction so concurrent logins
// cannot slip past the limit.
func (srv *userService) persistRefreshToken(ctx context.Context, userID uuid.UUID, refreshTokenString string) error {
	newToken := &entity.RefreshToken{
		UserID:    userID,
		TokenHash: srv.tokenService.HashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}

	if srv.maxActiveSessions <= 0 {
		if err := srv.refreshTokenRepo.CreateRefreshToken(ctx, newToken); err != nil {
			return errors.Wrap(err, "failed to create refresh token during sign in")
		}

		return nil
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		active, err := refreshRepo.CountActiveSessionsByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count active sessions")
		}
		if active >= srv.maxActiveSessions {
			return errors.Wrap(domainerrors.ErrSessionLimitExceeded, "active session limit reached")
		}

		if err := refreshRepo.CreateRefreshToken(ctx, newToken); err != nil {
			return errors.Wrap(err, "failed to create refresh token during sign in")
		}

		return nil
	})
}

// Refresh issues a new access token from a valid refresh token. The refresh
// token itself is not rotated. Approval is re-read from the database, so a
// rejection applied after login cuts the account off at the next refresh.
func (srv *userService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Debug("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "invalid refresh token")
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)
	if _, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
			return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found or expired")
		}

		return nil, errors.Wrap(err, "failed to look up refresh token")
	}

	currentUser, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user during refresh")
	}
	if !currentUser.IsApproved() {
		srv.log(ctx).Warn("Refresh blocked by approval status", slog.Any("userID", currentUser.ID), slog.Any("status", currentUser.Status))

		return nil, errors.Wrap(domainerrors.ErrNotApproved, "account has not been approved")
	}

	newAccessToken, err := srv.tokenService.GenerateAccessToken(currentUser.ID, currentUser.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.RefreshOutput{AccessToken: newAccessToken}, nil
}

// Logout ends the session identified by the refresh token. Logging out an
// already-ended session succeeds quietly.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to delete refresh token during logout")
	}

	srv.log(ctx).Debug("User logged out")

	return nil
}

// LogoutAll ends every session belonging to the user.
func (srv *userService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := srv.refreshTokenRepo.DeleteRefreshTokensByUserID(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to delete refresh tokens during logout all")
	}

	srv.log(ctx).Debug("All sessions revoked", slog.Any("userID", userID))

	return nil
}

// Me returns the caller's fresh account state.
func (srv *userService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	currentUser, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "account not found")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return currentUser, nil
}

// ApproveUser moves an account to approved. Approving an already-approved
// account is a no-op rather than an error, so double-submitted reviews and
// concurrent admins converge on the same result.
func (srv *userService) ApproveUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	srv.log(ctx).Info("Approving user", slog.Any("actorID", actorID), slog.Any("targetID", targetID))

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := requireApprovedAdmin(ctx, userRepo, actorID); err != nil {
			return err
		}

		target, err := userRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "target user not found")
			}

			return errors.Wrap(err, "failed to load target user")
		}

		if target.Status == entity.ApprovalApproved {
			return nil
		}

		if err := userRepo.UpdateStatus(ctx, targetID, entity.ApprovalApproved); err != nil {
			return errors.Wrap(err, "failed to update approval status")
		}

		return nil
	})
}

// RejectUser moves an account to rejected and revokes its sessions in the
// same transaction, so a rejected user cannot keep refreshing on an old
// session.
func (srv *userService) RejectUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	srv.log(ctx).Info("Rejecting user", slog.Any("actorID", actorID), slog.Any("targetID", targetID))

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		if err := requireApprovedAdmin(ctx, userRepo, actorID); err != nil {
			return err
		}

		if _, err := userRepo.FindByID(ctx, targetID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "target user not found")
			}

			return errors.Wrap(err, "failed to load target user")
		}

		if err := userRepo.UpdateStatus(ctx, targetID, entity.ApprovalRejected); err != nil {
			return errors.Wrap(err, "failed to update approval status")
		}

		if err := refreshRepo.DeleteRefreshTokensByUserID(ctx, targetID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions of rejected user")
		}

		return nil
	})
}

// ListPendingUsers returns accounts awaiting review, oldest first.
func (srv *userService) ListPendingUsers(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]*entity.User, error) {
	if err := requireApprovedAdmin(ctx, srv.userRepo, actorID); err != nil {
		return nil, err
	}

	pending, err := srv.userRepo.ListByStatus(ctx, entity.ApprovalPending, normalizeLimit(limit), offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending users")
	}

	return pending, nil
}
