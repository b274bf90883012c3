// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"fixly/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
// Role selects the account kind; provider sign-ups carry profile data
// through RegisterProviderInput instead.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// SignInInput defines the data required for a user to log in. Role is the
// portal the user is signing into; it must match the account's stored role.
type SignInInput struct {
	Email    string
	Password string
	Role     entity.Role
}

// RefreshInput carries the raw refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the raw refresh token of the session to end.
type LogoutInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// SignUpOutput returns the newly created user's basic information.
type SignUpOutput struct {
	User *entity.User
}

// SignInOutput returns the generated tokens after a successful login.
type SignInOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshOutput returns a fresh access token. The refresh token itself is
// not rotated.
type RefreshOutput struct {
	AccessToken string
}

// UserUsecase defines the interface for account and session business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	SignUp(ctx context.Context, input *SignUpInput) (*SignUpOutput, error)
	SignIn(ctx context.Context, input *SignInInput) (*SignInOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error

	// Me returns the caller's fresh account state, including the provider
	// profile when one exists.
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// ApproveUser moves a pending account to approved. Idempotent when the
	// account is already approved. Admin only.
	ApproveUser(ctx context.Context, actorID, targetID uuid.UUID) error

	// RejectUser moves an account to rejected and revokes its sessions. Admin only.
	RejectUser(ctx context.Context, actorID, targetID uuid.UUID) error

	// ListPendingUsers returns accounts awaiting review, oldest first. Admin only.
	ListPendingUsers(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]*entity.User, error)
}
