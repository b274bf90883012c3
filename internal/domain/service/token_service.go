package service

import (
	"time"

	"fixly/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenClaims is the validated content of an access or refresh token.
type TokenClaims struct {
	UserID    uuid.UUID
	Role      entity.Role // Only present on access tokens.
	TokenType string      // "access" or "refresh".
}

// TokenService abstracts token issuance and validation for sessions.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a user.
	// The role rides in the access token only; approval status deliberately
	// does not, because it can change between sessions and must be re-read.
	GenerateTokens(userID uuid.UUID, role entity.Role) (accessToken string, refreshToken string, err error)

	// GenerateAccessToken creates a new access token only, for token refresh.
	GenerateAccessToken(userID uuid.UUID, role entity.Role) (string, error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*TokenClaims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*TokenClaims, error)

	// HashToken returns the hash under which a raw refresh token is stored.
	HashToken(tokenString string) string

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
