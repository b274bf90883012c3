package middleware

import (
	"fixly/internal/delivery/http/response"
	"fixly/internal/domain/entity"
	"fixly/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ApprovalMiddleware re-verifies role and approval status against the
// database on every request. Tokens carry identity but never authority;
// an approval revoked a second ago takes effect on the next request.
type ApprovalMiddleware struct {
	userRepo repository.UserRepository
}

// NewApprovalMiddleware is the constructor for ApprovalMiddleware.
func NewApprovalMiddleware(userRepo repository.UserRepository) *ApprovalMiddleware {
	return &ApprovalMiddleware{userRepo: userRepo}
}

// RequireApproved loads the caller's fresh account state and rejects anyone
// not currently approved, or whose stored role disagrees with the token.
// It must be used AFTER the Authenticate middleware.
func (m *ApprovalMiddleware) RequireApproved(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := UserIDFromContext(c)
		if !ok {
			return response.Unauthorized(c, "MISSING_IDENTITY", "Authentication required")
		}

		currentUser, err := m.userRepo.FindByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return response.Unauthorized(c, "ACCOUNT_GONE", "Account no longer exists")
			}

			return errors.Wrap(err, "failed to load user for approval check")
		}

		if tokenRole, ok := c.Get(ContextKeyRole).(entity.Role); ok && tokenRole != currentUser.Role {
			return response.Forbidden(c, "ROLE_MISMATCH", "Token role does not match account role")
		}

		if !currentUser.IsApproved() {
			return response.Forbidden(c, "NOT_APPROVED", "Account has not been approved")
		}

		return next(c)
	}
}
