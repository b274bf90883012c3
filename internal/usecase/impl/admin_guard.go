package impl

import (
	"context"

	domainerrors "fixly/internal/domain/errors"
	"fixly/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// normalizeLimit clamps a caller-supplied page size to sane bounds.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}

	return limit
}

// requireApprovedAdmin re-reads the acting user and verifies both the admin
// role and a currently approved status. Tokens only prove who the caller is;
// what the caller may do is always checked against fresh data, so a revoked
// admin loses access mid-session.
func requireApprovedAdmin(ctx context.Context, userRepo repository.UserRepository, actorID uuid.UUID) error {
	actor, err := userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrForbidden, "acting user not found")
		}

		return errors.Wrap(err, "failed to load acting user")
	}

	if !actor.CanActAsAdmin() {
		return errors.Wrap(domainerrors.ErrForbidden, "admin role with approved status required")
	}

	return nil
}
