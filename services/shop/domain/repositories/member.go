package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/services/shop/domain/models"
)

// MemberRepository is the persistence interface for the Member aggregate.
// The domain layer owns this interface; infrastructure implements it.
type MemberRepository interface {
	// Save inserts a new member. Returns ErrDuplicateMember when the name
	// collides with an existing member (unique index backstop).
	Save(ctx context.Context, member *models.Member) error

	// GetByID returns ErrMemberNotFound when no member matches.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error)

	// FindAll retrieves every member, ordered by join time.
	FindAll(ctx context.Context) ([]*models.Member, error)

	// FindByName retrieves members whose name matches exactly. Used by the
	// duplicate-name fast path; usually zero or one row.
	FindByName(ctx context.Context, name string) ([]*models.Member, error)
}
