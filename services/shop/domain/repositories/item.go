package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/services/shop/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
type ItemRepository interface {
	// Save inserts the item when its ID is unknown and updates the full row
	// otherwise (insert-or-update by identity).
	Save(ctx context.Context, item *models.Item) error

	// GetByID returns ErrItemNotFound when no item matches.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// FindAll retrieves the whole catalog, ordered by creation time.
	FindAll(ctx context.Context) ([]*models.Item, error)
}
