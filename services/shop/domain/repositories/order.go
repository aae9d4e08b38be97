package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/services/shop/domain/models"
)

// OrderRepository is the persistence interface for the Order aggregate.
// An order is saved as one graph: its row, its lines, its delivery and the
// stock levels of the referenced items commit in a single transaction or
// not at all.
type OrderRepository interface {
	// Save persists a freshly assembled order together with the stock
	// decrement its lines performed, and publishes OrderPlacedEvent in the
	// same transaction.
	Save(ctx context.Context, order *models.Order) error

	// Update persists a status change (cancellation) together with the
	// restock its lines performed, and publishes OrderCancelledEvent in the
	// same transaction.
	Update(ctx context.Context, order *models.Order) error

	// GetByID loads the full aggregate: order row, lines with their catalog
	// items attached, and delivery. Returns ErrOrderNotFound when no order
	// matches.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)

	// Search applies the OrderSearch predicates (AND-combined) over orders
	// joined to members, capped at models.MaxOrderSearchResults.
	Search(ctx context.Context, search models.OrderSearch) ([]*models.Order, error)
}
