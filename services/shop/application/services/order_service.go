package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/storefront/pkg/cache"
	"github.com/ghuser/storefront/services/shop/domain/models"
	"github.com/ghuser/storefront/services/shop/domain/repositories"
	domainsvcs "github.com/ghuser/storefront/services/shop/domain/services"
)

// OrderService orchestrates order placement, cancellation and search.
// All state changes run through domain methods; the repository commits the
// mutated graph in one transaction and publishes the lifecycle event on it.
type OrderService struct {
	orders  repositories.OrderRepository
	members repositories.MemberRepository
	items   repositories.ItemRepository
	cache   *pkgcache.ItemCache
}

// NewOrderService returns an OrderService wired with the given repositories.
// The item cache may be nil; stock-changing operations invalidate it when
// present so reads do not serve stale quantities.
func NewOrderService(
	orders repositories.OrderRepository,
	members repositories.MemberRepository,
	items repositories.ItemRepository,
	itemCache *pkgcache.ItemCache,
) *OrderService {
	return &OrderService{orders: orders, members: members, items: items, cache: itemCache}
}

// Place creates an order of count units of one item for the member, at the
// item's current catalog price, delivering to the member's current address.
// Returns the new order's ID.
//
// This entry point supplies exactly one line; the Order factory itself
// accepts any number.
func (s *OrderService) Place(ctx context.Context, memberID, itemID uuid.UUID, count int) (uuid.UUID, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("load member: %w", err)
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("load item: %w", err)
	}
	if err := domainsvcs.ValidateOrderRequest(member, item, count); err != nil {
		return uuid.Nil, fmt.Errorf("invalid order request: %w", err)
	}

	delivery := models.NewDelivery(member.Address)

	orderItem, err := models.NewOrderItem(item, item.Price, count)
	if err != nil {
		return uuid.Nil, err
	}

	order, err := models.NewOrder(member, delivery, orderItem)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return uuid.Nil, fmt.Errorf("save order: %w", err)
	}

	s.invalidateItems(order)
	return order.ID, nil
}

// Cancel cancels the order: flips ORDER→CANCEL and restores each line's
// stock. ErrOrderNotFound when the order does not exist;
// ErrDeliveryCompleted, with nothing changed, when the delivery already
// completed. Cancelling an already-cancelled order succeeds without
// persisting or publishing again, so order.cancelled fires exactly once
// per cancellation.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}

	alreadyCancelled := order.Status == models.OrderStatusCancel
	if err := order.Cancel(); err != nil {
		return err
	}
	if alreadyCancelled {
		return nil
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return fmt.Errorf("save cancellation: %w", err)
	}

	s.invalidateItems(order)
	return nil
}

// FindOne returns the full order aggregate.
func (s *OrderService) FindOne(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// Search returns the orders matching the given filters, capped at
// models.MaxOrderSearchResults.
func (s *OrderService) Search(ctx context.Context, search models.OrderSearch) ([]*models.Order, error) {
	orders, err := s.orders.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	return orders, nil
}

// invalidateItems drops cached read models for every item the order
// touched. Best effort; the worker also invalidates on the published event,
// and the next read re-warms the entry.
func (s *OrderService) invalidateItems(order *models.Order) {
	if s.cache == nil {
		return
	}
	for _, oi := range order.Items {
		_ = s.cache.Delete(context.Background(), oi.ItemID)
	}
}
