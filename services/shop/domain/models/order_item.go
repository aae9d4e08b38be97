package models

import "github.com/google/uuid"

// OrderItem is one line of an order. OrderPrice snapshots the item's price
// at order time so later catalog price changes do not rewrite order totals.
// The line references its catalog item by ID for persistence and holds the
// loaded *Item so stock mutations stay in the domain; it never points back
// at its owning Order.
type OrderItem struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	Item       *Item
	OrderPrice int64
	Count      int
}

// NewOrderItem builds a line for count units of item at orderPrice and
// decrements the item's stock. The decrement runs before the line is
// constructed: on ErrInsufficientStock no line exists and the item is
// untouched.
func NewOrderItem(item *Item, orderPrice int64, count int) (*OrderItem, error) {
	if err := item.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{
		ID:         uuid.New(),
		ItemID:     item.ID,
		Item:       item,
		OrderPrice: orderPrice,
		Count:      count,
	}, nil
}

// Cancel restores the line's quantity to the item's stock. Not idempotent
// on its own; the owning Order gates it on the ORDER→CANCEL transition so
// each line restocks at most once.
func (oi *OrderItem) Cancel() {
	oi.Item.AddStock(oi.Count)
}

// TotalPrice is the line total: order price times quantity.
func (oi *OrderItem) TotalPrice() int64 {
	return oi.OrderPrice * int64(oi.Count)
}
