package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/services/shop/domain"
)

// OrderStatus is the order lifecycle. The only transition is ORDER→CANCEL.
type OrderStatus string

const (
	OrderStatusOrder  OrderStatus = "ORDER"
	OrderStatusCancel OrderStatus = "CANCEL"
)

// Order aggregates one member's purchase: the ordered lines and the
// delivery record, both owned and persisted with the order. The member is
// referenced by ID only.
type Order struct {
	ID        uuid.UUID
	MemberID  uuid.UUID
	Items     []*OrderItem
	Delivery  *Delivery
	OrderedAt time.Time
	Status    OrderStatus
}

// NewOrder assembles an order for member from the given lines and delivery.
// Status is forced to ORDER and OrderedAt to the creation instant; callers
// cannot choose either. At least one line is required.
func NewOrder(member *Member, delivery *Delivery, items ...*OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	return &Order{
		ID:        uuid.New(),
		MemberID:  member.ID,
		Items:     items,
		Delivery:  delivery,
		OrderedAt: time.Now().UTC(),
		Status:    OrderStatusOrder,
	}, nil
}

// Cancel transitions the order to CANCEL and restores every line's stock,
// in line order. Fails with ErrDeliveryCompleted when the delivery already
// completed, leaving status and stock untouched. A second Cancel on an
// already-cancelled order is a no-op so the restock runs at most once.
func (o *Order) Cancel() error {
	if o.Delivery.Status == DeliveryStatusComp {
		return domain.ErrDeliveryCompleted
	}
	if o.Status == OrderStatusCancel {
		return nil
	}
	o.Status = OrderStatusCancel
	for _, oi := range o.Items {
		oi.Cancel()
	}
	return nil
}

// TotalPrice sums the line totals. Always derived, never stored; it reads
// current line state on every call.
func (o *Order) TotalPrice() int64 {
	var total int64
	for _, oi := range o.Items {
		total += oi.TotalPrice()
	}
	return total
}
