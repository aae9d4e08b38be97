package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for the order lifecycle.
const (
	TopicOrderPlaced    = "order.placed"
	TopicOrderCancelled = "order.cancelled"
)

// OrderLine is the event-payload shape of one order line.
type OrderLine struct {
	ItemID     uuid.UUID `json:"item_id"`
	OrderPrice int64     `json:"order_price"`
	Count      int       `json:"count"`
}

// OrderPlacedEvent is published after an order and its stock decrement are
// committed. Consumers use it to refresh item read models.
type OrderPlacedEvent struct {
	EventID    uuid.UUID   `json:"event_id"`
	Version    int         `json:"version"`
	OrderID    uuid.UUID   `json:"order_id"`
	MemberID   uuid.UUID   `json:"member_id"`
	Lines      []OrderLine `json:"lines"`
	TotalPrice int64       `json:"total_price"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// OrderCancelledEvent is published after a cancellation and its restock are
// committed.
type OrderCancelledEvent struct {
	EventID    uuid.UUID   `json:"event_id"`
	Version    int         `json:"version"`
	OrderID    uuid.UUID   `json:"order_id"`
	MemberID   uuid.UUID   `json:"member_id"`
	Lines      []OrderLine `json:"lines"`
	OccurredAt time.Time   `json:"occurred_at"`
}
