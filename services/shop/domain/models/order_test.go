package models

import (
	"errors"
	"testing"
	"time"

	"github.com/ghuser/storefront/services/shop/domain"
)

func testMember(t *testing.T) *Member {
	t.Helper()
	addr, err := NewAddress("Seoul", "Gangnam-daero 1", "06000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewMember("kim", addr)
}

func testOrder(t *testing.T, stock, count int) (*Order, *Item) {
	t.Helper()
	member := testMember(t)
	item := NewBook("JPA Programming", 100, stock, "kim", "9788960777330")
	oi, err := NewOrderItem(item, item.Price, count)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order, err := NewOrder(member, NewDelivery(member.Address), oi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return order, item
}

func TestNewOrder(t *testing.T) {
	t.Run("forces initial status to ORDER", func(t *testing.T) {
		order, _ := testOrder(t, 10, 3)
		if order.Status != OrderStatusOrder {
			t.Fatalf("expected ORDER, got %v", order.Status)
		}
	})

	t.Run("stamps the creation instant", func(t *testing.T) {
		before := time.Now().UTC()
		order, _ := testOrder(t, 10, 3)
		after := time.Now().UTC()
		if order.OrderedAt.Before(before) || order.OrderedAt.After(after) {
			t.Fatalf("OrderedAt %v not between %v and %v", order.OrderedAt, before, after)
		}
	})

	t.Run("references the member by id", func(t *testing.T) {
		member := testMember(t)
		item := NewBook("x", 100, 10, "a", "i")
		oi, _ := NewOrderItem(item, 100, 1)
		order, err := NewOrder(member, NewDelivery(member.Address), oi)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.MemberID != member.ID {
			t.Fatalf("expected member %v, got %v", member.ID, order.MemberID)
		}
	})

	t.Run("rejects an order without lines", func(t *testing.T) {
		member := testMember(t)
		_, err := NewOrder(member, NewDelivery(member.Address))
		if !errors.Is(err, domain.ErrEmptyOrder) {
			t.Fatalf("expected ErrEmptyOrder, got %v", err)
		}
	})

	t.Run("delivery snapshots the member address in READY state", func(t *testing.T) {
		order, _ := testOrder(t, 10, 3)
		if order.Delivery.Status != DeliveryStatusReady {
			t.Fatalf("expected READY, got %v", order.Delivery.Status)
		}
		if order.Delivery.Address.City != "Seoul" {
			t.Fatalf("unexpected delivery address: %+v", order.Delivery.Address)
		}
	})
}

func TestOrder_TotalPrice(t *testing.T) {
	t.Run("sums line totals", func(t *testing.T) {
		order, _ := testOrder(t, 10, 3)
		if got := order.TotalPrice(); got != 300 {
			t.Fatalf("expected 300, got %d", got)
		}
	})

	t.Run("multi-line order sums every line", func(t *testing.T) {
		member := testMember(t)
		book := NewBook("b", 100, 10, "a", "i")
		album := NewAlbum("a", 250, 10, "r", "p")
		l1, _ := NewOrderItem(book, book.Price, 2)
		l2, _ := NewOrderItem(album, album.Price, 1)
		order, err := NewOrder(member, NewDelivery(member.Address), l1, l2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := order.TotalPrice(); got != 450 {
			t.Fatalf("expected 450, got %d", got)
		}
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("flips status and restores every line's stock", func(t *testing.T) {
		order, item := testOrder(t, 10, 3)
		if item.StockQuantity != 7 {
			t.Fatalf("precondition: expected stock 7, got %d", item.StockQuantity)
		}
		if err := order.Cancel(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Status != OrderStatusCancel {
			t.Fatalf("expected CANCEL, got %v", order.Status)
		}
		if item.StockQuantity != 10 {
			t.Fatalf("expected stock 10, got %d", item.StockQuantity)
		}
	})

	t.Run("fails unchanged when delivery is completed", func(t *testing.T) {
		order, item := testOrder(t, 10, 3)
		order.Delivery.Complete()

		err := order.Cancel()
		if !errors.Is(err, domain.ErrDeliveryCompleted) {
			t.Fatalf("expected ErrDeliveryCompleted, got %v", err)
		}
		if order.Status != OrderStatusOrder {
			t.Fatalf("status changed on failed cancel: %v", order.Status)
		}
		if item.StockQuantity != 7 {
			t.Fatalf("stock changed on failed cancel: %d", item.StockQuantity)
		}
	})

	t.Run("restocks at most once across repeated cancels", func(t *testing.T) {
		order, item := testOrder(t, 10, 3)
		if err := order.Cancel(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := order.Cancel(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.StockQuantity != 10 {
			t.Fatalf("expected stock 10 after repeated cancel, got %d", item.StockQuantity)
		}
	})

	t.Run("cancellation keeps the lines and the derived total", func(t *testing.T) {
		order, _ := testOrder(t, 10, 3)
		if err := order.Cancel(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order.Items) != 1 {
			t.Fatalf("cancel must not remove lines, got %d", len(order.Items))
		}
		if got := order.TotalPrice(); got != 300 {
			t.Fatalf("expected total 300 after cancel, got %d", got)
		}
	})
}
