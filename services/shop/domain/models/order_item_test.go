package models

import (
	"errors"
	"testing"

	"github.com/ghuser/storefront/services/shop/domain"
)

func TestNewOrderItem(t *testing.T) {
	t.Run("decrements stock by exactly the ordered count", func(t *testing.T) {
		item := NewBook("x", 100, 10, "a", "i")
		oi, err := NewOrderItem(item, 100, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.StockQuantity != 7 {
			t.Fatalf("expected stock 7, got %d", item.StockQuantity)
		}
		if oi.ItemID != item.ID {
			t.Fatalf("line references wrong item: %v", oi.ItemID)
		}
	})

	t.Run("snapshots the order price independent of the item", func(t *testing.T) {
		item := NewBook("x", 100, 10, "a", "i")
		oi, err := NewOrderItem(item, 100, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		item.Price = 999
		if oi.OrderPrice != 100 {
			t.Fatalf("order price followed catalog price: %d", oi.OrderPrice)
		}
	})

	t.Run("fails without a line when stock is insufficient", func(t *testing.T) {
		item := NewBook("x", 100, 2, "a", "i")
		oi, err := NewOrderItem(item, 100, 5)
		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if oi != nil {
			t.Fatal("expected no line on failed decrement")
		}
		if item.StockQuantity != 2 {
			t.Fatalf("stock changed on failed order: %d", item.StockQuantity)
		}
	})
}

func TestOrderItem_TotalPrice(t *testing.T) {
	item := NewBook("x", 100, 10, "a", "i")
	oi, err := NewOrderItem(item, 100, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := oi.TotalPrice(); got != 300 {
		t.Fatalf("expected 300, got %d", got)
	}
}

func TestOrderItem_Cancel(t *testing.T) {
	item := NewBook("x", 100, 10, "a", "i")
	oi, err := NewOrderItem(item, 100, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oi.Cancel()
	if item.StockQuantity != 10 {
		t.Fatalf("expected stock restored to 10, got %d", item.StockQuantity)
	}
}
