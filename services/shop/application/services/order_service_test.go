package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/services/shop/domain"
	"github.com/ghuser/storefront/services/shop/domain/models"
)

type orderFixture struct {
	svc    *OrderService
	orders *fakeOrderRepo
	member *models.Member
	item   *models.Item
}

func newOrderFixture(t *testing.T, stock int) *orderFixture {
	t.Helper()
	members := newFakeMemberRepo()
	items := newFakeItemRepo()
	orders := newFakeOrderRepo(members)

	member := models.NewMember("kim", testAddress(t))
	if err := members.Save(context.Background(), member); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := models.NewBook("JPA Programming", 100, stock, "kim", "9788960777330")
	if err := items.Save(context.Background(), item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &orderFixture{
		svc:    NewOrderService(orders, members, items, nil),
		orders: orders,
		member: member,
		item:   item,
	}
}

func TestOrderService_Place(t *testing.T) {
	ctx := context.Background()

	t.Run("places an order and decrements stock", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		id, err := f.svc.Place(ctx, f.member.ID, f.item.ID, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		order, err := f.svc.FindOne(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Status != models.OrderStatusOrder {
			t.Fatalf("expected ORDER, got %v", order.Status)
		}
		if got := order.TotalPrice(); got != 300 {
			t.Fatalf("expected total 300, got %d", got)
		}
		if f.item.StockQuantity != 7 {
			t.Fatalf("expected stock 7, got %d", f.item.StockQuantity)
		}
		if order.MemberID != f.member.ID {
			t.Fatalf("expected member %v, got %v", f.member.ID, order.MemberID)
		}
		if order.Delivery.Status != models.DeliveryStatusReady {
			t.Fatalf("expected READY delivery, got %v", order.Delivery.Status)
		}
	})

	t.Run("snapshots the catalog price on the line", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		id, err := f.svc.Place(ctx, f.member.ID, f.item.ID, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f.item.Price = 999

		order, _ := f.svc.FindOne(ctx, id)
		if got := order.TotalPrice(); got != 200 {
			t.Fatalf("expected total 200 after catalog price change, got %d", got)
		}
	})

	t.Run("insufficient stock places nothing", func(t *testing.T) {
		f := newOrderFixture(t, 2)

		_, err := f.svc.Place(ctx, f.member.ID, f.item.ID, 5)
		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if f.item.StockQuantity != 2 {
			t.Fatalf("stock changed on failed placement: %d", f.item.StockQuantity)
		}
		if f.orders.saved != 0 {
			t.Fatalf("expected no saved orders, got %d", f.orders.saved)
		}
	})

	t.Run("ordering the exact remaining stock leaves zero", func(t *testing.T) {
		f := newOrderFixture(t, 5)

		if _, err := f.svc.Place(ctx, f.member.ID, f.item.ID, 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.item.StockQuantity != 0 {
			t.Fatalf("expected stock 0, got %d", f.item.StockQuantity)
		}
	})

	t.Run("unknown member maps to ErrMemberNotFound", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		_, err := f.svc.Place(ctx, uuid.New(), f.item.ID, 1)
		if !errors.Is(err, domain.ErrMemberNotFound) {
			t.Fatalf("expected ErrMemberNotFound, got %v", err)
		}
	})

	t.Run("unknown item maps to ErrItemNotFound", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		_, err := f.svc.Place(ctx, f.member.ID, uuid.New(), 1)
		if !errors.Is(err, domain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("rejects a non-positive count", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		if _, err := f.svc.Place(ctx, f.member.ID, f.item.ID, 0); err == nil {
			t.Fatal("expected error, got nil")
		}
		if f.orders.saved != 0 {
			t.Fatalf("expected no saved orders, got %d", f.orders.saved)
		}
	})
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels and restores stock", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		id, err := f.svc.Place(ctx, f.member.ID, f.item.ID, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := f.svc.Cancel(ctx, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		order, _ := f.svc.FindOne(ctx, id)
		if order.Status != models.OrderStatusCancel {
			t.Fatalf("expected CANCEL, got %v", order.Status)
		}
		if f.item.StockQuantity != 10 {
			t.Fatalf("expected stock 10, got %d", f.item.StockQuantity)
		}
	})

	t.Run("completed delivery blocks cancellation", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		id, err := f.svc.Place(ctx, f.member.ID, f.item.ID, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		order, _ := f.svc.FindOne(ctx, id)
		order.Delivery.Complete()

		err = f.svc.Cancel(ctx, id)
		if !errors.Is(err, domain.ErrDeliveryCompleted) {
			t.Fatalf("expected ErrDeliveryCompleted, got %v", err)
		}
		if order.Status != models.OrderStatusOrder {
			t.Fatalf("status changed on blocked cancel: %v", order.Status)
		}
		if f.item.StockQuantity != 7 {
			t.Fatalf("stock changed on blocked cancel: %d", f.item.StockQuantity)
		}
	})

	t.Run("repeated cancel restocks and persists at most once", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		id, err := f.svc.Place(ctx, f.member.ID, f.item.ID, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := f.svc.Cancel(ctx, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := f.svc.Cancel(ctx, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.item.StockQuantity != 10 {
			t.Fatalf("expected stock 10, got %d", f.item.StockQuantity)
		}
		if f.orders.updated != 1 {
			t.Fatalf("expected exactly one persisted cancellation, got %d", f.orders.updated)
		}
	})

	t.Run("unknown order maps to ErrOrderNotFound", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		err := f.svc.Cancel(ctx, uuid.New())
		if !errors.Is(err, domain.ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestOrderService_Search(t *testing.T) {
	ctx := context.Background()

	members := newFakeMemberRepo()
	items := newFakeItemRepo()
	orders := newFakeOrderRepo(members)
	svc := NewOrderService(orders, members, items, nil)

	item := models.NewBook("JPA Programming", 100, 100, "kim", "9788960777330")
	if err := items.Save(ctx, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	place := func(t *testing.T, name string) uuid.UUID {
		t.Helper()
		m := models.NewMember(name, testAddress(t))
		if err := members.Save(ctx, m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		id, err := svc.Place(ctx, m.ID, item.ID, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return id
	}

	kimOrder := place(t, "kim")
	kimchiOrder := place(t, "kimchi")
	parkOrder := place(t, "park")

	if err := svc.Cancel(ctx, kimchiOrder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := func(orders []*models.Order) []uuid.UUID {
		out := make([]uuid.UUID, len(orders))
		for i, o := range orders {
			out[i] = o.ID
		}
		return out
	}

	ordered := models.OrderStatusOrder
	cancelled := models.OrderStatusCancel

	t.Run("empty search matches every order", func(t *testing.T) {
		got, err := svc.Search(ctx, models.OrderSearch{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []uuid.UUID{kimOrder, kimchiOrder, parkOrder}; !reflect.DeepEqual(ids(got), want) {
			t.Fatalf("got %v, want %v", ids(got), want)
		}
	})

	t.Run("name fragment matches every member containing it", func(t *testing.T) {
		got, err := svc.Search(ctx, models.OrderSearch{MemberName: "ki"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []uuid.UUID{kimOrder, kimchiOrder}; !reflect.DeepEqual(ids(got), want) {
			t.Fatalf("got %v, want %v", ids(got), want)
		}
	})

	t.Run("status and name combine with AND", func(t *testing.T) {
		got, err := svc.Search(ctx, models.OrderSearch{Status: &ordered, MemberName: "ki"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []uuid.UUID{kimOrder}; !reflect.DeepEqual(ids(got), want) {
			t.Fatalf("got %v, want %v", ids(got), want)
		}
	})

	t.Run("status alone picks the cancelled order", func(t *testing.T) {
		got, err := svc.Search(ctx, models.OrderSearch{Status: &cancelled})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []uuid.UUID{kimchiOrder}; !reflect.DeepEqual(ids(got), want) {
			t.Fatalf("got %v, want %v", ids(got), want)
		}
	})

	t.Run("unmatched fragment matches nothing", func(t *testing.T) {
		got, err := svc.Search(ctx, models.OrderSearch{MemberName: "choi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no orders, got %v", ids(got))
		}
	})
}
