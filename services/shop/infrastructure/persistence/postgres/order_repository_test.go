package postgres

import (
	"reflect"
	"testing"

	"github.com/ghuser/storefront/services/shop/domain/models"
)

func TestLineRowsFollowListOrder(t *testing.T) {
	address, err := models.NewAddress("Seoul", "Teheran-ro 1", "06000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	member := models.NewMember("kim", address)

	books := []*models.Item{
		models.NewBook("JPA Programming", 100, 10, "kim", "9788960777330"),
		models.NewBook("Spring in Action", 200, 10, "walls", "9781617294945"),
		models.NewBook("The Go Programming Language", 300, 10, "donovan", "9780134190440"),
	}
	lines := make([]*models.OrderItem, len(books))
	for i, book := range books {
		line, err := models.NewOrderItem(book, book.Price, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines[i] = line
	}

	order, err := models.NewOrder(member, models.NewDelivery(address), lines...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := lineRows(order)
	if len(rows) != len(lines) {
		t.Fatalf("expected %d rows, got %d", len(lines), len(rows))
	}
	for i, row := range rows {
		if row.position != i {
			t.Fatalf("row %d: position = %d, want %d", i, row.position, i)
		}
		if row.id != lines[i].ID {
			t.Fatalf("row %d: id = %s, want %s", i, row.id, lines[i].ID)
		}
		if row.itemID != books[i].ID {
			t.Fatalf("row %d: item id = %s, want %s", i, row.itemID, books[i].ID)
		}
	}
}

func TestBuildOrderSearchWhere(t *testing.T) {
	ordered := models.OrderStatusOrder
	cancelled := models.OrderStatusCancel

	tests := []struct {
		name      string
		search    models.OrderSearch
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no criteria yields no predicate",
			search:    models.OrderSearch{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "status only",
			search:    models.OrderSearch{Status: &ordered},
			wantWhere: " WHERE o.status = $1",
			wantArgs:  []any{"ORDER"},
		},
		{
			name:      "member name only wraps the fragment for partial match",
			search:    models.OrderSearch{MemberName: "kim"},
			wantWhere: " WHERE m.name LIKE $1",
			wantArgs:  []any{"%kim%"},
		},
		{
			name:      "status and member name are AND-joined",
			search:    models.OrderSearch{Status: &cancelled, MemberName: "kim"},
			wantWhere: " WHERE o.status = $1 AND m.name LIKE $2",
			wantArgs:  []any{"CANCEL", "%kim%"},
		},
		{
			name:      "blank member name is ignored",
			search:    models.OrderSearch{MemberName: "   "},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "blank member name with status keeps only the status predicate",
			search:    models.OrderSearch{Status: &ordered, MemberName: " "},
			wantWhere: " WHERE o.status = $1",
			wantArgs:  []any{"ORDER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildOrderSearchWhere(tt.search)
			if where != tt.wantWhere {
				t.Fatalf("where = %q, want %q", where, tt.wantWhere)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Fatalf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}
