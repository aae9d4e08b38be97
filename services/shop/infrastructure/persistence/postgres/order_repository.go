package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/storefront/pkg/database"
	"github.com/ghuser/storefront/pkg/events"
	shopdomain "github.com/ghuser/storefront/services/shop/domain"
	domainevents "github.com/ghuser/storefront/services/shop/domain/events"
	"github.com/ghuser/storefront/services/shop/domain/models"
)

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
// Save and Update commit the whole aggregate (order row, lines, delivery and
// the referenced items' stock) in one transaction, then publish the
// lifecycle event on the same transaction so the outbox cannot diverge from
// the data.
type OrderRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewOrderRepository returns an OrderRepository backed by the given
// connection pool and event bus.
func NewOrderRepository(db *database.Database, bus *events.EventBus) *OrderRepository {
	return &OrderRepository{db: db, bus: bus}
}

// Save persists a freshly assembled order. The items' stock was already
// decremented in memory by the line factory; this writes those levels back
// alongside the new rows.
func (r *OrderRepository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, member_id, status, ordered_at)
			VALUES ($1, $2, $3, $4)`,
			order.ID, order.MemberID, string(order.Status), order.OrderedAt,
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		d := order.Delivery
		_, err = tx.ExecContext(ctx, `
			INSERT INTO deliveries (id, order_id, city, street, zipcode, status)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, order.ID, d.Address.City, d.Address.Street, d.Address.Zipcode, string(d.Status),
		)
		if err != nil {
			return fmt.Errorf("insert delivery: %w", err)
		}

		for _, row := range lineRows(order) {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO order_items (id, order_id, item_id, order_price, count, position)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				row.id, order.ID, row.itemID, row.orderPrice, row.count, row.position,
			)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		if err := writeStockLevels(ctx, tx, order); err != nil {
			return err
		}

		if r.bus != nil {
			if err := r.publishPlaced(tx, order); err != nil {
				return fmt.Errorf("publish order placed: %w", err)
			}
		}
		return nil
	})
}

// Update persists a cancellation: the status flip and the restocked item
// levels, atomically.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE orders SET status = $2 WHERE id = $1`,
			order.ID, string(order.Status),
		)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return shopdomain.ErrOrderNotFound
		}

		if err := writeStockLevels(ctx, tx, order); err != nil {
			return err
		}

		if r.bus != nil && order.Status == models.OrderStatusCancel {
			if err := r.publishCancelled(tx, order); err != nil {
				return fmt.Errorf("publish order cancelled: %w", err)
			}
		}
		return nil
	})
}

// GetByID loads the full aggregate: order, delivery and lines with their
// catalog items attached so domain methods can mutate stock. Returns
// ErrOrderNotFound if no order matches.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT o.id, o.member_id, o.status, o.ordered_at,
		       d.id, d.city, d.street, d.zipcode, d.status
		FROM orders o
		JOIN deliveries d ON d.order_id = o.id
		WHERE o.id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shopdomain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order: %w", err)
	}

	if err := r.loadLines(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// Search applies the OrderSearch predicates over orders joined to members
// and returns the matching aggregates, oldest order first, capped at
// models.MaxOrderSearchResults.
func (r *OrderRepository) Search(ctx context.Context, search models.OrderSearch) ([]*models.Order, error) {
	where, args := buildOrderSearchWhere(search)
	query := `
		SELECT o.id, o.member_id, o.status, o.ordered_at,
		       d.id, d.city, d.street, d.zipcode, d.status
		FROM orders o
		JOIN members m ON m.id = o.member_id
		JOIN deliveries d ON d.order_id = o.id` +
		where +
		fmt.Sprintf(" ORDER BY o.ordered_at, o.id LIMIT %d", models.MaxOrderSearchResults)

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if err := r.loadLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// buildOrderSearchWhere renders the optional search filters into one WHERE
// clause with positional args. Both historical query styles of this lookup
// (string concatenation and a criteria builder) collapse into this single
// predicate list.
func buildOrderSearchWhere(search models.OrderSearch) (string, []any) {
	var (
		preds []string
		args  []any
	)
	if search.Status != nil {
		args = append(args, string(*search.Status))
		preds = append(preds, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if search.HasMemberName() {
		args = append(args, "%"+search.MemberName+"%")
		preds = append(preds, fmt.Sprintf("m.name LIKE $%d", len(args)))
	}
	if len(preds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(preds, " AND "), args
}

// loadLines attaches order lines, with their catalog items, to each order.
func (r *OrderRepository) loadLines(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.Order, len(orders))
	placeholders := make([]string, len(orders))
	args := make([]any, len(orders))
	for i, o := range orders {
		byID[o.ID] = o
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = o.ID
	}

	// Line IDs are random UUIDs; position carries the insertion order, and
	// domain code depends on it (cancellation restocks in list order).
	query := fmt.Sprintf(`
		SELECT oi.id, oi.order_id, oi.item_id, oi.order_price, oi.count,
		       i.id, i.name, i.price, i.stock_quantity, i.kind, i.attrs, i.created_at
		FROM order_items oi
		JOIN items i ON i.id = oi.item_id
		WHERE oi.order_id IN (%s)
		ORDER BY oi.position`, strings.Join(placeholders, ", "))

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	// One *Item per catalog row, shared across lines, so a multi-line
	// cancellation restocks a single in-memory ledger.
	items := make(map[uuid.UUID]*models.Item)

	for rows.Next() {
		var (
			oi        models.OrderItem
			orderID   uuid.UUID
			it        models.Item
			name      string
			kind      string
			attrs     []byte
			createdAt time.Time
		)
		if err := rows.Scan(
			&oi.ID, &orderID, &oi.ItemID, &oi.OrderPrice, &oi.Count,
			&it.ID, &name, &it.Price, &it.StockQuantity, &kind, &attrs, &createdAt,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}

		item, ok := items[it.ID]
		if !ok {
			if err := json.Unmarshal(attrs, &it.Attrs); err != nil {
				return fmt.Errorf("unmarshal item attrs: %w", err)
			}
			it.Name = models.ItemName(name)
			it.Kind = models.ItemKind(kind)
			it.CreatedAt = createdAt.UTC()
			item = &it
			items[it.ID] = item
		}
		oi.Item = item

		order, ok := byID[orderID]
		if !ok {
			return fmt.Errorf("order item %s references unknown order %s", oi.ID, orderID)
		}
		line := oi
		order.Items = append(order.Items, &line)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order items: %w", err)
	}
	return nil
}

// writeStockLevels flushes each line's in-memory item stock to the items
// table. The domain already enforced non-negativity; the column CHECK is
// the storage-level backstop.
func writeStockLevels(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	written := make(map[uuid.UUID]bool, len(order.Items))
	for _, oi := range order.Items {
		if oi.Item == nil || written[oi.ItemID] {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE items SET stock_quantity = $2 WHERE id = $1`,
			oi.ItemID, oi.Item.StockQuantity,
		)
		if err != nil {
			return fmt.Errorf("update item stock: %w", err)
		}
		written[oi.ItemID] = true
	}
	return nil
}

func (r *OrderRepository) publishPlaced(tx *sql.Tx, order *models.Order) error {
	event := domainevents.OrderPlacedEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    order.ID,
		MemberID:   order.MemberID,
		Lines:      eventLines(order),
		TotalPrice: order.TotalPrice(),
		OccurredAt: order.OrderedAt,
	}
	return r.publish(tx, domainevents.TopicOrderPlaced, event, event.EventID)
}

func (r *OrderRepository) publishCancelled(tx *sql.Tx, order *models.Order) error {
	event := domainevents.OrderCancelledEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    order.ID,
		MemberID:   order.MemberID,
		Lines:      eventLines(order),
		OccurredAt: time.Now().UTC(),
	}
	return r.publish(tx, domainevents.TopicOrderCancelled, event, event.EventID)
}

func (r *OrderRepository) publish(tx *sql.Tx, topic string, event any, eventID uuid.UUID) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// lineRow is one order_items row. position is the index of the line in the
// order's list, not anything derived from its random ID.
type lineRow struct {
	id         uuid.UUID
	itemID     uuid.UUID
	orderPrice int64
	count      int
	position   int
}

func lineRows(order *models.Order) []lineRow {
	rows := make([]lineRow, len(order.Items))
	for i, oi := range order.Items {
		rows[i] = lineRow{
			id:         oi.ID,
			itemID:     oi.ItemID,
			orderPrice: oi.OrderPrice,
			count:      oi.Count,
			position:   i,
		}
	}
	return rows
}

func eventLines(order *models.Order) []domainevents.OrderLine {
	lines := make([]domainevents.OrderLine, len(order.Items))
	for i, oi := range order.Items {
		lines[i] = domainevents.OrderLine{
			ItemID:     oi.ItemID,
			OrderPrice: oi.OrderPrice,
			Count:      oi.Count,
		}
	}
	return lines
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		o         models.Order
		status    string
		orderedAt time.Time
		d         models.Delivery
		dStatus   string
	)
	if err := row.Scan(
		&o.ID, &o.MemberID, &status, &orderedAt,
		&d.ID, &d.Address.City, &d.Address.Street, &d.Address.Zipcode, &dStatus,
	); err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	o.OrderedAt = orderedAt.UTC()
	d.Status = models.DeliveryStatus(dStatus)
	o.Delivery = &d
	return &o, nil
}
