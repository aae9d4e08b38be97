package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/pkg/database"
	shopdomain "github.com/ghuser/storefront/services/shop/domain"
	"github.com/ghuser/storefront/services/shop/domain/models"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// The product variants share the items table; kind is the discriminant and
// the kind-specific attributes live in a jsonb column.
type ItemRepository struct {
	db *database.Database
}

// NewItemRepository returns an ItemRepository backed by the given pool.
func NewItemRepository(db *database.Database) *ItemRepository {
	return &ItemRepository{db: db}
}

// Save upserts the item by identity: a first save inserts the row, a later
// save with the same ID overwrites name, price, stock and attributes.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	attrs, err := json.Marshal(item.Attrs)
	if err != nil {
		return fmt.Errorf("marshal item attrs: %w", err)
	}

	_, err = r.db.DB().ExecContext(ctx, `
		INSERT INTO items (id, name, price, stock_quantity, kind, attrs, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			stock_quantity = EXCLUDED.stock_quantity,
			attrs = EXCLUDED.attrs`,
		item.ID, item.Name.String(), item.Price, item.StockQuantity,
		string(item.Kind), attrs, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, name, price, stock_quantity, kind, attrs, created_at
		FROM items WHERE id = $1`, id)

	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shopdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return it, nil
}

// FindAll retrieves the whole catalog, oldest first.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, name, price, stock_quantity, kind, attrs, created_at
		FROM items ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var items []*models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		it        models.Item
		name      string
		kind      string
		attrs     []byte
		createdAt time.Time
	)
	if err := row.Scan(&it.ID, &name, &it.Price, &it.StockQuantity, &kind, &attrs, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attrs, &it.Attrs); err != nil {
		return nil, fmt.Errorf("unmarshal item attrs: %w", err)
	}
	it.Name = models.ItemName(name)
	it.Kind = models.ItemKind(kind)
	it.CreatedAt = createdAt.UTC()
	return &it, nil
}
