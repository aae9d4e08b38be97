package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/storefront/pkg/cache"
	"github.com/ghuser/storefront/services/shop/domain/models"
	"github.com/ghuser/storefront/services/shop/domain/repositories"
)

// ItemService orchestrates catalog management.
// Reads are served from Redis cache when available.
type ItemService struct {
	repo  repositories.ItemRepository
	cache *pkgcache.ItemCache
}

// NewItemService returns an ItemService wired with the given repository and cache.
func NewItemService(repo repositories.ItemRepository, itemCache *pkgcache.ItemCache) *ItemService {
	return &ItemService{repo: repo, cache: itemCache}
}

// CreateParams carries the shared and kind-specific fields for a new item.
// Only the attrs for the requested kind are read.
type CreateParams struct {
	Kind  models.ItemKind
	Name  string
	Price int64
	Stock int
	Attrs models.ItemAttrs
}

// Create validates and persists a new catalog item of the requested kind.
func (s *ItemService) Create(ctx context.Context, p CreateParams) (*models.Item, error) {
	name, err := models.NewItemName(p.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid item name: %w", err)
	}

	var item *models.Item
	switch p.Kind {
	case models.ItemKindBook:
		item = models.NewBook(name, p.Price, p.Stock, p.Attrs.Author, p.Attrs.ISBN)
	case models.ItemKindAlbum:
		item = models.NewAlbum(name, p.Price, p.Stock, p.Attrs.Artist, p.Attrs.Label)
	case models.ItemKindMovie:
		item = models.NewMovie(name, p.Price, p.Stock, p.Attrs.Director, p.Attrs.Actor)
	default:
		return nil, fmt.Errorf("unknown item kind %q", p.Kind)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// GetByID retrieves an Item using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		// redis.Nil and real cache errors both fall through to Postgres.
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return cachedToItem(cached), nil
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), itemToCached(item))
		}()
	}

	return item, nil
}

// List returns the whole catalog.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Update overwrites the item's name, price and stock quantity, keeping its
// kind and attributes. Save is insert-or-update by identity, so this is the
// catalog edit path.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, name string, price int64, stock int) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	itemName, err := models.NewItemName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid item name: %w", err)
	}
	item.Name = itemName
	item.Price = price
	item.StockQuantity = stock

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
	return item, nil
}

func cachedToItem(c *pkgcache.CachedItem) *models.Item {
	it := &models.Item{
		ID:            c.ID,
		Name:          models.ItemName(c.Name),
		Price:         c.Price,
		StockQuantity: c.StockQuantity,
		Kind:          models.ItemKind(c.Kind),
		CreatedAt:     c.CreatedAt,
	}
	if c.Attrs != "" {
		// A corrupt cached attrs blob loses only the kind-specific fields;
		// the ledger fields above are already set.
		_ = json.Unmarshal([]byte(c.Attrs), &it.Attrs)
	}
	return it
}

func itemToCached(it *models.Item) *pkgcache.CachedItem {
	attrs, _ := json.Marshal(it.Attrs)
	return &pkgcache.CachedItem{
		ID:            it.ID,
		Name:          it.Name.String(),
		Price:         it.Price,
		StockQuantity: it.StockQuantity,
		Kind:          string(it.Kind),
		Attrs:         string(attrs),
		CreatedAt:     it.CreatedAt,
	}
}
