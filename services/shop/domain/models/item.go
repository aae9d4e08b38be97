package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/services/shop/domain"
)

// ItemKind discriminates the catalog product variants. The variants share
// the Item columns and differ only in Attrs; a new kind is a new constant
// plus a constructor, not a new table.
type ItemKind string

const (
	ItemKindBook  ItemKind = "book"
	ItemKindAlbum ItemKind = "album"
	ItemKindMovie ItemKind = "movie"
)

// ItemAttrs holds the kind-specific fields. Only the fields for the item's
// kind are populated; the rest stay zero.
type ItemAttrs struct {
	Author   string `json:"author,omitempty"`
	ISBN     string `json:"isbn,omitempty"`
	Artist   string `json:"artist,omitempty"`
	Label    string `json:"label,omitempty"`
	Director string `json:"director,omitempty"`
	Actor    string `json:"actor,omitempty"`
}

// Item is the catalog aggregate and the stock ledger for one product.
// StockQuantity is mutated only through AddStock and RemoveStock; callers
// never assign it directly, so the non-negative invariant holds everywhere
// the type is used. Price is in minimal currency units.
type Item struct {
	ID            uuid.UUID
	Name          ItemName
	Price         int64
	StockQuantity int
	Kind          ItemKind
	Attrs         ItemAttrs
	CreatedAt     time.Time
}

// NewBook constructs a book item with generated ID and current timestamp.
func NewBook(name ItemName, price int64, stock int, author, isbn string) *Item {
	it := newItem(name, price, stock, ItemKindBook)
	it.Attrs = ItemAttrs{Author: author, ISBN: isbn}
	return it
}

// NewAlbum constructs an album item.
func NewAlbum(name ItemName, price int64, stock int, artist, label string) *Item {
	it := newItem(name, price, stock, ItemKindAlbum)
	it.Attrs = ItemAttrs{Artist: artist, Label: label}
	return it
}

// NewMovie constructs a movie item.
func NewMovie(name ItemName, price int64, stock int, director, actor string) *Item {
	it := newItem(name, price, stock, ItemKindMovie)
	it.Attrs = ItemAttrs{Director: director, Actor: actor}
	return it
}

func newItem(name ItemName, price int64, stock int, kind ItemKind) *Item {
	return &Item{
		ID:            uuid.New(),
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		Kind:          kind,
		CreatedAt:     time.Now().UTC(),
	}
}

// AddStock increases the stock quantity. There is no upper bound; receiving
// inventory never fails.
func (i *Item) AddStock(quantity int) {
	i.StockQuantity += quantity
}

// RemoveStock decreases the stock quantity. Returns ErrInsufficientStock
// and leaves the quantity unchanged when the decrement would go negative.
func (i *Item) RemoveStock(quantity int) error {
	rest := i.StockQuantity - quantity
	if rest < 0 {
		return domain.ErrInsufficientStock
	}
	i.StockQuantity = rest
	return nil
}
