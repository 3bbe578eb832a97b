package catalog

import (
	"context"

	"medikos/internal/core/types"
)

// Repository defines storage operations for catalog items.
type Repository interface {
	// GetByName retrieves an item by normalized name.
	// Returns apperror.CodeNotFound if absent.
	GetByName(ctx context.Context, name string) (*Item, error)

	// Create inserts a new item.
	Create(ctx context.Context, item *Item) error

	// UpdatePrice overwrites the MRP of an existing item.
	UpdatePrice(ctx context.Context, name string, mrpPerUnit types.Money) error

	// List returns all items ordered by name.
	List(ctx context.Context) ([]Item, error)
}
