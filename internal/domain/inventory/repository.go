package inventory

import (
	"context"

	"medikos/internal/core/id"
)

// Repository defines storage operations for inventory lots.
type Repository interface {
	// CreateLot inserts a new lot.
	CreateLot(ctx context.Context, lot *Lot) error

	// LotsForUpdate retrieves all lots for an item ordered by created_on
	// ascending, then id ascending, locked for the current transaction.
	// The ordering is the depletion order: oldest stock is sold first.
	LotsForUpdate(ctx context.Context, item string) ([]Lot, error)

	// SetLotUnits overwrites the unit count of a lot.
	SetLotUnits(ctx context.Context, lotID id.ID, units int64) error

	// DeleteLot removes an exhausted lot.
	DeleteLot(ctx context.Context, lotID id.ID) error

	// AvailableUnits sums units across all lots for an item (0 if none).
	AvailableUnits(ctx context.Context, item string) (int64, error)

	// StockSummary returns on-hand units per item joined with the catalog
	// price, ordered by item name.
	StockSummary(ctx context.Context) ([]StockRow, error)
}
