package inventory

import (
	"context"
	"time"

	"medikos/internal/core/apperror"
	"medikos/internal/core/id"
	"medikos/internal/core/types"
	"medikos/pkg/logger"
)

// Service provides business operations for the inventory ledger.
type Service struct {
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddLot appends a new lot of received stock.
func (s *Service) AddLot(ctx context.Context, item string, units int64, ratePerUnit types.Money) (*Lot, error) {
	if units <= 0 {
		return nil, apperror.NewValidation("units must be positive").
			WithDetail("field", "units").
			WithDetail("value", units)
	}
	if ratePerUnit.IsNegative() {
		return nil, apperror.NewValidation("rate per unit cannot be negative").
			WithDetail("field", "ratePerUnit")
	}

	lot := &Lot{
		ID:          id.New(),
		Item:        item,
		Units:       units,
		RatePerUnit: ratePerUnit,
		CreatedOn:   time.Now().UTC(),
	}
	if err := s.repo.CreateLot(ctx, lot); err != nil {
		return nil, err
	}

	logger.Info(ctx, "inventory lot added",
		"item", lot.Item,
		"units", lot.Units,
		"rate_per_unit", lot.RatePerUnit)

	return lot, nil
}

// AvailableUnits returns total units on hand for an item.
func (s *Service) AvailableUnits(ctx context.Context, item string) (int64, error) {
	return s.repo.AvailableUnits(ctx, item)
}

// Deplete consumes quantity units of an item, oldest lot first.
//
// Lots are walked in created_on, id order: a lot holding more than the
// remaining quantity is decremented; a smaller lot is deleted outright and
// its units subtracted. If the lots run out before the quantity is covered,
// an INSUFFICIENT_STOCK error carrying the shortfall is returned.
//
// Deplete must run inside the caller's transaction: the row locks taken by
// LotsForUpdate and the rollback of partial decrements on failure both
// depend on it. It is the settlement engine's job to wrap the whole
// multi-line sequence in one serializable transaction.
func (s *Service) Deplete(ctx context.Context, item string, quantity int64) error {
	if quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity").
			WithDetail("value", quantity)
	}

	lots, err := s.repo.LotsForUpdate(ctx, item)
	if err != nil {
		return err
	}

	remaining := quantity
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		if lot.Units > remaining {
			if err := s.repo.SetLotUnits(ctx, lot.ID, lot.Units-remaining); err != nil {
				return err
			}
			remaining = 0
		} else {
			if err := s.repo.DeleteLot(ctx, lot.ID); err != nil {
				return err
			}
			remaining -= lot.Units
		}
	}

	if remaining > 0 {
		return apperror.NewInsufficientStock(item, quantity, remaining)
	}

	return nil
}

// StockSummary returns on-hand units and catalog price per item.
func (s *Service) StockSummary(ctx context.Context) ([]StockRow, error) {
	return s.repo.StockSummary(ctx)
}
