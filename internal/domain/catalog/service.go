package catalog

import (
	"context"
	"time"

	"medikos/internal/core/apperror"
	"medikos/internal/core/id"
	"medikos/internal/core/types"
	"medikos/pkg/logger"
)

// UpsertOutcome signals whether an upsert created a new item or repriced an
// existing one. Re-submitting an existing name with a new price is a
// legitimate update, not an error.
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
)

// Service provides business operations for the item catalog.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert inserts the item if its name is unknown, otherwise overwrites its
// current MRP with the new value (silent repricing).
func (s *Service) Upsert(ctx context.Context, name string, mrpPerUnit types.Money) (UpsertOutcome, error) {
	item := &Item{
		ID:         id.New(),
		Name:       NormalizeName(name),
		MRPPerUnit: mrpPerUnit,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := item.Validate(ctx); err != nil {
		return "", err
	}

	existing, err := s.repo.GetByName(ctx, item.Name)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return "", err
		}
		if err := s.repo.Create(ctx, item); err != nil {
			return "", err
		}
		logger.Info(ctx, "catalog item created", "item", item.Name, "mrp_per_unit", item.MRPPerUnit)
		return OutcomeCreated, nil
	}

	if err := s.repo.UpdatePrice(ctx, existing.Name, mrpPerUnit); err != nil {
		return "", err
	}
	logger.Debug(ctx, "catalog item repriced", "item", existing.Name, "mrp_per_unit", mrpPerUnit)
	return OutcomeUpdated, nil
}

// GetPrice returns the current MRP per unit for an item name.
// Returns apperror.CodeNotFound if the item is not in the catalog.
func (s *Service) GetPrice(ctx context.Context, name string) (types.Money, error) {
	item, err := s.repo.GetByName(ctx, NormalizeName(name))
	if err != nil {
		return types.Zero(), err
	}
	return item.MRPPerUnit, nil
}

// List returns all catalog items.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}
