package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"medikos/internal/core/apperror"
	"medikos/internal/core/billno"
	"medikos/internal/core/id"
	"medikos/internal/core/tx"
	"medikos/internal/core/types"
	"medikos/internal/domain/catalog"
	"medikos/internal/domain/inventory"
	"medikos/pkg/logger"
)

// Service is the bill settlement engine.
//
// Settle runs three phases: validating (resolve and freeze catalog prices,
// check the discount), depleting (consume inventory lots per line) and
// committing (insert the bill and its items). Depleting and committing share
// one serializable transaction, so a failure at any point leaves zero net
// effect on the inventory ledger and the bill tables.
type Service struct {
	repo      Repository
	catalog   *catalog.Service
	inventory *inventory.Service
	txManager tx.Manager
}

// NewService creates a new settlement engine.
func NewService(repo Repository, catalogSvc *catalog.Service, inventorySvc *inventory.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalogSvc,
		inventory: inventorySvc,
		txManager: txManager,
	}
}

// Settle bills the given line items at catalog prices, deducting inventory
// oldest lot first. Returns the new bill number on success.
//
// Line items are processed in caller order; if several items are short, the
// first one in that order is the one reported. The whole operation is
// all-or-nothing: on any failure no stock reduction and no bill row survives.
func (s *Service) Settle(ctx context.Context, lines []LineItem, discount types.Money) (string, error) {
	// --- validating ---

	if len(lines) == 0 {
		return "", apperror.NewValidation("bill must contain at least one item")
	}
	if discount.IsNegative() {
		return "", apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discount")
	}

	items := make([]BillItem, 0, len(lines))
	total := types.Zero()
	for i, line := range lines {
		name := catalog.NormalizeName(line.Item)
		if name == "" {
			return "", apperror.NewValidation("item name is required").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return "", apperror.NewValidation("quantity must be a positive integer").
				WithDetail("lineNo", i+1).
				WithDetail("item", name)
		}

		// Freeze the price here: a concurrent catalog change must never
		// alter an in-flight bill.
		price, err := s.catalog.GetPrice(ctx, name)
		if err != nil {
			if apperror.IsNotFound(err) {
				return "", apperror.NewUnknownItem(name)
			}
			return "", err
		}

		lineTotal := price.Mul(decimal.NewFromInt(line.Quantity))
		items = append(items, BillItem{
			ID:          id.New(),
			Item:        name,
			Quantity:    line.Quantity,
			MRPPerUnit:  price,
			TotalAmount: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	amount := total.Sub(discount)
	if amount.IsNegative() {
		return "", apperror.NewValidation("discount exceeds bill total").
			WithDetail("total", total).
			WithDetail("discount", discount)
	}

	// --- depleting + committing, one serializable transaction ---

	no := billno.New()

	err := s.txManager.RunSerializable(ctx, func(ctx context.Context) error {
		for _, item := range items {
			if err := s.inventory.Deplete(ctx, item.Item, item.Quantity); err != nil {
				return err
			}
		}

		// Header first: bill items reference the bill number.
		if err := s.repo.CreateBill(ctx, &Bill{
			BillNo:    no,
			CreatedOn: time.Now().UTC(),
			Discount:  discount,
			Amount:    amount,
		}); err != nil {
			return err
		}

		for i := range items {
			items[i].BillNo = no
		}
		return s.repo.CreateItems(ctx, items)
	})
	if err != nil {
		return "", err
	}

	logger.Info(ctx, "bill settled",
		"bill_no", no,
		"items", len(items),
		"amount", amount,
		"discount", discount)

	return no, nil
}

// ListBills returns bill summaries, newest first.
func (s *Service) ListBills(ctx context.Context) ([]Summary, error) {
	return s.repo.ListBills(ctx)
}

// GetDetails returns the line items and discount of one bill.
func (s *Service) GetDetails(ctx context.Context, billNo string) (*Details, error) {
	bill, err := s.repo.GetBill(ctx, billNo)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, billNo)
	if err != nil {
		return nil, err
	}

	return &Details{Items: items, Discount: bill.Discount}, nil
}
