package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"medikos/internal/core/apperror"
	"medikos/internal/domain/billing"
)

const (
	billsTable     = "bills"
	billItemsTable = "bill_items"
)

// Compile-time check that BillRepo implements billing.Repository.
var _ billing.Repository = (*BillRepo)(nil)

// BillRepo is the PostgreSQL implementation of the bill storage.
type BillRepo struct {
	txManager *TxManager
	builder   sq.StatementBuilderType
}

// NewBillRepo creates a new bill repository.
func NewBillRepo(txManager *TxManager) *BillRepo {
	return &BillRepo{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *BillRepo) CreateBill(ctx context.Context, bill *billing.Bill) error {
	query, args, err := r.builder.
		Insert(billsTable).
		Columns("bill_no", "created_on", "discount", "amount").
		Values(bill.BillNo, bill.CreatedOn, bill.Discount, bill.Amount).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	q := r.txManager.GetQuerier(ctx)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate(fmt.Sprintf("bill %s", bill.BillNo))
		}
		return fmt.Errorf("insert bill: %w", err)
	}

	return nil
}

func (r *BillRepo) CreateItems(ctx context.Context, items []billing.BillItem) error {
	if len(items) == 0 {
		return nil
	}

	b := r.builder.
		Insert(billItemsTable).
		Columns("id", "bill_no", "item", "quantity", "mrp_per_unit", "total_amount")
	for _, item := range items {
		b = b.Values(item.ID, item.BillNo, item.Item, item.Quantity, item.MRPPerUnit, item.TotalAmount)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	q := r.txManager.GetQuerier(ctx)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert bill items: %w", err)
	}

	return nil
}

func (r *BillRepo) ListBills(ctx context.Context) ([]billing.Summary, error) {
	query, args, err := r.builder.
		Select(
			"b.bill_no",
			"b.created_on",
			"COUNT(bi.id) AS item_count",
			"b.amount",
		).
		From(billsTable + " b").
		LeftJoin(billItemsTable + " bi ON bi.bill_no = b.bill_no").
		GroupBy("b.bill_no", "b.created_on", "b.amount").
		OrderBy("b.created_on DESC", "b.bill_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var summaries []billing.Summary
	q := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	return summaries, nil
}

func (r *BillRepo) GetBill(ctx context.Context, billNo string) (*billing.Bill, error) {
	query, args, err := r.builder.
		Select("bill_no", "created_on", "discount", "amount").
		From(billsTable).
		Where(sq.Eq{"bill_no": billNo}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var bill billing.Bill
	q := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, q, &bill, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("bill", billNo)
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}

	return &bill, nil
}

func (r *BillRepo) GetItems(ctx context.Context, billNo string) ([]billing.BillItem, error) {
	query, args, err := r.builder.
		Select("id", "bill_no", "item", "quantity", "mrp_per_unit", "total_amount").
		From(billItemsTable).
		Where(sq.Eq{"bill_no": billNo}).
		OrderBy("item ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []billing.BillItem
	q := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &items, query, args...); err != nil {
		return nil, fmt.Errorf("get bill items: %w", err)
	}

	return items, nil
}
