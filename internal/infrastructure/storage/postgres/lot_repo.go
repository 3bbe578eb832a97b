package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"medikos/internal/core/apperror"
	"medikos/internal/core/id"
	"medikos/internal/domain/inventory"
)

const lotsTable = "inventory_lots"

// Compile-time check that LotRepo implements inventory.Repository.
var _ inventory.Repository = (*LotRepo)(nil)

// LotRepo is the PostgreSQL implementation of the inventory ledger storage.
type LotRepo struct {
	txManager *TxManager
	builder   sq.StatementBuilderType
}

// NewLotRepo creates a new inventory repository.
func NewLotRepo(txManager *TxManager) *LotRepo {
	return &LotRepo{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *LotRepo) CreateLot(ctx context.Context, lot *inventory.Lot) error {
	query, args, err := r.builder.
		Insert(lotsTable).
		Columns("id", "item", "units", "rate_per_unit", "created_on").
		Values(lot.ID, lot.Item, lot.Units, lot.RatePerUnit, lot.CreatedOn).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	q := r.txManager.GetQuerier(ctx)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}

	return nil
}

// LotsForUpdate returns the item's lots in depletion order and locks them
// against concurrent depleters for the life of the surrounding transaction.
func (r *LotRepo) LotsForUpdate(ctx context.Context, item string) ([]inventory.Lot, error) {
	query, args, err := r.builder.
		Select("id", "item", "units", "rate_per_unit", "created_on").
		From(lotsTable).
		Where(sq.Eq{"item": item}).
		OrderBy("created_on ASC", "id ASC").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lots []inventory.Lot
	q := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &lots, query, args...); err != nil {
		return nil, fmt.Errorf("lock lots: %w", err)
	}

	return lots, nil
}

func (r *LotRepo) SetLotUnits(ctx context.Context, lotID id.ID, units int64) error {
	query, args, err := r.builder.
		Update(lotsTable).
		Set("units", units).
		Where(sq.Eq{"id": lotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	q := r.txManager.GetQuerier(ctx)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update lot units: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("lot", lotID.String())
	}

	return nil
}

func (r *LotRepo) DeleteLot(ctx context.Context, lotID id.ID) error {
	query, args, err := r.builder.
		Delete(lotsTable).
		Where(sq.Eq{"id": lotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	q := r.txManager.GetQuerier(ctx)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}

	return nil
}

func (r *LotRepo) AvailableUnits(ctx context.Context, item string) (int64, error) {
	query, args, err := r.builder.
		Select("COALESCE(SUM(units), 0)").
		From(lotsTable).
		Where(sq.Eq{"item": item}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var units int64
	q := r.txManager.GetQuerier(ctx)
	if err := q.QueryRow(ctx, query, args...).Scan(&units); err != nil {
		return 0, fmt.Errorf("sum units: %w", err)
	}

	return units, nil
}

func (r *LotRepo) StockSummary(ctx context.Context) ([]inventory.StockRow, error) {
	query, args, err := r.builder.
		Select("l.item", "SUM(l.units) AS units", "i.mrp_per_unit").
		From(lotsTable + " l").
		Join(itemsTable + " i ON i.item = l.item").
		GroupBy("l.item", "i.mrp_per_unit").
		OrderBy("l.item ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []inventory.StockRow
	q := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}

	return rows, nil
}
