package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"medikos/internal/core/apperror"
	"medikos/internal/core/types"
	"medikos/internal/domain/catalog"
)

const itemsTable = "items"

// Compile-time check that ItemRepo implements catalog.Repository.
var _ catalog.Repository = (*ItemRepo)(nil)

// ItemRepo is the PostgreSQL implementation of the item catalog storage.
type ItemRepo struct {
	txManager *TxManager
	builder   sq.StatementBuilderType
}

// NewItemRepo creates a new catalog repository.
func NewItemRepo(txManager *TxManager) *ItemRepo {
	return &ItemRepo{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ItemRepo) GetByName(ctx context.Context, name string) (*catalog.Item, error) {
	query, args, err := r.builder.
		Select("id", "item", "mrp_per_unit", "created_at", "updated_at").
		From(itemsTable).
		Where(sq.Eq{"item": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var item catalog.Item
	q := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, q, &item, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("item", name)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &item, nil
}

func (r *ItemRepo) Create(ctx context.Context, item *catalog.Item) error {
	query, args, err := r.builder.
		Insert(itemsTable).
		Columns("id", "item", "mrp_per_unit", "created_at", "updated_at").
		Values(item.ID, item.Name, item.MRPPerUnit, item.CreatedAt, item.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	q := r.txManager.GetQuerier(ctx)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate(fmt.Sprintf("item %q", item.Name))
		}
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

func (r *ItemRepo) UpdatePrice(ctx context.Context, name string, mrpPerUnit types.Money) error {
	query, args, err := r.builder.
		Update(itemsTable).
		Set("mrp_per_unit", mrpPerUnit).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"item": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	q := r.txManager.GetQuerier(ctx)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("item", name)
	}

	return nil
}

func (r *ItemRepo) List(ctx context.Context) ([]catalog.Item, error) {
	query, args, err := r.builder.
		Select("id", "item", "mrp_per_unit", "created_at", "updated_at").
		From(itemsTable).
		OrderBy("item ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []catalog.Item
	q := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}
