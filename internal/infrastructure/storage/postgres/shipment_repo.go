package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"medikos/internal/core/apperror"
	"medikos/internal/domain/shipment"
)

const shipmentsTable = "shipments"

// Compile-time check that ShipmentRepo implements shipment.Repository.
var _ shipment.Repository = (*ShipmentRepo)(nil)

// ShipmentRepo is the PostgreSQL implementation of the shipment ledger.
type ShipmentRepo struct {
	txManager *TxManager
	builder   sq.StatementBuilderType
}

// NewShipmentRepo creates a new shipment repository.
func NewShipmentRepo(txManager *TxManager) *ShipmentRepo {
	return &ShipmentRepo{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ShipmentRepo) Create(ctx context.Context, sh *shipment.Shipment) error {
	query, args, err := r.builder.
		Insert(shipmentsTable).
		Columns("id", "invoice_no", "created_on", "quantity", "bonus", "pack_of", "item", "mrp", "rate", "amount").
		Values(sh.ID, sh.InvoiceNo, sh.CreatedOn, sh.Quantity, sh.Bonus, sh.PackOf, sh.Item, sh.MRP, sh.Rate, sh.Amount).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	q := r.txManager.GetQuerier(ctx)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate(fmt.Sprintf("shipment of %q on invoice %s", sh.Item, sh.InvoiceNo))
		}
		return fmt.Errorf("insert shipment: %w", err)
	}

	return nil
}

func (r *ShipmentRepo) ListByInvoice(ctx context.Context, invoiceNo string) ([]shipment.Shipment, error) {
	query, args, err := r.builder.
		Select("id", "invoice_no", "created_on", "quantity", "bonus", "pack_of", "item", "mrp", "rate", "amount").
		From(shipmentsTable).
		Where(sq.Eq{"invoice_no": invoiceNo}).
		OrderBy("created_on ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var shipments []shipment.Shipment
	q := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &shipments, query, args...); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	return shipments, nil
}

func (r *ShipmentRepo) InvoiceSummaries(ctx context.Context) ([]shipment.InvoiceSummary, error) {
	query, args, err := r.builder.
		Select(
			"invoice_no",
			"MAX(created_on) AS created_on",
			"COUNT(*) AS item_count",
			"SUM(amount) AS amount",
		).
		From(shipmentsTable).
		GroupBy("invoice_no").
		OrderBy("MAX(created_on) DESC", "invoice_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var summaries []shipment.InvoiceSummary
	q := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("summarize invoices: %w", err)
	}

	return summaries, nil
}
