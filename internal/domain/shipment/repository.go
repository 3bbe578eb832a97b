package shipment

import (
	"context"
)

// Repository defines storage operations for the shipment ledger.
type Repository interface {
	// Create inserts a shipment row. The storage enforces uniqueness on the
	// full tuple (invoice_no, created_on, quantity, bonus, pack_of, item,
	// mrp, rate, amount); an exact re-submission returns
	// apperror.CodeDuplicate.
	Create(ctx context.Context, sh *Shipment) error

	// ListByInvoice returns all shipment lines recorded under an invoice,
	// oldest first.
	ListByInvoice(ctx context.Context, invoiceNo string) ([]Shipment, error)

	// InvoiceSummaries returns per-invoice line counts and amounts,
	// newest first.
	InvoiceSummaries(ctx context.Context) ([]InvoiceSummary, error)
}
