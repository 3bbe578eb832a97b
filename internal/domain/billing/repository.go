package billing

import (
	"context"
)

// Repository defines storage operations for bills.
type Repository interface {
	// CreateBill inserts the bill header row.
	CreateBill(ctx context.Context, bill *Bill) error

	// CreateItems batch-inserts the bill's line items.
	CreateItems(ctx context.Context, items []BillItem) error

	// ListBills returns bill summaries, newest first.
	ListBills(ctx context.Context) ([]Summary, error)

	// GetBill retrieves a bill header.
	// Returns apperror.CodeNotFound if the bill number is unknown.
	GetBill(ctx context.Context, billNo string) (*Bill, error)

	// GetItems retrieves the line items of a bill.
	GetItems(ctx context.Context, billNo string) ([]BillItem, error)
}
