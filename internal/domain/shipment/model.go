// Package shipment provides the shipment recorder: an append-only ledger of
// received stock events that feeds the item catalog and the inventory ledger.
package shipment

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"medikos/internal/core/apperror"
	"medikos/internal/core/id"
	"medikos/internal/core/types"
)

// Shipment is one received shipment line. Quantities are in packs; the
// derived per-unit figures feed the catalog and the inventory ledger.
// Immutable once created.
type Shipment struct {
	ID        id.ID       `db:"id" json:"id"`
	InvoiceNo string      `db:"invoice_no" json:"invoiceNo"`
	CreatedOn time.Time   `db:"created_on" json:"createdOn"`
	Quantity  int64       `db:"quantity" json:"quantity"`
	Bonus     *int64      `db:"bonus" json:"bonus,omitempty"`
	PackOf    int64       `db:"pack_of" json:"packOf"`
	Item      string      `db:"item" json:"item"`
	MRP       types.Money `db:"mrp" json:"mrp"`
	Rate      types.Money `db:"rate" json:"rate"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// Input is one shipment line as submitted by the caller.
type Input struct {
	InvoiceNo string      `json:"invoice_no"`
	Quantity  int64       `json:"quantity"`
	Bonus     *int64      `json:"bonus,omitempty"`
	PackOf    int64       `json:"pack_of"`
	Item      string      `json:"item"`
	MRP       types.Money `json:"mrp"`
	Rate      types.Money `json:"rate"`
}

// TotalQuantity is paid packs plus bonus packs.
func (in Input) TotalQuantity() int64 {
	if in.Bonus != nil {
		return in.Quantity + *in.Bonus
	}
	return in.Quantity
}

// TotalUnits is the number of sellable units the shipment adds to inventory.
func (in Input) TotalUnits() int64 {
	return in.TotalQuantity() * in.PackOf
}

// RatePerUnit is the wholesale cost of one sellable unit.
func (in Input) RatePerUnit() types.Money {
	return in.Rate.Div(decimal.NewFromInt(in.PackOf))
}

// MRPPerUnit is the retail price of one sellable unit.
func (in Input) MRPPerUnit() types.Money {
	return in.MRP.Div(decimal.NewFromInt(in.PackOf))
}

// Amount is what the supplier charged: rate times paid packs.
// Bonus packs are free and do not enter the amount.
func (in Input) Amount() types.Money {
	return in.Rate.Mul(decimal.NewFromInt(in.Quantity))
}

// Validate checks every field and reports all violated fields at once,
// so the caller can correct the whole line in one pass.
func (in Input) Validate(ctx context.Context) error {
	var fields []string

	if strings.TrimSpace(in.InvoiceNo) == "" {
		fields = append(fields, "invoice_no")
	}
	if in.Quantity < 0 {
		fields = append(fields, "quantity")
	}
	if in.Bonus != nil && *in.Bonus < 0 {
		fields = append(fields, "bonus")
	}
	if in.PackOf <= 0 {
		fields = append(fields, "pack_of")
	}
	if strings.TrimSpace(in.Item) == "" {
		fields = append(fields, "item")
	}
	if !in.MRP.IsPositive() {
		fields = append(fields, "mrp")
	}
	if !in.Rate.IsPositive() {
		fields = append(fields, "rate")
	}

	if len(fields) > 0 {
		return apperror.NewValidation("missing or invalid fields").
			WithDetail("fields", fields)
	}
	return nil
}

// InvoiceSummary aggregates the shipment lines recorded under one invoice.
type InvoiceSummary struct {
	InvoiceNo string      `db:"invoice_no" json:"invoiceNo"`
	CreatedOn time.Time   `db:"created_on" json:"createdOn"`
	ItemCount int64       `db:"item_count" json:"itemCount"`
	Amount    types.Money `db:"amount" json:"amount"`
}
