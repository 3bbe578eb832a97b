// Package billing provides the bill settlement engine: it converts a
// requested sale into committed inventory depletion plus a permanent bill
// record, all-or-nothing.
package billing

import (
	"time"

	"medikos/internal/core/id"
	"medikos/internal/core/types"
)

// Bill is a committed retail sale. Created exactly once per settlement
// transaction; never mutated afterwards.
type Bill struct {
	BillNo    string      `db:"bill_no" json:"billNo"`
	CreatedOn time.Time   `db:"created_on" json:"createdOn"`
	Discount  types.Money `db:"discount" json:"discount"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// BillItem is one line of a bill. The price is frozen at the catalog value
// read during validation, so a later catalog change never alters a recorded
// bill. A BillItem never outlives its Bill.
type BillItem struct {
	ID          id.ID       `db:"id" json:"id"`
	BillNo      string      `db:"bill_no" json:"billNo"`
	Item        string      `db:"item" json:"item"`
	Quantity    int64       `db:"quantity" json:"quantity"`
	MRPPerUnit  types.Money `db:"mrp_per_unit" json:"mrpPerUnit"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
}

// LineItem is one requested sale line.
type LineItem struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
}

// Summary is one row of the bill list.
type Summary struct {
	BillNo    string      `db:"bill_no" json:"billNo"`
	CreatedOn time.Time   `db:"created_on" json:"createdOn"`
	ItemCount int64       `db:"item_count" json:"itemCount"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// Details is the full view of one bill.
type Details struct {
	Items    []BillItem  `json:"items"`
	Discount types.Money `json:"discount"`
}
