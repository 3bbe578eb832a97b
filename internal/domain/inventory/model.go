// Package inventory provides the inventory ledger: a set of lots, each
// recording an item, a quantity of units and the per-unit wholesale cost of
// one received batch.
package inventory

import (
	"time"

	"medikos/internal/core/id"
	"medikos/internal/core/types"
)

// Lot is one batch of inventory units sharing a single acquisition cost,
// created by one shipment line. A lot whose units reach zero is deleted,
// never retained at zero.
type Lot struct {
	ID          id.ID       `db:"id" json:"id"`
	Item        string      `db:"item" json:"item"`
	Units       int64       `db:"units" json:"units"`
	RatePerUnit types.Money `db:"rate_per_unit" json:"ratePerUnit"`
	CreatedOn   time.Time   `db:"created_on" json:"createdOn"`
}

// StockRow is one line of the on-hand stock summary: an item, the total units
// across all of its lots, and its current catalog price.
type StockRow struct {
	Item       string      `db:"item" json:"item"`
	Units      int64       `db:"units" json:"units"`
	MRPPerUnit types.Money `db:"mrp_per_unit" json:"mrpPerUnit"`
}
