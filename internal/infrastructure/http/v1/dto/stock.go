package dto

import (
	"medikos/internal/core/types"
	"medikos/internal/domain/catalog"
	"medikos/internal/domain/inventory"
)

// StockRowResponse is one line of the on-hand stock report.
type StockRowResponse struct {
	Item       string      `json:"item"`
	Units      int64       `json:"units"`
	MRPPerUnit types.Money `json:"mrp_per_unit"`
}

// FromStockRows converts domain stock rows.
func FromStockRows(rows []inventory.StockRow) []StockRowResponse {
	out := make([]StockRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, StockRowResponse{
			Item:       row.Item,
			Units:      row.Units,
			MRPPerUnit: row.MRPPerUnit,
		})
	}
	return out
}

// ItemResponse is one catalog item.
type ItemResponse struct {
	Item       string      `json:"item"`
	MRPPerUnit types.Money `json:"mrp_per_unit"`
}

// FromItems converts catalog items.
func FromItems(items []catalog.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ItemResponse{
			Item:       item.Name,
			MRPPerUnit: item.MRPPerUnit,
		})
	}
	return out
}
