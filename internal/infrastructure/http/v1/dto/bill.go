package dto

import (
	"time"

	"medikos/internal/core/types"
	"medikos/internal/domain/billing"
)

// BillItemRequest is one requested sale line.
// MRPPerUnit is accepted for backward compatibility with older clients but
// ignored: the settlement engine always charges the catalog price read
// during validation.
type BillItemRequest struct {
	Item       string       `json:"item"`
	Quantity   int64        `json:"quantity"`
	MRPPerUnit *types.Money `json:"mrp_per_unit,omitempty"`
}

// SettleBillRequest is the body of a settlement request.
type SettleBillRequest struct {
	Items    []BillItemRequest `json:"items"`
	Discount types.Money       `json:"discount"`
}

// ToLineItems converts the request to domain line items.
func (r SettleBillRequest) ToLineItems() []billing.LineItem {
	lines := make([]billing.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, billing.LineItem{
			Item:     item.Item,
			Quantity: item.Quantity,
		})
	}
	return lines
}

// SettleBillResponse carries the generated bill number.
type SettleBillResponse struct {
	BillNo string `json:"bill_no"`
}

// BillSummaryResponse is one row of the bill list.
type BillSummaryResponse struct {
	BillNo    string      `json:"bill_no"`
	CreatedOn time.Time   `json:"created_on"`
	ItemCount int64       `json:"item_count"`
	Amount    types.Money `json:"amount"`
}

// FromBillSummaries converts domain bill summaries.
func FromBillSummaries(summaries []billing.Summary) []BillSummaryResponse {
	out := make([]BillSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, BillSummaryResponse{
			BillNo:    s.BillNo,
			CreatedOn: s.CreatedOn,
			ItemCount: s.ItemCount,
			Amount:    s.Amount,
		})
	}
	return out
}

// BillItemResponse is one line of a bill's details.
type BillItemResponse struct {
	Item        string      `json:"item"`
	Quantity    int64       `json:"quantity"`
	MRPPerUnit  types.Money `json:"mrp_per_unit"`
	TotalAmount types.Money `json:"total_amount"`
}

// BillDetailsResponse is the full view of one bill.
type BillDetailsResponse struct {
	Items    []BillItemResponse `json:"items"`
	Discount types.Money        `json:"discount"`
}

// FromBillDetails converts domain bill details.
func FromBillDetails(d *billing.Details) BillDetailsResponse {
	items := make([]BillItemResponse, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, BillItemResponse{
			Item:        item.Item,
			Quantity:    item.Quantity,
			MRPPerUnit:  item.MRPPerUnit,
			TotalAmount: item.TotalAmount,
		})
	}
	return BillDetailsResponse{
		Items:    items,
		Discount: d.Discount,
	}
}
