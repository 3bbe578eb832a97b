package dto

import (
	"time"

	"medikos/internal/core/types"
	"medikos/internal/domain/shipment"
)

// ShipmentLineRequest is one shipment line as submitted by the client.
// No binding tags: lines are validated individually by the domain layer so
// that one bad line never rejects the whole batch.
type ShipmentLineRequest struct {
	InvoiceNo string      `json:"invoice_no"`
	Quantity  int64       `json:"quantity"`
	Bonus     *int64      `json:"bonus"`
	PackOf    int64       `json:"pack_of"`
	Item      string      `json:"item"`
	MRP       types.Money `json:"mrp"`
	Rate      types.Money `json:"rate"`
}

// ToInput converts the request line to the domain input.
func (r ShipmentLineRequest) ToInput() shipment.Input {
	return shipment.Input{
		InvoiceNo: r.InvoiceNo,
		Quantity:  r.Quantity,
		Bonus:     r.Bonus,
		PackOf:    r.PackOf,
		Item:      r.Item,
		MRP:       r.MRP,
		Rate:      r.Rate,
	}
}

// RecordShipmentsRequest is a batch of shipment lines.
type RecordShipmentsRequest struct {
	Shipments []ShipmentLineRequest `json:"shipments"`
}

// ToInputs converts all request lines.
func (r RecordShipmentsRequest) ToInputs() []shipment.Input {
	inputs := make([]shipment.Input, 0, len(r.Shipments))
	for _, line := range r.Shipments {
		inputs = append(inputs, line.ToInput())
	}
	return inputs
}

// ShipmentResponse is one recorded shipment row.
type ShipmentResponse struct {
	ID        string      `json:"id"`
	InvoiceNo string      `json:"invoice_no"`
	CreatedOn string      `json:"created_on"`
	Quantity  int64       `json:"quantity"`
	Bonus     *int64      `json:"bonus,omitempty"`
	PackOf    int64       `json:"pack_of"`
	Item      string      `json:"item"`
	MRP       types.Money `json:"mrp"`
	Rate      types.Money `json:"rate"`
	Amount    types.Money `json:"amount"`
}

// FromShipment creates ShipmentResponse from a domain shipment.
func FromShipment(sh shipment.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:        sh.ID.String(),
		InvoiceNo: sh.InvoiceNo,
		CreatedOn: sh.CreatedOn.Format(time.DateOnly),
		Quantity:  sh.Quantity,
		Bonus:     sh.Bonus,
		PackOf:    sh.PackOf,
		Item:      sh.Item,
		MRP:       sh.MRP,
		Rate:      sh.Rate,
		Amount:    sh.Amount,
	}
}

// FromShipments converts a slice of domain shipments.
func FromShipments(shipments []shipment.Shipment) []ShipmentResponse {
	out := make([]ShipmentResponse, 0, len(shipments))
	for _, sh := range shipments {
		out = append(out, FromShipment(sh))
	}
	return out
}

// InvoiceSummaryResponse is one row of the invoice list.
type InvoiceSummaryResponse struct {
	InvoiceNo string      `json:"invoice_no"`
	CreatedOn string      `json:"created_on"`
	ItemCount int64       `json:"item_count"`
	Amount    types.Money `json:"amount"`
}

// FromInvoiceSummaries converts domain invoice summaries.
func FromInvoiceSummaries(summaries []shipment.InvoiceSummary) []InvoiceSummaryResponse {
	out := make([]InvoiceSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, InvoiceSummaryResponse{
			InvoiceNo: s.InvoiceNo,
			CreatedOn: s.CreatedOn.Format(time.DateOnly),
			ItemCount: s.ItemCount,
			Amount:    s.Amount,
		})
	}
	return out
}
