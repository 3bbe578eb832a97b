package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medikos/internal/domain/shipment"
	"medikos/internal/infrastructure/http/v1/dto"
)

// ShipmentHandler serves the shipment recorder endpoints.
type ShipmentHandler struct {
	*BaseHandler
	service *shipment.Service
}

// NewShipmentHandler creates a new shipment handler.
func NewShipmentHandler(service *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Record handles a batch shipment submission.
// POST /api/v1/shipments
//
// Returns 200 with per-line results even when some lines fail: the client
// inspects success/warnings/errors to learn the fate of each line.
func (h *ShipmentHandler) Record(c *gin.Context) {
	var req dto.RecordShipmentsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.RecordBatch(c.Request.Context(), req.ToInputs())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Invoices lists per-invoice shipment summaries.
// GET /api/v1/shipments/invoices
func (h *ShipmentHandler) Invoices(c *gin.Context) {
	summaries, err := h.service.InvoiceSummaries(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoiceSummaries(summaries))
}

// InvoiceLines lists all shipment lines recorded under one invoice.
// GET /api/v1/shipments/invoices/:invoiceNo
func (h *ShipmentHandler) InvoiceLines(c *gin.Context) {
	shipments, err := h.service.ListByInvoice(c.Request.Context(), c.Param("invoiceNo"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromShipments(shipments))
}
