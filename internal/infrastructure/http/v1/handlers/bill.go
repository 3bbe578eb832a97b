package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medikos/internal/domain/billing"
	"medikos/internal/infrastructure/http/v1/dto"
)

// BillHandler serves the bill settlement endpoints.
type BillHandler struct {
	*BaseHandler
	service *billing.Service
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(service *billing.Service) *BillHandler {
	return &BillHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Settle settles a new bill.
// POST /api/v1/bills
func (h *BillHandler) Settle(c *gin.Context) {
	var req dto.SettleBillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	billNo, err := h.service.Settle(c.Request.Context(), req.ToLineItems(), req.Discount)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SettleBillResponse{BillNo: billNo})
}

// List lists bill summaries, newest first.
// GET /api/v1/bills
func (h *BillHandler) List(c *gin.Context) {
	summaries, err := h.service.ListBills(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBillSummaries(summaries))
}

// Details returns the line items and discount of one bill.
// GET /api/v1/bills/:billNo
func (h *BillHandler) Details(c *gin.Context) {
	details, err := h.service.GetDetails(c.Request.Context(), c.Param("billNo"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBillDetails(details))
}
