package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medikos/internal/domain/catalog"
	"medikos/internal/domain/inventory"
	"medikos/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the read-only stock and catalog endpoints.
type StockHandler struct {
	*BaseHandler
	inventory *inventory.Service
	catalog   *catalog.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(inventorySvc *inventory.Service, catalogSvc *catalog.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: NewBaseHandler(),
		inventory:   inventorySvc,
		catalog:     catalogSvc,
	}
}

// Stock returns on-hand units and catalog price per item.
// GET /api/v1/stock
func (h *StockHandler) Stock(c *gin.Context) {
	rows, err := h.inventory.StockSummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStockRows(rows))
}

// Items returns all catalog items with their current prices.
// GET /api/v1/items
func (h *StockHandler) Items(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromItems(items))
}
