// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"medikos/internal/domain/billing"
	"medikos/internal/domain/catalog"
	"medikos/internal/domain/inventory"
	"medikos/internal/domain/shipment"
	"medikos/internal/infrastructure/http/v1/handlers"
	"medikos/internal/infrastructure/http/v1/middleware"
	"medikos/internal/infrastructure/storage/postgres"
	"medikos/pkg/logger"
)

// RouterConfig holds the dependencies the router wires together.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	CatalogService   *catalog.Service
	InventoryService *inventory.Service
	ShipmentService  *shipment.Service
	BillingService   *billing.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	shipmentHandler := handlers.NewShipmentHandler(cfg.ShipmentService)
	billHandler := handlers.NewBillHandler(cfg.BillingService)
	stockHandler := handlers.NewStockHandler(cfg.InventoryService, cfg.CatalogService)

	v1 := router.Group("/api/v1")
	{
		shipments := v1.Group("/shipments")
		{
			shipments.POST("", shipmentHandler.Record)
			shipments.GET("/invoices", shipmentHandler.Invoices)
			shipments.GET("/invoices/:invoiceNo", shipmentHandler.InvoiceLines)
		}

		bills := v1.Group("/bills")
		{
			bills.POST("", billHandler.Settle)
			bills.GET("", billHandler.List)
			bills.GET("/:billNo", billHandler.Details)
		}

		v1.GET("/stock", stockHandler.Stock)
		v1.GET("/items", stockHandler.Items)
	}

	return router
}
