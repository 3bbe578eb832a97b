package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medikos/internal/core/apperror"
	"medikos/internal/domain/billing"
	"medikos/internal/domain/catalog"
	"medikos/internal/domain/inventory"
	"medikos/internal/domain/shipment"
	v1 "medikos/internal/infrastructure/http/v1"
	"medikos/internal/infrastructure/storage/memory"
	"medikos/pkg/logger"
)

func newTestRouter() *gin.Engine {
	store := memory.NewStore()
	catalogSvc := catalog.NewService(store.Items())
	inventorySvc := inventory.NewService(store.Lots())
	shipmentSvc := shipment.NewService(store.Shipments(), catalogSvc, inventorySvc, store)
	billingSvc := billing.NewService(store.Bills(), catalogSvc, inventorySvc, store)

	return v1.NewRouter(v1.RouterConfig{
		Logger:           logger.Default(),
		CatalogService:   catalogSvc,
		InventoryService: inventorySvc,
		ShipmentService:  shipmentSvc,
		BillingService:   billingSvc,
	})
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const shipmentBody = `{
	"shipments": [
		{"invoice_no": "INV-1", "quantity": 9, "pack_of": 10, "item": "Paracetamol", "mrp": 21, "rate": 31}
	]
}`

func TestShipmentAndStockFlow(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, http.MethodPost, "/api/v1/shipments", shipmentBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Success  []json.RawMessage `json:"success"`
		Warnings []json.RawMessage `json:"warnings"`
		Errors   []json.RawMessage `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Success, 1)
	assert.Empty(t, result.Errors)

	w = do(t, router, http.MethodGet, "/api/v1/stock", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stock []struct {
		Item       string `json:"item"`
		Units      int64  `json:"units"`
		MRPPerUnit string `json:"mrp_per_unit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stock))
	require.Len(t, stock, 1)
	assert.Equal(t, "paracetamol", stock[0].Item)
	assert.Equal(t, int64(90), stock[0].Units)

	w = do(t, router, http.MethodGet, "/api/v1/shipments/invoices", "")
	require.Equal(t, http.StatusOK, w.Code)

	var invoices []struct {
		InvoiceNo string `json:"invoice_no"`
		ItemCount int64  `json:"item_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invoices))
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-1", invoices[0].InvoiceNo)
}

func TestBillFlow(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, http.MethodPost, "/api/v1/shipments", shipmentBody)
	require.Equal(t, http.StatusOK, w.Code)

	// The submitted mrp_per_unit is ignored; the catalog price rules.
	w = do(t, router, http.MethodPost, "/api/v1/bills",
		`{"items": [{"item": "paracetamol", "quantity": 10, "mrp_per_unit": 99}], "discount": 1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		BillNo string `json:"bill_no"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Len(t, created.BillNo, 8)

	w = do(t, router, http.MethodGet, "/api/v1/bills/"+created.BillNo, "")
	require.Equal(t, http.StatusOK, w.Code)

	var details struct {
		Items []struct {
			Item       string `json:"item"`
			Quantity   int64  `json:"quantity"`
			MRPPerUnit string `json:"mrp_per_unit"`
		} `json:"items"`
		Discount string `json:"discount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	require.Len(t, details.Items, 1)
	assert.Equal(t, "2.1", details.Items[0].MRPPerUnit)
}

func TestBill_InsufficientStock(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, http.MethodPost, "/api/v1/shipments", shipmentBody)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/bills",
		`{"items": [{"item": "paracetamol", "quantity": 1000}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errResp struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, apperror.CodeInsufficientStock, errResp.Code)
	assert.Equal(t, float64(910), errResp.Details["shortfall"])
}

func TestBill_UnknownBillNo(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, http.MethodGet, "/api/v1/bills/NOPE1234", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMalformedBody(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, http.MethodPost, "/api/v1/shipments", `{"shipments": `)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errResp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, apperror.CodeValidation, errResp.Code)
}
