package shipment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medikos/internal/core/apperror"
	"medikos/internal/core/types"
	"medikos/internal/domain/catalog"
	"medikos/internal/domain/inventory"
	"medikos/internal/domain/shipment"
	"medikos/internal/infrastructure/storage/memory"
)

type fixture struct {
	store     *memory.Store
	catalog   *catalog.Service
	inventory *inventory.Service
	shipments *shipment.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	catalogSvc := catalog.NewService(store.Items())
	inventorySvc := inventory.NewService(store.Lots())
	return &fixture{
		store:     store,
		catalog:   catalogSvc,
		inventory: inventorySvc,
		shipments: shipment.NewService(store.Shipments(), catalogSvc, inventorySvc, store),
	}
}

func line() shipment.Input {
	return shipment.Input{
		InvoiceNo: "INV-100",
		Quantity:  9,
		PackOf:    10,
		Item:      "Paracetamol",
		MRP:       types.MustMoney("21"),
		Rate:      types.MustMoney("31"),
	}
}

func TestInput_DerivedFigures(t *testing.T) {
	in := line()

	assert.Equal(t, int64(90), in.TotalUnits())
	assert.True(t, in.RatePerUnit().Equal(types.MustMoney("3.1")))
	assert.True(t, in.MRPPerUnit().Equal(types.MustMoney("2.1")))
	assert.True(t, in.Amount().Equal(types.MustMoney("279")))
}

func TestInput_BonusAddsFreeUnits(t *testing.T) {
	in := line()
	bonus := int64(1)
	in.Bonus = &bonus

	// Bonus packs add units but never enter the amount.
	assert.Equal(t, int64(100), in.TotalUnits())
	assert.True(t, in.Amount().Equal(types.MustMoney("279")))
}

func TestRecordBatch_SingleLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	result, err := f.shipments.RecordBatch(ctx, []shipment.Input{line()})
	require.NoError(t, err)
	require.Len(t, result.Success, 1)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Errors)

	units, err := f.inventory.AvailableUnits(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(90), units)

	price, err := f.catalog.GetPrice(ctx, "paracetamol")
	require.NoError(t, err)
	assert.True(t, price.Equal(types.MustMoney("2.1")))

	rows, err := f.shipments.ListByInvoice(ctx, "INV-100")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Amount.Equal(types.MustMoney("279")))
}

func TestRecordBatch_ExistingItemWarnsAndReprices(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.catalog.Upsert(ctx, "paracetamol", types.MustMoney("1.99"))
	require.NoError(t, err)

	result, err := f.shipments.RecordBatch(ctx, []shipment.Input{line()})
	require.NoError(t, err)
	require.Len(t, result.Success, 1)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "already exists")

	price, err := f.catalog.GetPrice(ctx, "paracetamol")
	require.NoError(t, err)
	assert.True(t, price.Equal(types.MustMoney("2.1")), "price must follow the newest shipment")
}

func TestRecordBatch_DuplicateLineLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.shipments.RecordBatch(ctx, []shipment.Input{line()})
	require.NoError(t, err)

	// Same line, same day: the shipment row, the lot and the reprice must
	// all be rolled back together.
	result, err := f.shipments.RecordBatch(ctx, []shipment.Input{line()})
	require.NoError(t, err)
	assert.Empty(t, result.Success)
	require.Len(t, result.Errors, 1)

	rows, err := f.shipments.ListByInvoice(ctx, "INV-100")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	units, err := f.inventory.AvailableUnits(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(90), units)
}

func TestRecordBatch_BadLineDoesNotAbortSiblings(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	bad := line()
	bad.Item = ""
	bad.PackOf = 0

	good := line()
	good.Item = "cetirizine"

	result, err := f.shipments.RecordBatch(ctx, []shipment.Input{bad, good})
	require.NoError(t, err)
	assert.Len(t, result.Success, 1)
	assert.Len(t, result.Errors, 1)

	units, err := f.inventory.AvailableUnits(ctx, "cetirizine")
	require.NoError(t, err)
	assert.Equal(t, int64(90), units)
}

func TestRecordBatch_EmptyBatchRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.shipments.RecordBatch(ctx, nil)
	assert.True(t, apperror.IsValidation(err))
}

func TestValidate_ReportsAllBadFields(t *testing.T) {
	in := shipment.Input{Quantity: -1, PackOf: 0}

	err := in.Validate(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	fields, ok := appErr.Details["fields"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"invoice_no", "quantity", "pack_of", "item", "mrp", "rate"}, fields)
}

func TestInvoiceSummaries_GroupsLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	first := line()
	second := line()
	second.Item = "cetirizine"
	third := line()
	third.InvoiceNo = "INV-200"
	third.Item = "vitamin c"

	result, err := f.shipments.RecordBatch(ctx, []shipment.Input{first, second, third})
	require.NoError(t, err)
	require.Len(t, result.Success, 3)

	summaries, err := f.shipments.InvoiceSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byInvoice := map[string]int64{}
	for _, s := range summaries {
		byInvoice[s.InvoiceNo] = s.ItemCount
	}
	assert.Equal(t, int64(2), byInvoice["INV-100"])
	assert.Equal(t, int64(1), byInvoice["INV-200"])
}
