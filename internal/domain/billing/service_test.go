package billing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medikos/internal/core/apperror"
	"medikos/internal/core/billno"
	"medikos/internal/core/types"
	"medikos/internal/domain/billing"
	"medikos/internal/domain/catalog"
	"medikos/internal/domain/inventory"
	"medikos/internal/infrastructure/storage/memory"
)

type fixture struct {
	store     *memory.Store
	catalog   *catalog.Service
	inventory *inventory.Service
	billing   *billing.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	catalogSvc := catalog.NewService(store.Items())
	inventorySvc := inventory.NewService(store.Lots())
	return &fixture{
		store:     store,
		catalog:   catalogSvc,
		inventory: inventorySvc,
		billing:   billing.NewService(store.Bills(), catalogSvc, inventorySvc, store),
	}
}

// stock puts an item in the catalog and one lot in inventory.
func (f *fixture) stock(t *testing.T, item string, units int64, mrpPerUnit string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.catalog.Upsert(ctx, item, types.MustMoney(mrpPerUnit))
	require.NoError(t, err)
	_, err = f.inventory.AddLot(ctx, item, units, types.MustMoney("5.00"))
	require.NoError(t, err)
}

func TestSettle_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.stock(t, "bandage roll", 100, "8.00")

	billNo, err := f.billing.Settle(ctx,
		[]billing.LineItem{{Item: "bandage roll", Quantity: 30}},
		types.MustMoney("10.00"))
	require.NoError(t, err)

	assert.Len(t, billNo, billno.Length)
	for _, r := range billNo {
		assert.True(t, strings.ContainsRune(billno.Alphabet, r), "unexpected rune %q", r)
	}

	units, err := f.inventory.AvailableUnits(ctx, "bandage roll")
	require.NoError(t, err)
	assert.Equal(t, int64(70), units)

	details, err := f.billing.GetDetails(ctx, billNo)
	require.NoError(t, err)
	require.Len(t, details.Items, 1)
	assert.Equal(t, int64(30), details.Items[0].Quantity)
	assert.True(t, details.Items[0].MRPPerUnit.Equal(types.MustMoney("8.00")))
	assert.True(t, details.Items[0].TotalAmount.Equal(types.MustMoney("240.00")))
	assert.True(t, details.Discount.Equal(types.MustMoney("10.00")))

	summaries, err := f.billing.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, billNo, summaries[0].BillNo)
	assert.Equal(t, int64(1), summaries[0].ItemCount)
	assert.True(t, summaries[0].Amount.Equal(types.MustMoney("230.00")))
}

func TestSettle_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.stock(t, "bandage roll", 100, "8.00")
	f.stock(t, "gauze pad", 5, "3.00")

	// Second line is short by 15: the first line's depletion must not stick.
	_, err := f.billing.Settle(ctx, []billing.LineItem{
		{Item: "bandage roll", Quantity: 40},
		{Item: "gauze pad", Quantity: 20},
	}, types.Zero())
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	bandage, err := f.inventory.AvailableUnits(ctx, "bandage roll")
	require.NoError(t, err)
	assert.Equal(t, int64(100), bandage)

	gauze, err := f.inventory.AvailableUnits(ctx, "gauze pad")
	require.NoError(t, err)
	assert.Equal(t, int64(5), gauze)

	bills, err := f.billing.ListBills(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestSettle_PriceFrozenAtValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.stock(t, "bandage roll", 100, "8.00")

	billNo, err := f.billing.Settle(ctx,
		[]billing.LineItem{{Item: "bandage roll", Quantity: 10}},
		types.Zero())
	require.NoError(t, err)

	// Reprice after settlement: the recorded bill must keep the old price.
	_, err = f.catalog.Upsert(ctx, "bandage roll", types.MustMoney("9.50"))
	require.NoError(t, err)

	details, err := f.billing.GetDetails(ctx, billNo)
	require.NoError(t, err)
	require.Len(t, details.Items, 1)
	assert.True(t, details.Items[0].MRPPerUnit.Equal(types.MustMoney("8.00")))
}

func TestSettle_UnknownItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.billing.Settle(ctx,
		[]billing.LineItem{{Item: "no such thing", Quantity: 1}},
		types.Zero())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnknownItem, appErr.Code)
}

func TestSettle_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.stock(t, "bandage roll", 100, "8.00")

	_, err := f.billing.Settle(ctx, nil, types.Zero())
	assert.True(t, apperror.IsValidation(err), "empty bill")

	_, err = f.billing.Settle(ctx,
		[]billing.LineItem{{Item: "bandage roll", Quantity: 1}},
		types.MustMoney("-1"))
	assert.True(t, apperror.IsValidation(err), "negative discount")

	_, err = f.billing.Settle(ctx,
		[]billing.LineItem{{Item: "bandage roll", Quantity: 0}},
		types.Zero())
	assert.True(t, apperror.IsValidation(err), "zero quantity")

	_, err = f.billing.Settle(ctx,
		[]billing.LineItem{{Item: "  ", Quantity: 1}},
		types.Zero())
	assert.True(t, apperror.IsValidation(err), "blank item name")

	_, err = f.billing.Settle(ctx,
		[]billing.LineItem{{Item: "bandage roll", Quantity: 1}},
		types.MustMoney("100.00"))
	assert.True(t, apperror.IsValidation(err), "discount exceeds total")
}

func TestSettle_DepletesOldestLotFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.stock(t, "bandage roll", 10, "8.00")

	// A second, newer lot at a different cost.
	_, err := f.inventory.AddLot(ctx, "bandage roll", 20, types.MustMoney("6.00"))
	require.NoError(t, err)

	_, err = f.billing.Settle(ctx,
		[]billing.LineItem{{Item: "bandage roll", Quantity: 15}},
		types.Zero())
	require.NoError(t, err)

	lots, err := f.store.Lots().LotsForUpdate(ctx, "bandage roll")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, int64(15), lots[0].Units)
	assert.True(t, lots[0].RatePerUnit.Equal(types.MustMoney("6.00")), "only the newer lot survives")
}
