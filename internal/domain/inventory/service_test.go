package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medikos/internal/core/apperror"
	"medikos/internal/core/id"
	"medikos/internal/core/types"
	"medikos/internal/domain/inventory"
	"medikos/internal/infrastructure/storage/memory"
)

// seedLots creates two lots for "ibuprofen": an older one holding 5 units
// and a newer one holding 10.
func seedLots(t *testing.T, store *memory.Store) (older, newer inventory.Lot) {
	t.Helper()
	ctx := context.Background()
	repo := store.Lots()

	older = inventory.Lot{
		ID:          id.New(),
		Item:        "ibuprofen",
		Units:       5,
		RatePerUnit: types.MustMoney("1.50"),
		CreatedOn:   time.Now().UTC().Add(-48 * time.Hour),
	}
	newer = inventory.Lot{
		ID:          id.New(),
		Item:        "ibuprofen",
		Units:       10,
		RatePerUnit: types.MustMoney("1.80"),
		CreatedOn:   time.Now().UTC(),
	}
	require.NoError(t, repo.CreateLot(ctx, &older))
	require.NoError(t, repo.CreateLot(ctx, &newer))
	return older, newer
}

func TestAddLot_Validation(t *testing.T) {
	ctx := context.Background()
	svc := inventory.NewService(memory.NewStore().Lots())

	_, err := svc.AddLot(ctx, "ibuprofen", 0, types.MustMoney("1.00"))
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.AddLot(ctx, "ibuprofen", -3, types.MustMoney("1.00"))
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.AddLot(ctx, "ibuprofen", 10, types.MustMoney("-0.01"))
	assert.True(t, apperror.IsValidation(err))
}

func TestDeplete_OldestLotFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := inventory.NewService(store.Lots())

	_, newer := seedLots(t, store)

	// 7 units: the older lot (5) is consumed whole, the newer loses 2.
	require.NoError(t, svc.Deplete(ctx, "ibuprofen", 7))

	lots, err := store.Lots().LotsForUpdate(ctx, "ibuprofen")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, newer.ID, lots[0].ID)
	assert.Equal(t, int64(8), lots[0].Units)
}

func TestDeplete_ExactlyDrainsAllLots(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := inventory.NewService(store.Lots())

	seedLots(t, store)

	require.NoError(t, svc.Deplete(ctx, "ibuprofen", 15))

	units, err := svc.AvailableUnits(ctx, "ibuprofen")
	require.NoError(t, err)
	assert.Equal(t, int64(0), units)
}

func TestDeplete_InsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := inventory.NewService(store.Lots())

	seedLots(t, store)

	// 20 requested against 15 on hand: shortfall of 5, and the partial
	// deletions inside the transaction must not survive.
	err := store.RunInTransaction(ctx, func(ctx context.Context) error {
		return svc.Deplete(ctx, "ibuprofen", 20)
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, int64(5), appErr.Details["shortfall"])
	assert.Equal(t, int64(20), appErr.Details["requested"])

	units, err := svc.AvailableUnits(ctx, "ibuprofen")
	require.NoError(t, err)
	assert.Equal(t, int64(15), units)
}

func TestDeplete_UnknownItemIsInsufficient(t *testing.T) {
	ctx := context.Background()
	svc := inventory.NewService(memory.NewStore().Lots())

	err := svc.Deplete(ctx, "no such item", 1)
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestDeplete_RejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	svc := inventory.NewService(memory.NewStore().Lots())

	assert.True(t, apperror.IsValidation(svc.Deplete(ctx, "ibuprofen", 0)))
	assert.True(t, apperror.IsValidation(svc.Deplete(ctx, "ibuprofen", -4)))
}
