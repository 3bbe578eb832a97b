package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medikos/internal/core/apperror"
	"medikos/internal/core/types"
	"medikos/internal/domain/catalog"
	"medikos/internal/infrastructure/storage/memory"
)

func newCatalogService() *catalog.Service {
	store := memory.NewStore()
	return catalog.NewService(store.Items())
}

func TestUpsert_CreatesThenReprices(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService()

	outcome, err := svc.Upsert(ctx, "Paracetamol", types.MustMoney("2.10"))
	require.NoError(t, err)
	assert.Equal(t, catalog.OutcomeCreated, outcome)

	outcome, err = svc.Upsert(ctx, "paracetamol", types.MustMoney("2.50"))
	require.NoError(t, err)
	assert.Equal(t, catalog.OutcomeUpdated, outcome)

	price, err := svc.GetPrice(ctx, "paracetamol")
	require.NoError(t, err)
	assert.True(t, price.Equal(types.MustMoney("2.50")), "latest price must win, got %s", price)
}

func TestUpsert_NameNormalization(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService()

	_, err := svc.Upsert(ctx, "  Amoxicillin 250mg ", types.MustMoney("8.00"))
	require.NoError(t, err)

	price, err := svc.GetPrice(ctx, "AMOXICILLIN 250MG")
	require.NoError(t, err)
	assert.True(t, price.Equal(types.MustMoney("8.00")))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "amoxicillin 250mg", items[0].Name)
}

func TestUpsert_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService()

	_, err := svc.Upsert(ctx, "   ", types.MustMoney("1.00"))
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Upsert(ctx, "aspirin", types.Zero())
	assert.True(t, apperror.IsValidation(err))
}

func TestGetPrice_UnknownItem(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService()

	_, err := svc.GetPrice(ctx, "never seen")
	assert.True(t, apperror.IsNotFound(err))
}
