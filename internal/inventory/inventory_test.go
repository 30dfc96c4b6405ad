package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jgpos/internal/catalog"
	"jgpos/internal/inventory"
	"jgpos/internal/testutil"
)

func newService(t *testing.T, products []catalog.Product) (*inventory.Service, *testutil.Suite) {
	suite := testutil.NewSuite(t)
	suite.SeedProducts(t, products)
	return inventory.NewService(suite.Store, suite.Catalog), suite
}

func TestAdjustStockValidation(t *testing.T) {
	svc, suite := newService(t, testutil.SampleProducts())
	ctx := context.Background()

	cases := []struct {
		name      string
		productID string
		typ       string
		quantity  string
		reason    string
		wantErr   error
	}{
		{"missing reason", "1", inventory.TypeAdd, "3", "", inventory.ErrMissingFields},
		{"missing quantity", "1", inventory.TypeAdd, "", "restock", inventory.ErrMissingFields},
		{"non-numeric quantity", "1", inventory.TypeAdd, "three", "restock", inventory.ErrInvalidQuantity},
		{"zero quantity", "1", inventory.TypeAdd, "0", "restock", inventory.ErrInvalidQuantity},
		{"negative quantity", "1", inventory.TypeRemove, "-4", "damage", inventory.ErrInvalidQuantity},
		{"bad type", "1", "transfer", "3", "restock", inventory.ErrInvalidType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AdjustStock(ctx, tc.productID, tc.typ, tc.quantity, tc.reason)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// No side effects from any rejected call
	adjustments, err := svc.LoadAdjustments(ctx)
	require.NoError(t, err)
	assert.Empty(t, adjustments)

	products, err := suite.Catalog.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, products[0].Stock)
}

func TestAdjustStockAddThenClampedRemove(t *testing.T) {
	svc, suite := newService(t, []catalog.Product{
		{ID: "1", Name: "Cement Bag", Price: 250, Category: "Construction", Stock: 2, MinStock: 1},
	})
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, "1", inventory.TypeAdd, "3", "restock")
	require.NoError(t, err)

	_, err = svc.AdjustStock(ctx, "1", inventory.TypeRemove, "10", "damage")
	require.NoError(t, err)

	products, err := suite.Catalog.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, products[0].Stock, "removal clamps at zero, never negative")

	adjustments, err := svc.LoadAdjustments(ctx)
	require.NoError(t, err)
	require.Len(t, adjustments, 2, "audit log gains exactly one entry per call")
	assert.Equal(t, inventory.TypeAdd, adjustments[0].Type)
	assert.Equal(t, 3, adjustments[0].Quantity)
	assert.Equal(t, "restock", adjustments[0].Reason)
	assert.Equal(t, inventory.TypeRemove, adjustments[1].Type)
	assert.Equal(t, 10, adjustments[1].Quantity)
}

func TestAdjustStockMissingProduct(t *testing.T) {
	svc, suite := newService(t, testutil.SampleProducts())
	ctx := context.Background()

	adjustment, err := svc.AdjustStock(ctx, "does-not-exist", inventory.TypeAdd, "5", "restock")
	require.NoError(t, err, "a vanished product is a silent no-op, not an error")

	products, err := suite.Catalog.LoadProducts(ctx)
	require.NoError(t, err)
	for _, p := range products {
		assert.NotEqual(t, "does-not-exist", p.ID)
	}

	// The audit record is still appended; the log is written before the
	// product scan.
	adjustments, err := svc.LoadAdjustments(ctx)
	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, adjustment.ID, adjustments[0].ID)
}

func TestAdjustmentsFor(t *testing.T) {
	svc, _ := newService(t, testutil.SampleProducts())
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, "1", inventory.TypeAdd, "2", "restock")
	require.NoError(t, err)
	_, err = svc.AdjustStock(ctx, "3", inventory.TypeRemove, "1", "damage")
	require.NoError(t, err)
	_, err = svc.AdjustStock(ctx, "1", inventory.TypeRemove, "1", "damage")
	require.NoError(t, err)

	matched, err := svc.AdjustmentsFor(ctx, "1")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, inventory.TypeAdd, matched[0].Type)
	assert.Equal(t, inventory.TypeRemove, matched[1].Type)
}

func TestDeleteProductCascadesAdjustments(t *testing.T) {
	svc, suite := newService(t, testutil.SampleProducts())
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, "1", inventory.TypeAdd, "2", "restock")
	require.NoError(t, err)
	_, err = svc.AdjustStock(ctx, "3", inventory.TypeAdd, "4", "restock")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, "1"))

	products, err := suite.Catalog.LoadProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.NotEqual(t, "1", p.ID)
	}

	adjustments, err := svc.LoadAdjustments(ctx)
	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, "3", adjustments[0].ProductID)
}

func TestStockNeverNegative(t *testing.T) {
	svc, suite := newService(t, []catalog.Product{
		{ID: "1", Name: "Cement Bag", Price: 250, Stock: 1},
	})
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.AdjustStock(ctx, "1", inventory.TypeRemove, "3", "shrinkage")
		require.NoError(t, err)

		products, err := suite.Catalog.LoadProducts(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, products[0].Stock, 0)
	}
}
