package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jgpos/internal/catalog"
	"jgpos/internal/sales"
	"jgpos/internal/storage"
	"jgpos/internal/testutil"
)

func TestCheckoutEmptyCart(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()
	cart := sales.NewCart(ctx, store)

	_, _, err := sales.Checkout(ctx, store, cart)
	assert.ErrorIs(t, err, sales.ErrEmptyCart)

	history, err := sales.LoadSales(ctx, store)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCheckoutRecordsSaleAndClearsCart(t *testing.T) {
	suite := testutil.NewSuite(t)
	suite.SeedProducts(t, []catalog.Product{
		{ID: "1", Name: "Cement Bag", Price: 250, Stock: 5},
		{ID: "2", Name: "Plywood Sheet", Price: 480.50, Stock: 0},
	})
	ctx := context.Background()

	products, err := suite.Catalog.LoadProducts(ctx)
	require.NoError(t, err)

	cart := sales.NewCart(ctx, suite.Store)
	require.NoError(t, cart.Add(ctx, products[1]), "out-of-stock add is a silent no-op")
	for i := 0; i < 5; i++ {
		require.NoError(t, cart.Add(ctx, products[0]))
	}
	assert.ErrorIs(t, cart.Add(ctx, products[0]), sales.ErrInsufficientStock)

	sale, todayTotal, err := sales.Checkout(ctx, suite.Store, cart)
	require.NoError(t, err)

	assert.NotEmpty(t, sale.ID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Cement Bag", sale.Items[0].Name)
	assert.Equal(t, 5, sale.Items[0].Quantity)
	assert.Equal(t, 1250.0, sale.Items[0].Total)
	assert.Equal(t, 1250.0, sale.Subtotal)
	assert.Equal(t, 1250.0, sale.Total)
	assert.Equal(t, 1250.0, todayTotal)

	_, err = time.Parse(time.RFC3339, sale.Date)
	assert.NoError(t, err)

	assert.True(t, cart.IsEmpty(), "checkout clears the cart")

	history, err := sales.LoadSales(ctx, suite.Store)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, sale.ID, history[0].ID)

	// Checkout never touches inventory
	after, err := suite.Catalog.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, after[0].Stock)
	assert.Equal(t, 0, after[1].Stock)

	// The cross-screen refresh marker was written
	_, found, err := suite.Store.Get(ctx, storage.KeySalesUpdated)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCheckoutAccumulatesTodayTotal(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()
	product := catalog.Product{ID: "1", Name: "Cement Bag", Price: 100, Stock: 10}

	cart := sales.NewCart(ctx, store)
	require.NoError(t, cart.Add(ctx, product))
	_, first, err := sales.Checkout(ctx, store, cart)
	require.NoError(t, err)
	assert.Equal(t, 100.0, first)

	require.NoError(t, cart.Add(ctx, product))
	require.NoError(t, cart.Add(ctx, product))
	_, second, err := sales.Checkout(ctx, store, cart)
	require.NoError(t, err)
	assert.Equal(t, 300.0, second)

	history, err := sales.LoadSales(ctx, store)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestTodayTotalPrefixMatch(t *testing.T) {
	history := []sales.Sale{
		{ID: "a", Total: 10, Date: "2024-06-01T23:59:59Z"},
		{ID: "b", Total: 20, Date: "2024-06-02T00:00:01Z"},
	}

	assert.Equal(t, 10.0, sales.TodayTotal(history, "2024-06-01"))
	assert.Equal(t, 20.0, sales.TodayTotal(history, "2024-06-02"))
	assert.Zero(t, sales.TodayTotal(history, "2024-06-03"))
}

func TestLoadSalesMalformed(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, storage.KeySales, "not json"))
	history, err := sales.LoadSales(ctx, store)
	require.NoError(t, err)
	assert.Empty(t, history)
}
