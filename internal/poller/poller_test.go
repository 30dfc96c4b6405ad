package poller_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jgpos/internal/catalog"
	"jgpos/internal/poller"
	"jgpos/internal/storage"
)

func TestWatchDeliversSnapshots(t *testing.T) {
	store := storage.NewMemory()
	cat := catalog.New(store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seed := []catalog.Product{{ID: "1", Name: "Cement Bag", Price: 250, Category: "Construction", Stock: 5}}
	require.NoError(t, cat.SaveProducts(ctx, seed))

	snapshots := make(chan []catalog.Product, 8)
	go poller.Watch(ctx, cat, 10*time.Millisecond, func(products []catalog.Product) {
		select {
		case snapshots <- products:
		default:
		}
	})

	select {
	case products := <-snapshots:
		require.Len(t, products, 1)
		assert.Equal(t, "Cement Bag", products[0].Name)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
	}

	// A write lands between ticks and the next snapshot reflects it
	seed[0].Stock = 9
	require.NoError(t, cat.SaveProducts(ctx, seed))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case products := <-snapshots:
			if len(products) == 1 && products[0].Stock == 9 {
				return
			}
		case <-deadline:
			t.Fatal("updated snapshot never delivered")
		}
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	store := storage.NewMemory()
	cat := catalog.New(store)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		poller.Watch(ctx, cat, 5*time.Millisecond, func([]catalog.Product) {})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}
