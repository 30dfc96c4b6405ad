package device_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jgpos/internal/device"
	"jgpos/internal/storage"
)

func TestEnsureIsStable(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()

	id, err := device.Ensure(ctx, store)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	again, err := device.Ensure(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, id, again, "the register id is generated once and reused")
}

func TestEnsureDistinctStores(t *testing.T) {
	ctx := context.Background()

	first, err := device.Ensure(ctx, storage.NewMemory())
	require.NoError(t, err)
	second, err := device.Ensure(ctx, storage.NewMemory())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
