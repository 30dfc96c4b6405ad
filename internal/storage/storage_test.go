package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jgpos/internal/storage"
	"jgpos/internal/testutil"
)

func TestSQLiteSetGetRemove(t *testing.T) {
	suite := testutil.NewSuite(t)
	ctx := context.Background()

	_, found, err := suite.Store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found, "absent key must report found=false without error")

	require.NoError(t, suite.Store.Set(ctx, "greeting", "hello"))
	value, found, err := suite.Store.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hello", value)

	// Overwrite replaces, never appends
	require.NoError(t, suite.Store.Set(ctx, "greeting", "goodbye"))
	value, _, err = suite.Store.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "goodbye", value)

	require.NoError(t, suite.Store.Remove(ctx, "greeting"))
	_, found, err = suite.Store.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.False(t, found)

	// Removing an already-removed key is a no-op
	require.NoError(t, suite.Store.Remove(ctx, "greeting"))
}

func TestSQLiteKeys(t *testing.T) {
	suite := testutil.NewSuite(t)
	ctx := context.Background()

	require.NoError(t, suite.Store.Set(ctx, "b", "2"))
	require.NoError(t, suite.Store.Set(ctx, "a", "1"))

	keys, err := suite.Store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestJSONRoundTrip(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()

	type record struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	}

	in := []record{{ID: "1", Price: 9.5}, {ID: "2", Price: 0}}
	require.NoError(t, storage.SetJSON(ctx, store, "records", in))

	var out []record
	found, err := storage.GetJSON(ctx, store, "records", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)

	// Load-then-save without modification persists identical content
	require.NoError(t, storage.SetJSON(ctx, store, "records", out))
	raw1, _, _ := store.Get(ctx, "records")
	var again []record
	_, err = storage.GetJSON(ctx, store, "records", &again)
	require.NoError(t, err)
	require.NoError(t, storage.SetJSON(ctx, store, "records", again))
	raw2, _, _ := store.Get(ctx, "records")
	assert.Equal(t, raw1, raw2)
}

func TestGetJSONMalformed(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "bad", "{not json"))

	var out []string
	found, err := storage.GetJSON(ctx, store, "bad", &out)
	assert.True(t, found)
	assert.Error(t, err)
}

func TestMemoryMatchesSQLiteContract(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	_, found, err := mem.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, mem.Set(ctx, "k", "v"))
	value, found, err := mem.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)

	require.NoError(t, mem.Remove(ctx, "k"))
	_, found, _ = mem.Get(ctx, "k")
	assert.False(t, found)
}
