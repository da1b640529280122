package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "b", []byte("2")))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "k", []byte("abc")))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'x'

	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, SetJSON(ctx, store, "one", entry{ID: "1", Name: "first"}))
	var got entry
	require.NoError(t, GetJSON(ctx, store, "one", &got))
	assert.Equal(t, "first", got.Name)
}

func TestAppendJSONCreatesAndGrowsList(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, AppendJSON(ctx, store, "list", entry{ID: "1"}))
	require.NoError(t, AppendJSON(ctx, store, "list", entry{ID: "2"}))

	var list []entry
	require.NoError(t, GetJSON(ctx, store, "list", &list))
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "2", list[1].ID)
}

func TestRemoveJSON(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, AppendJSON(ctx, store, "list", entry{ID: "1"}))
	require.NoError(t, AppendJSON(ctx, store, "list", entry{ID: "2"}))
	require.NoError(t, AppendJSON(ctx, store, "list", entry{ID: "3"}))

	err := RemoveJSON(ctx, store, "list", func(e entry) bool { return e.ID == "2" })
	require.NoError(t, err)

	var list []entry
	require.NoError(t, GetJSON(ctx, store, "list", &list))
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "3", list[1].ID)

	// Removing from a missing key is a no-op
	require.NoError(t, RemoveJSON(ctx, store, "absent", func(e entry) bool { return true }))
}
