package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okovalenko/todovault/internal/kv"
)

func TestStoreGetSetRemove(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, kv.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "users", []byte(`[]`)))

	value, err := store.Get(ctx, "users")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), value)

	// Set replaces the previous value.
	require.NoError(t, store.Set(ctx, "users", []byte(`[{"username":"alice"}]`)))
	value, err = store.Get(ctx, "users")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"username":"alice"}]`), value)

	require.NoError(t, store.Remove(ctx, "users"))
	_, err = store.Get(ctx, "users")
	require.ErrorIs(t, err, kv.ErrKeyNotFound)

	// Removing an absent key is a no-op.
	require.NoError(t, store.Remove(ctx, "users"))
	require.Equal(t, 0, store.Len())
}

func TestStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Set(ctx, "k", []byte("abc")))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	value[0] = 'x'

	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), again)
}
