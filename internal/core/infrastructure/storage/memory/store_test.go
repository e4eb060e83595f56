package memory

import (
	"context"
	"testing"
	"time"

	memoryconfig "github.com/billy1624/champ/internal/config/storage/memory"
	logimpl "github.com/billy1624/champ/internal/core/infrastructure/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := memoryconfig.NewFromOptions(&memoryconfig.MemoryOptions{
		Enabled:            true,
		LifeWindow:         time.Minute,
		CleanWindow:        time.Minute,
		MaxEntriesInWindow: 16,
		MaxEntrySize:       64,
		Shards:             4,
	})
	store, err := New(cfg, logimpl.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNew_WithNilLogger_ReturnsError(t *testing.T) {
	_, err := New(memoryconfig.New(nil), nil)
	assert.Error(t, err)
}

func TestStore_SetGetDelete(t *testing.T) {
	// Arrange
	store := newTestStore(t)
	ctx := context.Background()

	// Act
	require.NoError(t, store.Set(ctx, "head", []byte("block")))
	val, ok, err := store.Get(ctx, "head")

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("block"), val)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.Delete(ctx, "head"))
	require.NoError(t, store.Delete(ctx, "head"), "重复删除不报错")
	_, ok, err = store.Get(ctx, "head")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "b", []byte("2")))

	require.NoError(t, store.Clear(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_Closed_ReturnsErrClosed(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Close())

	_, _, err := store.Get(context.Background(), "a")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.Set(context.Background(), "a", nil), ErrClosed)
}
