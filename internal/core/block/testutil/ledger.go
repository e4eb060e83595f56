package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	badgerconfig "github.com/billy1624/champ/internal/config/storage/badger"
	memoryconfig "github.com/billy1624/champ/internal/config/storage/memory"
	"github.com/billy1624/champ/internal/core/infrastructure/storage/badger"
	"github.com/billy1624/champ/internal/core/infrastructure/storage/memory"
	"github.com/billy1624/champ/internal/core/ledger"
	logimpl "github.com/billy1624/champ/internal/core/infrastructure/log"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/storage"
)

// NewBadgerLedger 基于内存 BadgerDB 的真实账本，withCache 决定是否挂载头区块缓存
func (c *Crypto) NewBadgerLedger(t testing.TB, withCache bool) *ledger.Store {
	t.Helper()

	db, err := badger.New(badgerconfig.NewFromOptions(&badgerconfig.BadgerOptions{
		InMemory:       true,
		MemTableSize:   16 << 20,
		BlockCacheSize: 1 << 20,
		IndexCacheSize: 1 << 20,
	}), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var cache storage.MemoryStore
	if withCache {
		mem, err := memory.New(memoryconfig.NewFromOptions(&memoryconfig.MemoryOptions{
			Enabled:            true,
			LifeWindow:         time.Hour,
			CleanWindow:        time.Hour,
			MaxEntriesInWindow: 64,
			MaxEntrySize:       512,
			Shards:             4,
		}), logimpl.NewNop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = mem.Close() })
		cache = mem
	}

	store, err := ledger.NewStore(db, cache, c.IDs, c.Addresses, nil, logimpl.NewNop())
	require.NoError(t, err)
	return store
}
