package processor_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	genesisconfig "github.com/billy1624/champ/internal/config/genesis"
	"github.com/billy1624/champ/internal/core/block/processor"
	"github.com/billy1624/champ/internal/core/block/testutil"
	"github.com/billy1624/champ/internal/core/block/validator"
	eventimpl "github.com/billy1624/champ/internal/core/infrastructure/event"
	"github.com/billy1624/champ/internal/core/infrastructure/writegate"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/event"
	wgif "github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// passValidator 总是通过的验证器，用于隔离追加阶段
type passValidator struct{ err error }

func (v passValidator) ValidateBlock(context.Context, *types.SignedBlock) error { return v.err }

func (v passValidator) CheckLinkage(*types.SignedBlock, *types.BlockData) error { return v.err }

func (v passValidator) AccumulateBalance(context.Context, types.AccountID, *big.Int, *types.BlockData) (*big.Int, error) {
	return new(big.Int), v.err
}

// recorder 同步记录某个主题上的事件
type recorder struct {
	mu     sync.Mutex
	events []*types.BlockEvent
}

func record(t *testing.T, bus *eventimpl.EventBus, eventType event.EventType) *recorder {
	t.Helper()
	r := &recorder{}
	require.NoError(t, bus.Subscribe(eventType, func(e *types.BlockEvent) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, e)
	}))
	return r
}

func (r *recorder) all() []*types.BlockEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*types.BlockEvent(nil), r.events...)
}

func TestNewService_WithNilDependencies_ReturnsError(t *testing.T) {
	c := testutil.NewCrypto(t)
	store := c.NewMockLedger()

	_, err := processor.NewService(nil, store, c.IDs, c.Addresses, nil, nil, nil)
	assert.Contains(t, err.Error(), "blockValidator 不能为空")

	_, err = processor.NewService(passValidator{}, nil, c.IDs, c.Addresses, nil, nil, nil)
	assert.Contains(t, err.Error(), "ledgerStore 不能为空")

	_, err = processor.NewService(passValidator{}, store, nil, c.Addresses, nil, nil, nil)
	assert.Contains(t, err.Error(), "idCalculator 不能为空")

	_, err = processor.NewService(passValidator{}, store, c.IDs, nil, nil, nil, nil)
	assert.Contains(t, err.Error(), "addressManager 不能为空")
}

func TestProcessBlock_ValidChain_AppendsAndPublishes(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	store := c.NewBadgerLedger(t, true)
	v, err := validator.NewService(store, c.IDs, c.Signer, c.Addresses, nil,
		&genesisconfig.GenesisOptions{InitialBalance: 0, Allotments: map[string]uint64{}}, nil, nil)
	require.NoError(t, err)
	bus := eventimpl.New(nil)
	validated := record(t, bus, event.EventTypeBlockValidated)
	appended := record(t, bus, event.EventTypeBlockAppended)
	p, err := processor.NewService(v, store, c.IDs, c.Addresses, nil, bus, nil)
	require.NoError(t, err)
	alice := c.NewAccount(t)
	ctx := context.Background()

	// Act
	genesis := c.Sign(t, alice, testutil.Genesis(0))
	genesisID, err := p.ProcessBlock(ctx, genesis)
	require.NoError(t, err)
	next := c.Sign(t, alice, c.Next(genesis, 0, testutil.Delegate([]byte("rep"))))
	nextID, err := p.ProcessBlock(ctx, next)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, c.IDs.BlockID(genesis.Data), genesisID)
	assert.Equal(t, c.IDs.BlockID(next.Data), nextID)
	head, err := store.GetHeadBlock(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), head.Data.Height)

	assert.Len(t, validated.all(), 2)
	events := appended.all()
	require.Len(t, events, 2)
	assert.Equal(t, alice.ID, events[1].Account)
	assert.Equal(t, nextID, events[1].BlockID)
	assert.Equal(t, uint64(1), events[1].Height)
	assert.Equal(t, 1, events[1].TxCount)
	assert.Empty(t, events[1].Reason)
}

func TestProcessBlock_IdenticalAllotmentGenesis_EveryAccountOpensChain(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	store := c.NewBadgerLedger(t, true)
	v, err := validator.NewService(store, c.IDs, c.Signer, c.Addresses, nil,
		&genesisconfig.GenesisOptions{InitialBalance: 1000, Allotments: map[string]uint64{}}, nil, nil)
	require.NoError(t, err)
	p, err := processor.NewService(v, store, c.IDs, c.Addresses, nil, nil, nil)
	require.NoError(t, err)
	ctx := context.Background()
	accounts := []*testutil.Account{c.NewAccount(t), c.NewAccount(t), c.NewAccount(t)}

	// Act
	genesis := make([]*types.SignedBlock, len(accounts))
	for i, acct := range accounts {
		genesis[i] = c.Sign(t, acct, testutil.Genesis(1000))
		_, err := p.ProcessBlock(ctx, genesis[i])
		require.NoError(t, err, "账户 %d 的创世区块", i)
	}

	// Assert
	for i, acct := range accounts {
		head, err := store.GetHeadBlock(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, acct.PublicKey, head.PublicKey)

		_, err = p.ProcessBlock(ctx, c.Sign(t, acct, c.Next(genesis[i], 1000)))
		assert.NoError(t, err)
	}
}

func TestProcessBlock_InvalidBlock_PublishesRejectedWithoutWriting(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	store := c.NewBadgerLedger(t, false)
	v, err := validator.NewService(store, c.IDs, c.Signer, c.Addresses, nil, nil, nil, nil)
	require.NoError(t, err)
	bus := eventimpl.New(nil)
	rejected := record(t, bus, event.EventTypeBlockRejected)
	p, err := processor.NewService(v, store, c.IDs, c.Addresses, nil, bus, nil)
	require.NoError(t, err)
	alice := c.NewAccount(t)
	data := testutil.Genesis(0)
	data.Height = 3

	// Act
	_, err = p.ProcessBlock(context.Background(), c.Sign(t, alice, data))

	// Assert
	assert.ErrorIs(t, err, types.BlockHeightError)
	events := rejected.all()
	require.Len(t, events, 1)
	assert.Equal(t, types.BlockHeightError.String(), events[0].Reason)
	assert.Equal(t, alice.ID, events[0].Account)

	_, err = store.GetHeadBlock(context.Background(), alice.ID)
	assert.ErrorIs(t, err, ledgerif.ErrNoLastBlock)
}

func TestProcessBlock_LostRace_ReturnsPreviousBlockConflict(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	store := c.NewBadgerLedger(t, false)
	bus := eventimpl.New(nil)
	rejected := record(t, bus, event.EventTypeBlockRejected)
	p, err := processor.NewService(passValidator{}, store, c.IDs, c.Addresses, nil, bus, nil)
	require.NoError(t, err)
	alice := c.NewAccount(t)
	ctx := context.Background()
	genesis := c.Sign(t, alice, testutil.Genesis(0))
	_, err = p.ProcessBlock(ctx, genesis)
	require.NoError(t, err)

	first := c.Sign(t, alice, c.Next(genesis, 0))
	second := c.Sign(t, alice, c.Next(genesis, 0, testutil.Delegate([]byte("other"))))

	// Act
	_, err = p.ProcessBlock(ctx, first)
	require.NoError(t, err)
	_, err = p.ProcessBlock(ctx, second)

	// Assert
	assert.ErrorIs(t, err, types.PreviousBlockError)
	assert.ErrorIs(t, err, ledgerif.ErrConflict)
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, processor.ConflictDetail, verr.Detail)
	assert.False(t, types.IsRetryable(err))

	events := rejected.all()
	require.Len(t, events, 1)
	assert.Equal(t, types.PreviousBlockError.String(), events[0].Reason)
}

func TestProcessBlock_ConcurrentSameHeight_ExactlyOneWins(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	store := c.NewBadgerLedger(t, true)
	p, err := processor.NewService(passValidator{}, store, c.IDs, c.Addresses, nil, nil, nil)
	require.NoError(t, err)
	alice := c.NewAccount(t)
	ctx := context.Background()
	genesis := c.Sign(t, alice, testutil.Genesis(0))
	_, err = p.ProcessBlock(ctx, genesis)
	require.NoError(t, err)

	const n = 8
	candidates := make([]*types.SignedBlock, n)
	for i := range candidates {
		candidates[i] = c.Sign(t, alice, c.Next(genesis, uint64(i)))
	}

	// Act
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.ProcessBlock(ctx, candidates[i])
		}(i)
	}
	wg.Wait()

	// Assert
	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, types.PreviousBlockError)
	}
	assert.Equal(t, 1, winners)

	head, err := store.GetHeadBlock(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), head.Data.Height)
}

func TestProcessBlock_StorageFailure_ReturnsStorageUnavailable(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	store := c.NewMockLedger()
	store.AddErr = errors.New("磁盘已满")
	p, err := processor.NewService(passValidator{}, store, c.IDs, c.Addresses, nil, nil, nil)
	require.NoError(t, err)
	alice := c.NewAccount(t)

	// Act
	_, err = p.ProcessBlock(context.Background(), c.Sign(t, alice, testutil.Genesis(0)))

	// Assert
	assert.ErrorIs(t, err, types.StorageUnavailable)
	assert.True(t, types.IsNodeError(err))
	assert.False(t, types.IsRetryable(err))
}

func TestProcessBlock_ValidatorError_IsReturnedUnchanged(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	want := types.NewNodeError(types.StorageTimeout, context.DeadlineExceeded)
	p, err := processor.NewService(passValidator{err: want}, c.NewMockLedger(), c.IDs, c.Addresses, nil, nil, nil)
	require.NoError(t, err)

	// Act
	_, err = p.ProcessBlock(context.Background(), c.Sign(t, c.NewAccount(t), testutil.Genesis(0)))

	// Assert
	assert.Same(t, want, err)
	assert.True(t, types.IsRetryable(err))
}

func TestProcessBlock_ReadOnlyGate_RejectsAppendKeepsLedger(t *testing.T) {
	// Arrange
	c := testutil.NewCrypto(t)
	store := c.NewBadgerLedger(t, false)
	gate := writegate.New()
	p, err := processor.NewService(passValidator{}, store, c.IDs, c.Addresses, gate, nil, nil)
	require.NoError(t, err)
	alice := c.NewAccount(t)
	ctx := context.Background()
	genesis := c.Sign(t, alice, testutil.Genesis(0))
	gate.EnterReadOnly("维护")

	// Act
	_, err = p.ProcessBlock(ctx, genesis)

	// Assert
	require.ErrorIs(t, err, wgif.ErrReadOnly)
	assert.ErrorIs(t, err, types.StorageUnavailable)
	_, err = store.GetHeadBlock(ctx, alice.ID)
	assert.ErrorIs(t, err, ledgerif.ErrNoLastBlock)

	gate.ExitReadOnly()
	_, err = p.ProcessBlock(ctx, genesis)
	assert.NoError(t, err)
}
