package testutil

import (
	"context"
	"sync"
	"time"

	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// MockLedgerStore 内存账本，支持注入错误与延迟
//
// 只做最少的校验：AddBlock 不复核链接关系，用于给验证器准备任意状态。
type MockLedgerStore struct {
	mu sync.RWMutex

	ids     blockif.IDCalculator
	addrs   crypto.AddressManager
	heads   map[types.AccountID]*types.SignedBlock
	heights map[types.AccountID]map[uint64]*types.SignedBlock
	blocks  map[types.BlockID]*types.SignedBlock // 同ID只保留首个
	txs     map[types.TransactionID]*types.Transaction
	claimed map[types.TransactionID]bool

	// 注入的行为
	HeadErr  error
	TxErr    error
	ClaimErr error
	AddErr   error
	Delay    time.Duration // 每次读操作前的阻塞时长，尊重 ctx

	HeadCalls int
	TxCalls   int
}

var _ ledgerif.Store = (*MockLedgerStore)(nil)

// NewMockLedgerStore 创建内存账本
func NewMockLedgerStore(ids blockif.IDCalculator, addrs crypto.AddressManager) *MockLedgerStore {
	return &MockLedgerStore{
		ids:     ids,
		addrs:   addrs,
		heads:   make(map[types.AccountID]*types.SignedBlock),
		heights: make(map[types.AccountID]map[uint64]*types.SignedBlock),
		blocks:  make(map[types.BlockID]*types.SignedBlock),
		txs:     make(map[types.TransactionID]*types.Transaction),
		claimed: make(map[types.TransactionID]bool),
	}
}

// PutHead 直接设置账户头区块并索引其交易
func (m *MockLedgerStore) PutHead(account types.AccountID, block *types.SignedBlock) types.BlockID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.put(account, block)
}

// PutTransaction 直接登记交易
func (m *MockLedgerStore) PutTransaction(id types.TransactionID, tx *types.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[id] = tx
}

// MarkClaimed 登记领取标记
func (m *MockLedgerStore) MarkClaimed(id types.TransactionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claimed[id] = true
}

func (m *MockLedgerStore) put(account types.AccountID, block *types.SignedBlock) types.BlockID {
	id := m.ids.BlockID(block.Data)
	m.heads[account] = block
	if _, ok := m.blocks[id]; !ok {
		m.blocks[id] = block
	}
	if m.heights[account] == nil {
		m.heights[account] = make(map[uint64]*types.SignedBlock)
	}
	m.heights[account][block.Data.Height] = block
	for _, tx := range block.Data.Transactions {
		m.txs[m.ids.TransactionID(id, tx)] = tx
		if c, ok := tx.Collect(); ok {
			if txID, err := types.TransactionIDFromBytes(c.TransactionID); err == nil {
				m.claimed[txID] = true
			}
		}
	}
	return id
}

func (m *MockLedgerStore) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetHeadBlock 实现 ledger.Store
func (m *MockLedgerStore) GetHeadBlock(ctx context.Context, account types.AccountID) (*types.SignedBlock, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HeadCalls++
	if m.HeadErr != nil {
		return nil, m.HeadErr
	}
	head, ok := m.heads[account]
	if !ok {
		return nil, ledgerif.ErrNoLastBlock
	}
	return head, nil
}

// GetTransaction 实现 ledger.Store
func (m *MockLedgerStore) GetTransaction(ctx context.Context, id types.TransactionID) (*types.Transaction, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TxCalls++
	if m.TxErr != nil {
		return nil, m.TxErr
	}
	tx, ok := m.txs[id]
	if !ok {
		return nil, ledgerif.ErrNotFound
	}
	return tx, nil
}

// IsClaimed 实现 ledger.Store
func (m *MockLedgerStore) IsClaimed(ctx context.Context, id types.TransactionID) (bool, error) {
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ClaimErr != nil {
		return false, m.ClaimErr
	}
	return m.claimed[id], nil
}

// AddBlock 实现 ledger.Store
func (m *MockLedgerStore) AddBlock(ctx context.Context, block *types.SignedBlock) (types.BlockID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddErr != nil {
		return types.BlockID{}, m.AddErr
	}
	account, err := m.addrs.AccountIDFromPublicKey(block.PublicKey)
	if err != nil {
		return types.BlockID{}, err
	}
	return m.put(account, block), nil
}

// GetBlock 实现 ledger.Store
func (m *MockLedgerStore) GetBlock(ctx context.Context, id types.BlockID) (*types.SignedBlock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blocks[id]
	if !ok {
		return nil, ledgerif.ErrNotFound
	}
	return b, nil
}

// GetBlockByHeight 实现 ledger.Store
func (m *MockLedgerStore) GetBlockByHeight(ctx context.Context, account types.AccountID, height uint64) (*types.SignedBlock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.heights[account][height]
	if !ok {
		return nil, ledgerif.ErrNotFound
	}
	return b, nil
}

// GetTransactionRecord 实现 ledger.Store
func (m *MockLedgerStore) GetTransactionRecord(ctx context.Context, id types.TransactionID) (*ledgerif.TransactionRecord, error) {
	tx, err := m.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ledgerif.TransactionRecord{Transaction: tx}, nil
}

// GetAccountDelegate 实现 ledger.Store
func (m *MockLedgerStore) GetAccountDelegate(ctx context.Context, account types.AccountID) ([]byte, error) {
	return nil, ledgerif.ErrNotFound
}

// GetDelegatedAccounts 实现 ledger.Store
func (m *MockLedgerStore) GetDelegatedAccounts(ctx context.Context, representative []byte) ([]types.AccountID, error) {
	return nil, nil
}

// NewMockLedger 使用测试密码学服务创建内存账本
func (c *Crypto) NewMockLedger() *MockLedgerStore {
	return NewMockLedgerStore(c.IDs, c.Addresses)
}
