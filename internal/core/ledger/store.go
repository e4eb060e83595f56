// Package ledger 基于 BadgerDB 的账户链账本
//
// 每个账户一条只追加的链。AddBlock 在单个乐观事务内复核头区块、高度、
// previous 与领取标记后写入全部索引；并发追加同一账户时只有一个事务能提交。
// 区块与交易记录按账户存放，不同账户可以持有内容相同的区块。
// 头区块读取优先走 BigCache 缓存（可选），缓存只会前进不会回退。
package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/golang/snappy"

	"github.com/billy1624/champ/internal/core/infrastructure/metrics"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/storage"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

var _ ledgerif.Store = (*Store)(nil)

// Store 账本存储实现
type Store struct {
	db        storage.BadgerStore
	cache     storage.MemoryStore // 可为 nil
	ids       blockif.IDCalculator
	addresses crypto.AddressManager
	logger    log.Logger
	metrics   *metrics.LedgerMetrics

	cacheMu sync.Mutex
	// appends 每次成功追加后递增；读路径据此判断回填是否已过时
	appends atomic.Uint64
}

// NewStore 创建账本存储
func NewStore(
	db storage.BadgerStore,
	cache storage.MemoryStore,
	ids blockif.IDCalculator,
	addresses crypto.AddressManager,
	ledgerMetrics *metrics.LedgerMetrics,
	logger log.Logger,
) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("badgerStore 不能为空")
	}
	if ids == nil {
		return nil, fmt.Errorf("idCalculator 不能为空")
	}
	if addresses == nil {
		return nil, fmt.Errorf("addressManager 不能为空")
	}
	return &Store{
		db:        db,
		cache:     cache,
		ids:       ids,
		addresses: addresses,
		logger:    logger,
		metrics:   ledgerMetrics,
	}, nil
}

// ==================== 只读查询 ====================

// GetHeadBlock 账户当前头区块
func (s *Store) GetHeadBlock(ctx context.Context, account types.AccountID) (*types.SignedBlock, error) {
	if block, ok := s.cachedHead(ctx, account); ok {
		return block, nil
	}

	seen := s.appends.Load()
	var block *types.SignedBlock
	err := s.db.View(ctx, func(tx storage.BadgerTransaction) error {
		headID, err := tx.Get(headKey(account))
		if err != nil {
			return err
		}
		if headID == nil {
			return ledgerif.ErrNoLastBlock
		}
		id, err := types.BlockIDFromBytes(headID)
		if err != nil {
			return fmt.Errorf("头区块索引损坏: %w", err)
		}
		block, err = readBlock(tx, account, id)
		if errors.Is(err, ledgerif.ErrNotFound) {
			return fmt.Errorf("头区块 %s 缺失: %w", id, err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.fillHeadCache(ctx, account, block, seen)
	return block, nil
}

// GetTransaction 按交易ID查询交易
func (s *Store) GetTransaction(ctx context.Context, id types.TransactionID) (*types.Transaction, error) {
	rec, err := s.GetTransactionRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.Transaction, nil
}

// GetTransactionRecord 查询交易及其所在区块
//
// 多个账户持有同一交易ID时返回账户ID最小的记录。
func (s *Store) GetTransactionRecord(ctx context.Context, id types.TransactionID) (*ledgerif.TransactionRecord, error) {
	var raw []byte
	err := s.db.View(ctx, func(tx storage.BadgerTransaction) error {
		return tx.IteratePrefix(txPrefix(id), func(_, value []byte) bool {
			raw = value
			return false
		})
	})
	if err != nil {
		return nil, fmt.Errorf("读取交易 %s 失败: %w", id, err)
	}
	if raw == nil {
		return nil, ledgerif.ErrNotFound
	}
	return decodeRecord(raw)
}

// IsClaimed Send 交易是否已被领取
func (s *Store) IsClaimed(ctx context.Context, sendID types.TransactionID) (bool, error) {
	return s.db.Exists(ctx, claimKey(sendID[:]))
}

// GetBlock 按区块ID查询；多个账户持有该ID时返回账户ID最小者的区块
func (s *Store) GetBlock(ctx context.Context, id types.BlockID) (*types.SignedBlock, error) {
	var block *types.SignedBlock
	err := s.db.View(ctx, func(tx storage.BadgerTransaction) error {
		prefix := blockIndexPrefix(id)
		var owner []byte
		if err := tx.IteratePrefix(prefix, func(key, _ []byte) bool {
			owner = key[len(prefix):]
			return false
		}); err != nil {
			return err
		}
		if owner == nil {
			return ledgerif.ErrNotFound
		}
		account, err := types.AccountIDFromBytes(owner)
		if err != nil {
			return fmt.Errorf("区块索引损坏: %w", err)
		}
		block, err = readBlock(tx, account, id)
		return err
	})
	return block, err
}

// GetBlockByHeight 按账户与高度查询
func (s *Store) GetBlockByHeight(ctx context.Context, account types.AccountID, height uint64) (*types.SignedBlock, error) {
	var block *types.SignedBlock
	err := s.db.View(ctx, func(tx storage.BadgerTransaction) error {
		raw, err := tx.Get(heightKey(account, height))
		if err != nil {
			return err
		}
		if raw == nil {
			return ledgerif.ErrNotFound
		}
		id, err := types.BlockIDFromBytes(raw)
		if err != nil {
			return fmt.Errorf("高度索引损坏: %w", err)
		}
		block, err = readBlock(tx, account, id)
		return err
	})
	return block, err
}

// GetAccountDelegate 账户当前代表；从未委托时返回 ErrNotFound
func (s *Store) GetAccountDelegate(ctx context.Context, account types.AccountID) ([]byte, error) {
	raw, err := s.db.Get(ctx, delegateKey(account))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ledgerif.ErrNotFound
	}
	return raw, nil
}

// GetDelegatedAccounts 委托给指定代表的账户，按账户ID排序
func (s *Store) GetDelegatedAccounts(ctx context.Context, representative []byte) ([]types.AccountID, error) {
	prefix := delegeePrefix(representative)
	var accounts []types.AccountID
	err := s.db.View(ctx, func(tx storage.BadgerTransaction) error {
		return tx.IteratePrefix(prefix, func(key, _ []byte) bool {
			if id, err := types.AccountIDFromBytes(key[len(prefix):]); err == nil {
				accounts = append(accounts, id)
			}
			return true
		})
	})
	return accounts, err
}

// ==================== 追加 ====================

// AddBlock 原子追加区块
func (s *Store) AddBlock(ctx context.Context, block *types.SignedBlock) (types.BlockID, error) {
	if block == nil || block.Data == nil {
		return types.BlockID{}, fmt.Errorf("区块数据为空")
	}
	account, err := s.addresses.AccountIDFromPublicKey(block.PublicKey)
	if err != nil {
		return types.BlockID{}, fmt.Errorf("派生账户ID失败: %w", err)
	}

	data := block.Data
	id := s.ids.BlockID(data)

	err = s.db.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		if err := s.checkHead(tx, account, data); err != nil {
			return err
		}
		return s.writeBlock(tx, account, id, block)
	})

	switch {
	case err == nil:
		s.observe(metrics.ResultAccepted)
	case errors.Is(err, storage.ErrTxnConflict):
		s.observe(metrics.ResultConflict)
		return types.BlockID{}, fmt.Errorf("%w: %v", ledgerif.ErrConflict, err)
	case errors.Is(err, ledgerif.ErrConflict):
		s.observe(metrics.ResultConflict)
		return types.BlockID{}, err
	default:
		s.observe(metrics.ResultError)
		return types.BlockID{}, fmt.Errorf("追加区块失败: %w", err)
	}

	s.advanceHeadCache(ctx, account, block)
	if s.logger != nil {
		s.logger.Debugf("区块已追加: account=%s height=%d id=%s", account, data.Height, id)
	}
	return id, nil
}

// checkHead 在事务内复核链接关系
func (s *Store) checkHead(tx storage.BadgerTransaction, account types.AccountID, data *types.BlockData) error {
	headID, err := tx.Get(headKey(account))
	if err != nil {
		return err
	}

	if headID == nil {
		prev, ok := data.PreviousID()
		if data.Height != 0 || !ok || !prev.IsZero() {
			return fmt.Errorf("%w: 账户无头区块，期望创世区块", ledgerif.ErrConflict)
		}
		return nil
	}

	id, err := types.BlockIDFromBytes(headID)
	if err != nil {
		return fmt.Errorf("头区块索引损坏: %w", err)
	}
	head, err := readBlock(tx, account, id)
	if err != nil {
		return err
	}
	if head.Data.Height == ^uint64(0) || data.Height != head.Data.Height+1 {
		return fmt.Errorf("%w: 高度 %d 不接续头区块高度 %d", ledgerif.ErrConflict, data.Height, head.Data.Height)
	}
	if !bytes.Equal(data.Previous, id[:]) {
		return fmt.Errorf("%w: previous 不是当前头区块 %s", ledgerif.ErrConflict, id)
	}
	return nil
}

// writeBlock 写入区块、索引、交易记录与领取标记
func (s *Store) writeBlock(tx storage.BadgerTransaction, account types.AccountID, id types.BlockID, block *types.SignedBlock) error {
	data := block.Data

	if err := tx.Set(blockKey(account, id), snappy.Encode(nil, block.Marshal())); err != nil {
		return err
	}
	if err := tx.Set(blockIndexKey(id, account), nil); err != nil {
		return err
	}
	if err := tx.Set(headKey(account), id[:]); err != nil {
		return err
	}
	if err := tx.Set(heightKey(account, data.Height), id[:]); err != nil {
		return err
	}

	for i, t := range data.Transactions {
		txID := s.ids.TransactionID(id, t)
		if err := tx.Set(txKey(txID, account), encodeRecord(id, i, account, t)); err != nil {
			return err
		}

		if c, ok := t.Collect(); ok {
			key := claimKey(c.TransactionID)
			claimed, err := tx.Exists(key)
			if err != nil {
				return err
			}
			if claimed {
				return fmt.Errorf("%w: Send %x 已被领取", ledgerif.ErrConflict, c.TransactionID)
			}
			if err := tx.Set(key, id[:]); err != nil {
				return err
			}
		}

		if d, ok := t.Delegate(); ok {
			if err := s.writeDelegate(tx, account, d.Representative); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeDelegate 更新代表及反向索引，同一区块内后出现的委托生效
func (s *Store) writeDelegate(tx storage.BadgerTransaction, account types.AccountID, representative []byte) error {
	old, err := tx.Get(delegateKey(account))
	if err != nil {
		return err
	}
	if old != nil {
		if err := tx.Delete(delegeeKey(old, account)); err != nil {
			return err
		}
	}
	if len(representative) == 0 {
		return tx.Delete(delegateKey(account))
	}
	if err := tx.Set(delegateKey(account), representative); err != nil {
		return err
	}
	return tx.Set(delegeeKey(representative, account), nil)
}

func readBlock(tx storage.BadgerTransaction, account types.AccountID, id types.BlockID) (*types.SignedBlock, error) {
	raw, err := tx.Get(blockKey(account, id))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ledgerif.ErrNotFound
	}
	decoded, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, fmt.Errorf("区块 %s 解压失败: %w", id, err)
	}
	block, err := types.UnmarshalSignedBlock(decoded)
	if err != nil {
		return nil, err
	}
	if block.Data == nil {
		block.Data = &types.BlockData{}
	}
	return block, nil
}

// ==================== 头区块缓存 ====================

func (s *Store) cachedHead(ctx context.Context, account types.AccountID) (*types.SignedBlock, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, headCacheKey(account))
	if err != nil || !ok {
		return nil, false
	}
	block, err := types.UnmarshalSignedBlock(raw)
	if err != nil || block.Data == nil {
		_ = s.cache.Delete(ctx, headCacheKey(account))
		return nil, false
	}
	return block, true
}

// advanceHeadCache 追加提交后写入新头区块
func (s *Store) advanceHeadCache(ctx context.Context, account types.AccountID, block *types.SignedBlock) {
	if s.cache == nil {
		s.appends.Add(1)
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.appends.Add(1)
	s.storeHead(ctx, account, block)
}

// fillHeadCache 读路径回填；seen 之后已有追加提交时放弃
func (s *Store) fillHeadCache(ctx context.Context, account types.AccountID, block *types.SignedBlock, seen uint64) {
	if s.cache == nil {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.appends.Load() != seen {
		return
	}
	s.storeHead(ctx, account, block)
}

// storeHead 仅当新区块更高时写入，调用方持有 cacheMu
func (s *Store) storeHead(ctx context.Context, account types.AccountID, block *types.SignedBlock) {
	if block == nil || block.Data == nil {
		return
	}
	if cur, ok := s.cachedHead(ctx, account); ok && cur.Data.Height >= block.Data.Height {
		return
	}
	if err := s.cache.Set(ctx, headCacheKey(account), block.Marshal()); err != nil && s.logger != nil {
		s.logger.Debugf("头区块缓存写入失败: %v", err)
	}
}

func (s *Store) observe(result string) {
	s.metrics.ObserveAppend(result)
}
