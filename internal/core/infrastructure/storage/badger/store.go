// Package badger 提供基于BadgerDB的存储实现
package badger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"

	badgerconfig "github.com/billy1624/champ/internal/config/storage/badger"
	logimpl "github.com/billy1624/champ/internal/core/infrastructure/log"
	log "github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	interfaces "github.com/billy1624/champ/pkg/interfaces/infrastructure/storage"
)

// Store 实现BadgerStore接口
type Store struct {
	db     *badgerdb.DB
	config *badgerconfig.Config
	logger log.Logger

	// 关闭过程中拒绝写入，并等待进行中的写事务退出
	closing int32
	writeWg sync.WaitGroup
}

var _ interfaces.BadgerStore = (*Store)(nil)

// New 打开BadgerDB并返回存储实例
func New(config *badgerconfig.Config, logger log.Logger) (*Store, error) {
	if config == nil {
		return nil, fmt.Errorf("badger 配置不能为空")
	}
	if logger == nil {
		logger = logimpl.NewNop()
	}

	var opts badgerdb.Options
	if config.IsInMemory() {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
		logger.Info("🧠 使用内存BadgerDB（数据不持久化）")
	} else {
		dataDir := config.GetPath()
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return nil, fmt.Errorf("无法创建BadgerDB数据目录: %w", err)
		}
		opts = badgerdb.DefaultOptions(dataDir)
		opts.SyncWrites = config.IsSyncWritesEnabled()
		if size := config.GetValueLogFileSize(); size > 0 {
			opts.ValueLogFileSize = size
		}
		logger.Infof("初始化BadgerDB存储，数据目录: %s", dataDir)
	}

	// 未配置的大小沿用 Badger 默认值
	if size := config.GetMemTableSize(); size > 0 {
		opts.MemTableSize = size
	}
	if size := config.GetBlockCacheSize(); size > 0 {
		opts.BlockCacheSize = size
	}
	if size := config.GetIndexCacheSize(); size > 0 {
		opts.IndexCacheSize = size
	}
	opts.ValueThreshold = valueThreshold(opts.ValueThreshold, opts.MemTableSize)
	opts.NumMemtables = 2
	opts.NumCompactors = 2
	opts.Logger = newBadgerLogger(logger)

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("打开BadgerDB失败: %w", err)
	}

	logger.Info("BadgerDB存储初始化完成")
	return &Store{
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

// valueThreshold Badger 要求 ValueThreshold 不超过单个写批次（内存表的 15%）
func valueThreshold(threshold, memTableSize int64) int64 {
	if limit := memTableSize * 15 / 100; threshold > limit {
		return limit
	}
	return threshold
}

// Close 关闭存储并释放资源
func (s *Store) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closing, 0, 1) {
		return nil
	}

	// 等待所有写事务退出
	waitCh := make(chan struct{})
	go func() {
		s.writeWg.Wait()
		close(waitCh)
	}()
	select {
	case <-waitCh:
	case <-time.After(30 * time.Second):
		s.logger.Warn("⚠️ 等待写事务超时（30s），继续关闭 BadgerDB")
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("关闭BadgerDB失败: %w", err)
	}
	s.logger.Info("BadgerDB存储已关闭")
	return nil
}

func (s *Store) beginWrite() (func(), error) {
	if atomic.LoadInt32(&s.closing) == 1 {
		return nil, interfaces.ErrStoreClosing
	}
	s.writeWg.Add(1)
	// double-check，避免在 Add 之后进入 closing
	if atomic.LoadInt32(&s.closing) == 1 {
		s.writeWg.Done()
		return nil, interfaces.ErrStoreClosing
	}
	return s.writeWg.Done, nil
}

// Get 获取指定键的值，不存在返回 nil
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	var val []byte
	err := s.View(ctx, func(tx interfaces.BadgerTransaction) error {
		var err error
		val, err = tx.Get(key)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("badger读取失败: %w", err)
	}
	return val, nil
}

// Set 单键写入
func (s *Store) Set(ctx context.Context, key, value []byte) error {
	return s.RunInTransaction(ctx, func(tx interfaces.BadgerTransaction) error {
		return tx.Set(key, value)
	})
}

// Exists 检查键是否存在
func (s *Store) Exists(ctx context.Context, key []byte) (bool, error) {
	var exists bool
	err := s.View(ctx, func(tx interfaces.BadgerTransaction) error {
		var err error
		exists, err = tx.Exists(key)
		return err
	})
	return exists, err
}

// View 在只读事务中执行操作
func (s *Store) View(ctx context.Context, fn func(tx interfaces.BadgerTransaction) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badgerdb.Txn) error {
		return fn(&Transaction{txn: txn, readOnly: true})
	})
}

// RunInTransaction 在读写事务中执行操作
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx interfaces.BadgerTransaction) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done, err := s.beginWrite()
	if err != nil {
		return err
	}
	defer done()

	tx := &Transaction{txn: s.db.NewTransaction(true)}
	defer tx.Discard()

	if err := fn(tx); err != nil {
		return err
	}

	// 提交前再检查一次，调用方已放弃时不再写入
	if err := ctx.Err(); err != nil {
		return err
	}
	return tx.Commit()
}
