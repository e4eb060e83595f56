// Package memory 提供基于BigCache的内存缓存实现
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/allegro/bigcache/v3"
	memoryconfig "github.com/billy1624/champ/internal/config/storage/memory"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	storage "github.com/billy1624/champ/pkg/interfaces/infrastructure/storage"
)

// ErrClosed 缓存已关闭
var ErrClosed = errors.New("内存缓存已关闭")

// Store 实现了MemoryStore接口，基于BigCache提供内存缓存功能
type Store struct {
	cache  *bigcache.BigCache
	logger log.Logger
	config *memoryconfig.Config

	mutex  sync.RWMutex
	closed bool
}

var _ storage.MemoryStore = (*Store)(nil)

// New 创建一个新的BigCache内存缓存实例
func New(config *memoryconfig.Config, logger log.Logger) (*Store, error) {
	if config == nil {
		return nil, fmt.Errorf("缓存配置不能为空")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger 不能为空")
	}

	bigCacheConfig := bigcache.DefaultConfig(config.GetLifeWindow())
	bigCacheConfig.CleanWindow = config.GetCleanWindow()
	bigCacheConfig.MaxEntriesInWindow = config.GetMaxEntriesInWindow()
	bigCacheConfig.MaxEntrySize = config.GetMaxEntrySize()
	bigCacheConfig.HardMaxCacheSize = config.GetHardMaxCacheSize()
	if shards := config.GetShards(); shards > 0 {
		bigCacheConfig.Shards = shards
	}
	bigCacheConfig.Verbose = false

	cache, err := bigcache.New(context.Background(), bigCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("创建BigCache实例失败: %w", err)
	}

	return &Store{
		cache:  cache,
		logger: logger,
		config: config,
	}, nil
}

// Close 关闭缓存并释放资源
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.cache.Close()
}

// Get 获取缓存值
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}

	value, err := s.cache.Get(key)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return nil, false, nil
		}
		s.logger.Warnf("获取缓存键[%s]失败: %v", key, err)
		return nil, false, err
	}
	return value, true, nil
}

// Set 写入缓存值
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return ErrClosed
	}

	if err := s.cache.Set(key, value); err != nil {
		return fmt.Errorf("写入缓存键[%s]失败: %w", key, err)
	}
	return nil
}

// Delete 删除缓存值，键不存在不报错
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return ErrClosed
	}

	if err := s.cache.Delete(key); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("删除缓存键[%s]失败: %w", key, err)
	}
	return nil
}

// Clear 清空缓存
func (s *Store) Clear(ctx context.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return s.cache.Reset()
}

// Count 当前条目数
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	return int64(s.cache.Len()), nil
}
