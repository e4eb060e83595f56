// Package badger BadgerDB 存储配置
package badger

import (
	"path/filepath"

	configtypes "github.com/billy1624/champ/pkg/types"
	"github.com/billy1624/champ/pkg/utils"
)

// BadgerOptions BadgerDB存储配置选项
type BadgerOptions struct {
	Path       string `json:"path"`        // 数据库存储路径
	InMemory   bool   `json:"in_memory"`   // 纯内存模式
	SyncWrites bool   `json:"sync_writes"` // 是否同步写入

	MemTableSize     int64 `json:"mem_table_size"`
	BlockCacheSize   int64 `json:"block_cache_size"`
	IndexCacheSize   int64 `json:"index_cache_size"`
	ValueLogFileSize int64 `json:"value_log_file_size"`
}

// Config BadgerDB配置实现
type Config struct {
	options *BadgerOptions
}

// New 创建BadgerDB配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := createDefaultBadgerOptions()

	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// NewFromOptions 从BadgerOptions创建配置实现
func NewFromOptions(options *BadgerOptions) *Config {
	return &Config{
		options: options,
	}
}

// createDefaultBadgerOptions 创建默认BadgerDB配置
func createDefaultBadgerOptions() *BadgerOptions {
	return &BadgerOptions{
		Path:             utils.ResolveDataPath(filepath.Join(defaultDataRoot, "badger")),
		InMemory:         defaultInMemory,
		SyncWrites:       defaultSyncWrites,
		MemTableSize:     defaultMemTableSize,
		BlockCacheSize:   defaultBlockCacheSize,
		IndexCacheSize:   defaultIndexCacheSize,
		ValueLogFileSize: defaultValueLogFileSize,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
//
// 路径规则：配置了 storage.data_root 时使用 {data_root}/badger/
func applyUserConfig(options *BadgerOptions, userConfig interface{}) {
	storageConfig, ok := userConfig.(*configtypes.UserStorageConfig)
	if !ok || storageConfig == nil {
		return
	}
	if storageConfig.DataRoot != nil {
		options.Path = utils.ResolveDataPath(filepath.Join(*storageConfig.DataRoot, "badger"))
	}
	if storageConfig.InMemory != nil {
		options.InMemory = *storageConfig.InMemory
	}
	if storageConfig.SyncWrites != nil {
		options.SyncWrites = *storageConfig.SyncWrites
	}
}

// GetOptions 获取完整的BadgerDB配置选项
func (c *Config) GetOptions() *BadgerOptions {
	return c.options
}

// GetPath 获取数据库路径
func (c *Config) GetPath() string {
	return c.options.Path
}

// IsInMemory 是否纯内存模式
func (c *Config) IsInMemory() bool {
	return c.options.InMemory
}

// IsSyncWritesEnabled 是否启用同步写入
func (c *Config) IsSyncWritesEnabled() bool {
	return c.options.SyncWrites
}

// GetMemTableSize 获取内存表大小
func (c *Config) GetMemTableSize() int64 {
	return c.options.MemTableSize
}

// GetBlockCacheSize 获取块缓存大小
func (c *Config) GetBlockCacheSize() int64 {
	return c.options.BlockCacheSize
}

// GetIndexCacheSize 获取索引缓存大小
func (c *Config) GetIndexCacheSize() int64 {
	return c.options.IndexCacheSize
}

// GetValueLogFileSize 获取 value log 文件大小
func (c *Config) GetValueLogFileSize() int64 {
	return c.options.ValueLogFileSize
}
