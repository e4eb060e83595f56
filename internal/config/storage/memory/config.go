// Package memory 内存缓存（BigCache）配置
package memory

import (
	"time"

	configtypes "github.com/billy1624/champ/pkg/types"
)

// MemoryOptions 内存缓存配置选项
type MemoryOptions struct {
	Enabled            bool          `json:"enabled"`
	LifeWindow         time.Duration `json:"life_window"`
	CleanWindow        time.Duration `json:"clean_window"`
	MaxEntriesInWindow int           `json:"max_entries_in_window"`
	MaxEntrySize       int           `json:"max_entry_size"`
	HardMaxCacheSize   int           `json:"hard_max_cache_size"` // MB
	Shards             int           `json:"shards"`
}

// Config 内存缓存配置实现
type Config struct {
	options *MemoryOptions
}

// New 创建内存缓存配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := createDefaultMemoryOptions()
	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}
	return &Config{
		options: defaultOptions,
	}
}

// NewFromOptions 从MemoryOptions创建配置实现
func NewFromOptions(options *MemoryOptions) *Config {
	return &Config{options: options}
}

// createDefaultMemoryOptions 创建默认内存缓存配置
func createDefaultMemoryOptions() *MemoryOptions {
	return &MemoryOptions{
		Enabled:            defaultEnabled,
		LifeWindow:         defaultLifeWindow,
		CleanWindow:        defaultCleanWindow,
		MaxEntriesInWindow: defaultMaxEntriesInWindow,
		MaxEntrySize:       defaultMaxEntrySize,
		HardMaxCacheSize:   defaultHardMaxCacheSize,
		Shards:             defaultShards,
	}
}

// applyUserConfig 应用用户缓存配置；非法的时长字符串保持默认值
func applyUserConfig(options *MemoryOptions, userConfig interface{}) {
	cacheConfig, ok := userConfig.(*configtypes.UserCacheConfig)
	if !ok || cacheConfig == nil {
		return
	}
	if cacheConfig.Enabled != nil {
		options.Enabled = *cacheConfig.Enabled
	}
	if cacheConfig.LifeWindow != nil {
		if d, err := time.ParseDuration(*cacheConfig.LifeWindow); err == nil && d > 0 {
			options.LifeWindow = d
		}
	}
	if cacheConfig.CleanWindow != nil {
		if d, err := time.ParseDuration(*cacheConfig.CleanWindow); err == nil && d >= 0 {
			options.CleanWindow = d
		}
	}
	if cacheConfig.MaxEntriesInWindow != nil && *cacheConfig.MaxEntriesInWindow > 0 {
		options.MaxEntriesInWindow = *cacheConfig.MaxEntriesInWindow
	}
	if cacheConfig.MaxEntrySize != nil && *cacheConfig.MaxEntrySize > 0 {
		options.MaxEntrySize = *cacheConfig.MaxEntrySize
	}
	if cacheConfig.HardMaxCacheSize != nil && *cacheConfig.HardMaxCacheSize >= 0 {
		options.HardMaxCacheSize = *cacheConfig.HardMaxCacheSize
	}
}

// GetOptions 获取完整的内存缓存配置选项
func (c *Config) GetOptions() *MemoryOptions {
	return c.options
}

// IsEnabled 是否启用缓存
func (c *Config) IsEnabled() bool {
	return c.options.Enabled
}

// GetLifeWindow 条目存活时间
func (c *Config) GetLifeWindow() time.Duration {
	return c.options.LifeWindow
}

// GetCleanWindow 过期清理间隔
func (c *Config) GetCleanWindow() time.Duration {
	return c.options.CleanWindow
}

// GetMaxEntriesInWindow 窗口内最大条目数
func (c *Config) GetMaxEntriesInWindow() int {
	return c.options.MaxEntriesInWindow
}

// GetMaxEntrySize 条目大小预估
func (c *Config) GetMaxEntrySize() int {
	return c.options.MaxEntrySize
}

// GetHardMaxCacheSize 缓存上限(MB)
func (c *Config) GetHardMaxCacheSize() int {
	return c.options.HardMaxCacheSize
}

// GetShards 分片数
func (c *Config) GetShards() int {
	return c.options.Shards
}
