// Package validator 区块验证配置
package validator

import (
	"time"

	"github.com/billy1624/champ/pkg/types"
)

// ValidatorOptions 区块验证配置选项
type ValidatorOptions struct {
	StorageTimeout       time.Duration `json:"storage_timeout"`
	MaxTransactions      int           `json:"max_transactions"`
	MaxConcurrentLookups int           `json:"max_concurrent_lookups"`
}

// Config 区块验证配置实现
type Config struct {
	options *ValidatorOptions
}

// New 创建区块验证配置
func New(userConfig interface{}) *Config {
	options := createDefaultValidatorOptions()
	if userConfig != nil {
		applyUserConfig(options, userConfig)
	}
	return &Config{options: options}
}

func createDefaultValidatorOptions() *ValidatorOptions {
	return &ValidatorOptions{
		StorageTimeout:       defaultStorageTimeout,
		MaxTransactions:      defaultMaxTransactions,
		MaxConcurrentLookups: defaultMaxConcurrentLookups,
	}
}

// applyUserConfig 应用用户配置
// max_transactions 只能收紧，不能超过协议上限 255
func applyUserConfig(options *ValidatorOptions, userConfig interface{}) {
	cfg, ok := userConfig.(*types.UserValidatorConfig)
	if !ok || cfg == nil {
		return
	}
	if cfg.StorageTimeout != nil {
		if d, err := time.ParseDuration(*cfg.StorageTimeout); err == nil && d > 0 {
			options.StorageTimeout = d
		}
	}
	if cfg.MaxTransactions != nil && *cfg.MaxTransactions > 0 {
		options.MaxTransactions = *cfg.MaxTransactions
		if options.MaxTransactions > types.MaxTransactionsPerBlock {
			options.MaxTransactions = types.MaxTransactionsPerBlock
		}
	}
	if cfg.MaxConcurrentLookups != nil && *cfg.MaxConcurrentLookups > 0 {
		options.MaxConcurrentLookups = *cfg.MaxConcurrentLookups
	}
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *ValidatorOptions {
	return c.options
}
