// Package genesis 创世配置：新账户第一个区块的初始余额
package genesis

import (
	"github.com/billy1624/champ/pkg/types"
)

// GenesisOptions 创世配置选项
type GenesisOptions struct {
	InitialBalance uint64            `json:"initial_balance"`
	Allotments     map[string]uint64 `json:"allotments"` // Base58 账户 -> 创世余额
}

// Config 创世配置实现
type Config struct {
	options *GenesisOptions
}

// New 创建创世配置
func New(userConfig interface{}) *Config {
	options := &GenesisOptions{
		InitialBalance: defaultInitialBalance,
		Allotments:     map[string]uint64{},
	}
	if cfg, ok := userConfig.(*types.UserGenesisConfig); ok && cfg != nil {
		if cfg.InitialBalance != nil {
			options.InitialBalance = *cfg.InitialBalance
		}
		for account, amount := range cfg.Allotments {
			options.Allotments[account] = amount
		}
	}
	return &Config{options: options}
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *GenesisOptions {
	return c.options
}

// BalanceFor 账户的创世余额
func (o *GenesisOptions) BalanceFor(address string) uint64 {
	if o == nil {
		return 0
	}
	if amount, ok := o.Allotments[address]; ok {
		return amount
	}
	return o.InitialBalance
}
