package config

import (
	apiconfig "github.com/billy1624/champ/internal/config/api"
	genesisconfig "github.com/billy1624/champ/internal/config/genesis"
	logconfig "github.com/billy1624/champ/internal/config/log"
	badgerconfig "github.com/billy1624/champ/internal/config/storage/badger"
	memoryconfig "github.com/billy1624/champ/internal/config/storage/memory"
	validatorconfig "github.com/billy1624/champ/internal/config/validator"
)

// Provider 配置提供者：默认值 + 用户配置覆盖后的各模块选项
type Provider interface {
	// GetLog 日志配置
	GetLog() *logconfig.LogOptions

	// GetBadger BadgerDB 配置
	GetBadger() *badgerconfig.BadgerOptions

	// GetMemory 头区块缓存配置
	GetMemory() *memoryconfig.MemoryOptions

	// GetValidator 区块验证配置
	GetValidator() *validatorconfig.ValidatorOptions

	// GetGenesis 创世配置
	GetGenesis() *genesisconfig.GenesisOptions

	// GetAPI HTTP API 配置
	GetAPI() *apiconfig.APIOptions

	// GetAppName 应用名称
	GetAppName() string
}
