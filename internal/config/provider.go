package config

import (
	"github.com/billy1624/champ/internal/config/api"
	"github.com/billy1624/champ/internal/config/genesis"
	"github.com/billy1624/champ/internal/config/log"
	"github.com/billy1624/champ/internal/config/storage/badger"
	"github.com/billy1624/champ/internal/config/storage/memory"
	"github.com/billy1624/champ/internal/config/validator"
	"github.com/billy1624/champ/pkg/interfaces/config"
	"github.com/billy1624/champ/pkg/types"
)

const defaultAppName = "champ"

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者，appConfig 为 nil 时全部使用默认值
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig: appConfig,
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	return log.New(p.appConfig.Log).GetOptions()
}

// GetBadger 获取BadgerDB存储配置
func (p *Provider) GetBadger() *badger.BadgerOptions {
	return badger.New(p.appConfig.Storage).GetOptions()
}

// GetMemory 获取头区块缓存配置
func (p *Provider) GetMemory() *memory.MemoryOptions {
	return memory.New(p.appConfig.Cache).GetOptions()
}

// GetValidator 获取区块验证配置
func (p *Provider) GetValidator() *validator.ValidatorOptions {
	return validator.New(p.appConfig.Validator).GetOptions()
}

// GetGenesis 获取创世配置
func (p *Provider) GetGenesis() *genesis.GenesisOptions {
	return genesis.New(p.appConfig.Genesis).GetOptions()
}

// GetAPI 获取HTTP API配置
func (p *Provider) GetAPI() *api.APIOptions {
	return api.New(p.appConfig.API).GetOptions()
}

// GetAppName 获取应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig.AppName != nil && *p.appConfig.AppName != "" {
		return *p.appConfig.AppName
	}
	return defaultAppName
}
