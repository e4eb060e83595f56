package app

import (
	"go.uber.org/fx"

	"github.com/billy1624/champ/internal/api"
	"github.com/billy1624/champ/internal/config"
	"github.com/billy1624/champ/internal/core/block"
	"github.com/billy1624/champ/internal/core/infrastructure/crypto"
	"github.com/billy1624/champ/internal/core/infrastructure/event"
	"github.com/billy1624/champ/internal/core/infrastructure/log"
	"github.com/billy1624/champ/internal/core/infrastructure/metrics"
	"github.com/billy1624/champ/internal/core/infrastructure/storage"
	"github.com/billy1624/champ/internal/core/infrastructure/writegate"
	"github.com/billy1624/champ/internal/core/ledger"
	configif "github.com/billy1624/champ/pkg/interfaces/config"
)

// Bootstrap 按层组织 fx 模块
type Bootstrap struct {
	opts *options
}

// NewBootstrap 创建引导对象
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// SetupInfrastructureLayer 基础设施层
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(func() configif.AppOptions { return b.opts }),
		config.Module(),  // 1. 配置(不依赖其他)
		log.Module(),     // 2. 日志(依赖配置)
		crypto.Module(),  // 3. 密码学
		metrics.Module(), // 4. 指标
	}
}

// SetupStorageLayer 事件与存储层
func (b *Bootstrap) SetupStorageLayer() []fx.Option {
	return []fx.Option{
		event.Module(),     // 事件总线
		storage.Module(),   // BadgerDB + BigCache
		writegate.Module(), // 账本写门闸
		ledger.Module(),    // 账本（依赖存储与区块ID计算）
	}
}

// SetupBusinessLayer 区块验证与处理
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		block.Module(),
	}
}

// SetupApplicationLayer 对外接口
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	var modules []fx.Option
	if b.opts.enableAPI {
		modules = append(modules, api.Module())
	}
	return modules
}

// Options 全部 fx 选项
func (b *Bootstrap) Options() []fx.Option {
	var all []fx.Option
	all = append(all, b.SetupInfrastructureLayer()...)
	all = append(all, b.SetupStorageLayer()...)
	all = append(all, b.SetupBusinessLayer()...)
	all = append(all, b.SetupApplicationLayer()...)
	all = append(all, b.opts.extra...)
	all = append(all, fx.NopLogger)
	return all
}
