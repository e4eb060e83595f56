// Package storage 提供存储管理功能
package storage

import (
	"context"
	"fmt"

	badgerconfig "github.com/billy1624/champ/internal/config/storage/badger"
	memoryconfig "github.com/billy1624/champ/internal/config/storage/memory"
	"github.com/billy1624/champ/internal/core/infrastructure/storage/badger"
	"github.com/billy1624/champ/internal/core/infrastructure/storage/memory"
	"github.com/billy1624/champ/pkg/interfaces/config"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/billy1624/champ/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider
	Logger    log.Logger
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	BadgerStore storageInterface.BadgerStore
	MemoryStore storageInterface.MemoryStore // 缓存关闭时为 nil
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 根据配置初始化 BadgerDB 与 BigCache，并注册关闭钩子
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger := params.Logger.With("module", "storage")

	badgerStore, err := badger.New(badgerconfig.NewFromOptions(params.Provider.GetBadger()), logger)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建BadgerDB存储失败: %w", err)
	}

	out := ModuleOutput{BadgerStore: badgerStore}

	var memoryStore *memory.Store
	memOptions := params.Provider.GetMemory()
	if memOptions.Enabled {
		memoryStore, err = memory.New(memoryconfig.NewFromOptions(memOptions), logger)
		if err != nil {
			_ = badgerStore.Close()
			return ModuleOutput{}, fmt.Errorf("创建内存缓存失败: %w", err)
		}
		out.MemoryStore = memoryStore
	} else {
		logger.Info("头区块缓存已禁用")
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("正在关闭存储服务...")
			if memoryStore != nil {
				if err := memoryStore.Close(); err != nil {
					logger.Errorf("关闭内存缓存失败: %v", err)
				}
			}
			return badgerStore.Close()
		},
	})

	return out, nil
}
