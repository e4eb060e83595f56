// Package event 提供事件管理功能
package event

import (
	"context"

	"go.uber.org/fx"

	eventInterface "github.com/billy1624/champ/pkg/interfaces/infrastructure/event"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Logger    log.Logger `optional:"true"`
	Lifecycle fx.Lifecycle
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideEventBus),
	)
}

// ProvideEventBus 创建事件总线，停止时等待异步订阅者处理完毕
func ProvideEventBus(input ModuleInput) ModuleOutput {
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "event")
	}
	bus := New(logger)

	input.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() {
				bus.WaitAsync()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})

	return ModuleOutput{EventBus: bus}
}
