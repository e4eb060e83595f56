package writegate

import (
	"context"

	"go.uber.org/fx"

	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	wgif "github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
)

// ShutdownReason 节点关闭时进入只读的原因
const ShutdownReason = "节点正在关闭"

// ModuleInput 定义 WriteGate 模块的输入依赖
type ModuleInput struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    log.Logger `optional:"true"`
}

// ModuleOutput 定义 WriteGate 模块的输出服务
type ModuleOutput struct {
	fx.Out

	WriteGate wgif.WriteGate
}

// Module 返回 WriteGate 模块
func Module() fx.Option {
	return fx.Module("writegate",
		fx.Provide(ProvideWriteGate),
	)
}

// ProvideWriteGate 提供门闸实例，停止阶段进入只读
func ProvideWriteGate(input ModuleInput) ModuleOutput {
	gate := New()

	input.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			gate.EnterReadOnly(ShutdownReason)
			if input.Logger != nil {
				input.Logger.With("module", "writegate").Info("账本已切换为只读")
			}
			return nil
		},
	})

	return ModuleOutput{WriteGate: gate}
}
