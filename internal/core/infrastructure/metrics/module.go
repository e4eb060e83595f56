// Package metrics 提供 Prometheus 指标注册与采集
//
// 所有指标注册在注入的 Registry 上，由 HTTP 层的 /metrics 暴露。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// ModuleOutput 指标模块输出
type ModuleOutput struct {
	fx.Out

	Registry         *prometheus.Registry
	ValidatorMetrics *ValidatorMetrics
	LedgerMetrics    *LedgerMetrics
}

// Module 返回 metrics 模块的 fx.Option
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideMetrics),
	)
}

// ProvideMetrics 创建 Registry 与各组件指标
func ProvideMetrics() ModuleOutput {
	reg := NewRegistry()
	return ModuleOutput{
		Registry:         reg,
		ValidatorMetrics: NewValidatorMetrics(reg),
		LedgerMetrics:    NewLedgerMetrics(reg),
	}
}
