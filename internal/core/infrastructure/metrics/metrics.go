package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "champ"

// 验证结果标签
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultError    = "error"
	ResultConflict = "conflict"
)

// NewRegistry 创建独立的 Registry，并注册 Go 运行时与进程指标
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ==================== 验证器指标 ====================

// ValidatorMetrics 区块验证指标；nil 接收者上的方法为空操作
type ValidatorMetrics struct {
	validations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewValidatorMetrics 在 reg 上注册验证器指标
func NewValidatorMetrics(reg prometheus.Registerer) *ValidatorMetrics {
	factory := promauto.With(reg)
	return &ValidatorMetrics{
		validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "validator",
				Name:      "validations_total",
				Help:      "Total number of block validations by result and failure kind.",
			},
			[]string{"result", "kind"},
		),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "validator",
			Name:      "duration_seconds",
			Help:      "Block validation duration in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

// ObserveValidation 记录一次验证；kind 为空表示通过
func (m *ValidatorMetrics) ObserveValidation(result, kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "none"
	}
	m.validations.WithLabelValues(result, kind).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ==================== 账本指标 ====================

// LedgerMetrics 账本写入指标；nil 接收者上的方法为空操作
type LedgerMetrics struct {
	appends *prometheus.CounterVec
}

// NewLedgerMetrics 在 reg 上注册账本指标
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	return &LedgerMetrics{
		appends: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "appends_total",
				Help:      "Total number of block append attempts by result.",
			},
			[]string{"result"},
		),
	}
}

// ObserveAppend 记录一次追加
func (m *LedgerMetrics) ObserveAppend(result string) {
	if m == nil {
		return
	}
	m.appends.WithLabelValues(result).Inc()
}
