// Package block 提供区块验证与处理的核心实现
//
// 📦 **导出服务**：
// - blockif.IDCalculator: 区块ID与交易ID计算
// - blockif.BlockValidator: 区块验证（无副作用）
// - blockif.BlockProcessor: 验证 + 账本原子追加
//
// IDCalculator 单独提供：账本依赖它，验证器又依赖账本。
package block

import (
	"go.uber.org/fx"

	genesisconfig "github.com/billy1624/champ/internal/config/genesis"
	validatorconfig "github.com/billy1624/champ/internal/config/validator"
	"github.com/billy1624/champ/internal/core/block/hash"
	"github.com/billy1624/champ/internal/core/block/processor"
	"github.com/billy1624/champ/internal/core/block/validator"
	"github.com/billy1624/champ/internal/core/infrastructure/metrics"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/config"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/event"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义 block 模块的输入依赖
type ModuleInput struct {
	fx.In

	// ========== 基础设施组件 ==========
	Logger         log.Logger                `optional:"true"`
	ConfigProvider config.Provider           `optional:"true"`
	EventBus       event.EventBus            `optional:"true"`
	Metrics        *metrics.ValidatorMetrics `optional:"true"`

	// ========== 密码学组件 ==========
	SignatureManager crypto.SignatureManager
	AddressManager   crypto.AddressManager

	// ========== 账本 ==========
	IDCalculator blockif.IDCalculator
	LedgerStore  ledgerif.Store
	WriteGate    writegate.WriteGate `optional:"true"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义 block 模块的输出服务
type ModuleOutput struct {
	fx.Out

	BlockValidator blockif.BlockValidator
	BlockProcessor blockif.BlockProcessor

	// 具体类型导出，供需要 ValidatorOptions 等细节的调用方使用
	ValidatorService *validator.Service
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 block 模块的 fx 配置
func Module() fx.Option {
	return fx.Module("block",
		fx.Provide(
			ProvideIDCalculator,
			ProvideServices,
		),
		fx.Invoke(registerEventLogging),
	)
}

// ProvideIDCalculator 提供区块ID计算服务
func ProvideIDCalculator(hasher crypto.HashManager) (blockif.IDCalculator, error) {
	return hash.NewBlockHashService(hasher)
}

// ProvideServices 提供验证与处理服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	var blockLogger log.Logger
	if input.Logger != nil {
		blockLogger = input.Logger.With("module", "block")
	}

	// 无配置提供者时验证器使用默认值
	var (
		validatorOptions *validatorconfig.ValidatorOptions
		genesisOptions   *genesisconfig.GenesisOptions
	)
	if input.ConfigProvider != nil {
		validatorOptions = input.ConfigProvider.GetValidator()
		genesisOptions = input.ConfigProvider.GetGenesis()
	}

	blockValidator, err := validator.NewService(
		input.LedgerStore,
		input.IDCalculator,
		input.SignatureManager,
		input.AddressManager,
		validatorOptions,
		genesisOptions,
		input.Metrics,
		blockLogger,
	)
	if err != nil {
		return ModuleOutput{}, err
	}

	blockProcessor, err := processor.NewService(
		blockValidator,
		input.LedgerStore,
		input.IDCalculator,
		input.AddressManager,
		input.WriteGate,
		input.EventBus,
		blockLogger,
	)
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		BlockValidator:   blockValidator,
		BlockProcessor:   blockProcessor,
		ValidatorService: blockValidator,
	}, nil
}

// ==================== 事件日志 ====================

type eventLoggingInput struct {
	fx.In

	EventBus event.EventBus `optional:"true"`
	Logger   log.Logger     `optional:"true"`
}

// registerEventLogging 以异步订阅记录区块拒绝，不阻塞处理路径
func registerEventLogging(input eventLoggingInput) error {
	if input.EventBus == nil || input.Logger == nil {
		return nil
	}
	eventLogger := input.Logger.With("module", "block.events")
	return input.EventBus.SubscribeAsync(event.EventTypeBlockRejected, func(e *types.BlockEvent) {
		eventLogger.Debugf("区块被拒绝: account=%s height=%d reason=%s", e.Account, e.Height, e.Reason)
	}, true)
}
