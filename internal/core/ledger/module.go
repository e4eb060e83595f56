package ledger

import (
	"go.uber.org/fx"

	"github.com/billy1624/champ/internal/core/infrastructure/metrics"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/storage"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
)

// ModuleInput 账本模块依赖
type ModuleInput struct {
	fx.In

	BadgerStore    storage.BadgerStore
	MemoryStore    storage.MemoryStore `optional:"true"`
	IDCalculator   blockif.IDCalculator
	AddressManager crypto.AddressManager
	Metrics        *metrics.LedgerMetrics `optional:"true"`
	Logger         log.Logger             `optional:"true"`
}

// ModuleOutput 账本模块输出
type ModuleOutput struct {
	fx.Out

	Store ledgerif.Store
}

// Module 返回账本模块
func Module() fx.Option {
	return fx.Module("ledger",
		fx.Provide(ProvideStore),
	)
}

// ProvideStore 创建账本存储
func ProvideStore(input ModuleInput) (ModuleOutput, error) {
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "ledger")
	}
	store, err := NewStore(input.BadgerStore, input.MemoryStore, input.IDCalculator, input.AddressManager, input.Metrics, logger)
	if err != nil {
		return ModuleOutput{}, err
	}
	return ModuleOutput{Store: store}, nil
}
