package http

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/config"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
)

// ModuleInput HTTP 模块依赖
type ModuleInput struct {
	fx.In

	Lifecycle      fx.Lifecycle
	ConfigProvider config.Provider
	Logger         log.Logger `optional:"true"`

	BlockValidator blockif.BlockValidator
	BlockProcessor blockif.BlockProcessor
	IDCalculator   blockif.IDCalculator
	LedgerStore    ledgerif.Store
	AddressManager crypto.AddressManager
	PasswordHasher crypto.PasswordHasher
	WriteGate      writegate.WriteGate  `optional:"true"`
	Registry       *prometheus.Registry `optional:"true"`
}

// Module 返回 HTTP API 模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(ProvideServer),
	)
}

// ProvideServer 创建服务器并注册生命周期钩子；api.enabled 为 false 时返回 nil
func ProvideServer(input ModuleInput) (*Server, error) {
	options := input.ConfigProvider.GetAPI()
	if options != nil && !options.Enabled {
		if input.Logger != nil {
			input.Logger.Info("HTTP API 已在配置中禁用")
		}
		return nil, nil
	}

	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "api")
	}

	server, err := NewServer(Dependencies{
		Options:        options,
		Validator:      input.BlockValidator,
		Processor:      input.BlockProcessor,
		Store:          input.LedgerStore,
		IDCalculator:   input.IDCalculator,
		AddressManager: input.AddressManager,
		PasswordHasher: input.PasswordHasher,
		WriteGate:      input.WriteGate,
		Registry:       input.Registry,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	input.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server, nil
}
