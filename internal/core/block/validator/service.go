// Package validator 实现区块验证服务
//
// 验证流程：头区块查询 → 签名 → 链接关系 → 余额折算（含 Collect 领取解析）。
// 账户没有头区块时走创世路径。验证只读，不写入任何数据。
//
// 失败分两类：
//   - *types.ValidationError：区块非法，永不重试
//   - *types.NodeError：节点无法完成验证（存储超时可重试）
package validator

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	genesisconfig "github.com/billy1624/champ/internal/config/genesis"
	validatorconfig "github.com/billy1624/champ/internal/config/validator"
	"github.com/billy1624/champ/internal/core/infrastructure/metrics"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

var _ blockif.BlockValidator = (*Service)(nil)

// Service 区块验证服务
//
// 除指标外无共享可变状态，不同账户的验证可完全并发。
type Service struct {
	// ==================== 依赖注入 ====================

	store     ledgerif.Store
	ids       blockif.IDCalculator
	signer    crypto.SignatureManager
	addresses crypto.AddressManager

	options *validatorconfig.ValidatorOptions
	genesis *genesisconfig.GenesisOptions

	metrics *metrics.ValidatorMetrics
	logger  log.Logger
}

// NewService 创建区块验证服务
//
// options 为空时使用默认配置；genesis 为空时新账户创世余额为 0。
func NewService(
	store ledgerif.Store,
	ids blockif.IDCalculator,
	signer crypto.SignatureManager,
	addresses crypto.AddressManager,
	options *validatorconfig.ValidatorOptions,
	genesis *genesisconfig.GenesisOptions,
	validatorMetrics *metrics.ValidatorMetrics,
	logger log.Logger,
) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("ledgerStore 不能为空")
	}
	if ids == nil {
		return nil, fmt.Errorf("idCalculator 不能为空")
	}
	if signer == nil {
		return nil, fmt.Errorf("signatureManager 不能为空")
	}
	if addresses == nil {
		return nil, fmt.Errorf("addressManager 不能为空")
	}
	if options == nil {
		options = validatorconfig.New(nil).GetOptions()
	}
	if genesis == nil {
		genesis = &genesisconfig.GenesisOptions{}
	}

	return &Service{
		store:     store,
		ids:       ids,
		signer:    signer,
		addresses: addresses,
		options:   options,
		genesis:   genesis,
		metrics:   validatorMetrics,
		logger:    logger,
	}, nil
}

// ValidateBlock 完整验证候选区块
func (s *Service) ValidateBlock(ctx context.Context, block *types.SignedBlock) error {
	start := time.Now()
	err := s.validate(ctx, block)
	s.observe(block, err, time.Since(start))
	return err
}

func (s *Service) validate(ctx context.Context, block *types.SignedBlock) error {
	if block == nil || block.Data == nil {
		return types.NewNodeError(types.BlockDataNotFound, nil)
	}
	data := block.Data

	account, err := s.addresses.AccountIDFromPublicKey(block.PublicKey)
	if err != nil {
		return types.NewValidationError(types.SignatureInvalid, "无法由公钥派生账户").WithCause(err)
	}

	prev, err := callStorage(ctx, s.options.StorageTimeout, func(ctx context.Context) (*types.SignedBlock, error) {
		return s.store.GetHeadBlock(ctx, account)
	})
	switch {
	case err == nil:
	case errors.Is(err, ledgerif.ErrNoLastBlock):
		return s.validateGenesis(ctx, account, block)
	case isTimeout(err):
		return types.NewNodeError(types.StorageTimeout, err)
	default:
		return types.NewNodeError(types.BlockNotFound, err)
	}

	if err := s.verifySignature(block); err != nil {
		return err
	}
	if err := s.CheckLinkage(prev, data); err != nil {
		return err
	}

	prior := new(big.Int).SetUint64(prev.Data.Balance)
	_, err = s.AccumulateBalance(ctx, account, prior, data)
	return err
}

// verifySignature 验证对 BlockData 规范编码的签名
func (s *Service) verifySignature(block *types.SignedBlock) error {
	data := block.Data
	if err := s.signer.Verify(data.SignatureType, data.Marshal(), block.PublicKey, block.Signature); err != nil {
		return types.NewValidationError(types.SignatureInvalid, data.SignatureType.String()).WithCause(err)
	}
	return nil
}

// observe 记录指标与日志
func (s *Service) observe(block *types.SignedBlock, err error, elapsed time.Duration) {
	var height uint64
	if block != nil && block.Data != nil {
		height = block.Data.Height
	}

	if err == nil {
		s.metrics.ObserveValidation(metrics.ResultAccepted, "", elapsed)
		if s.logger != nil {
			s.logger.Debugf("区块验证通过: height=%d elapsed=%s", height, elapsed)
		}
		return
	}

	if kind, ok := types.ValidationKindOf(err); ok {
		s.metrics.ObserveValidation(metrics.ResultRejected, kind.String(), elapsed)
		if s.logger != nil {
			s.logger.Debugf("区块验证失败: height=%d err=%v", height, err)
		}
		return
	}

	kindName := "unknown"
	if kind, ok := types.NodeKindOf(err); ok {
		kindName = kind.String()
	}
	s.metrics.ObserveValidation(metrics.ResultError, kindName, elapsed)
	if s.logger != nil {
		s.logger.Warnf("区块验证未完成: height=%d err=%v", height, err)
	}
}
