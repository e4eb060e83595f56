// Package processor 实现区块处理服务
//
// 处理流程：无锁验证 → 账户锁 → 写门闸检查 → 账本原子追加 → 发布事件。
// 账本在事务内复核头区块与领取标记，验证与追加之间被其它写入抢先时返回冲突，
// 冲突以 PreviousBlockError 报告给调用方。
package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/event"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
	"github.com/billy1624/champ/pkg/utils/keymutex"
)

// ConflictDetail 追加冲突时 ValidationError 的 Detail
const ConflictDetail = "conflict"

var _ block.BlockProcessor = (*Service)(nil)

// Service 区块处理服务
type Service struct {
	validator block.BlockValidator
	store     ledgerif.Store
	ids       block.IDCalculator
	addresses crypto.AddressManager
	gate      writegate.WriteGate // 可选
	eventBus  event.EventBus      // 可选
	logger    log.Logger          // 可选

	accountLocks *keymutex.Mutex[types.AccountID]
}

// NewService 创建区块处理服务
func NewService(
	validator block.BlockValidator,
	store ledgerif.Store,
	ids block.IDCalculator,
	addresses crypto.AddressManager,
	gate writegate.WriteGate,
	eventBus event.EventBus,
	logger log.Logger,
) (*Service, error) {
	if validator == nil {
		return nil, fmt.Errorf("blockValidator 不能为空")
	}
	if store == nil {
		return nil, fmt.Errorf("ledgerStore 不能为空")
	}
	if ids == nil {
		return nil, fmt.Errorf("idCalculator 不能为空")
	}
	if addresses == nil {
		return nil, fmt.Errorf("addressManager 不能为空")
	}

	return &Service{
		validator:    validator,
		store:        store,
		ids:          ids,
		addresses:    addresses,
		gate:         gate,
		eventBus:     eventBus,
		logger:       logger,
		accountLocks: keymutex.New[types.AccountID](),
	}, nil
}

// ProcessBlock 验证并追加区块
func (s *Service) ProcessBlock(ctx context.Context, blk *types.SignedBlock) (types.BlockID, error) {
	if err := s.validator.ValidateBlock(ctx, blk); err != nil {
		s.publish(event.EventTypeBlockRejected, s.newEvent(blk, failureReason(err)))
		return types.BlockID{}, err
	}

	account, err := s.addresses.AccountIDFromPublicKey(blk.PublicKey)
	if err != nil {
		// 验证通过意味着公钥可用，这里只做防御
		return types.BlockID{}, types.NewValidationError(types.SignatureInvalid, "无法由公钥派生账户").WithCause(err)
	}
	s.publish(event.EventTypeBlockValidated, s.newEvent(blk, ""))

	s.accountLocks.Lock(account)
	defer s.accountLocks.Unlock(account)

	id, err := s.append(ctx, blk)
	if err != nil {
		if errors.Is(err, ledgerif.ErrConflict) {
			err = types.NewValidationError(types.PreviousBlockError, ConflictDetail).WithCause(err)
		} else {
			err = types.NewNodeError(types.StorageUnavailable, err)
		}
		s.publish(event.EventTypeBlockRejected, s.newEvent(blk, failureReason(err)))
		if s.logger != nil {
			s.logger.Warnf("区块追加失败: account=%s height=%d err=%v", account, blk.Data.Height, err)
		}
		return types.BlockID{}, err
	}

	s.publish(event.EventTypeBlockAppended, s.newEvent(blk, ""))
	if s.logger != nil {
		s.logger.Infof("区块已追加: account=%s height=%d id=%s txs=%d",
			account, blk.Data.Height, id, len(blk.Data.Transactions))
	}
	return id, nil
}

// append 门闸放行后写入账本
func (s *Service) append(ctx context.Context, blk *types.SignedBlock) (types.BlockID, error) {
	if s.gate != nil {
		if err := s.gate.AssertWriteAllowed(ctx, "AddBlock"); err != nil {
			return types.BlockID{}, err
		}
	}
	return s.store.AddBlock(ctx, blk)
}

func (s *Service) newEvent(blk *types.SignedBlock, reason string) *types.BlockEvent {
	e := &types.BlockEvent{Reason: reason}
	if blk == nil || blk.Data == nil {
		return e
	}
	if account, err := s.addresses.AccountIDFromPublicKey(blk.PublicKey); err == nil {
		e.Account = account
	}
	e.BlockID = s.ids.BlockID(blk.Data)
	e.Height = blk.Data.Height
	e.Balance = blk.Data.Balance
	e.TxCount = len(blk.Data.Transactions)
	return e
}

func (s *Service) publish(eventType event.EventType, e *types.BlockEvent) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(eventType, e)
}

// failureReason 失败类别名
func failureReason(err error) string {
	if kind, ok := types.ValidationKindOf(err); ok {
		return kind.String()
	}
	if kind, ok := types.NodeKindOf(err); ok {
		return kind.String()
	}
	return err.Error()
}
