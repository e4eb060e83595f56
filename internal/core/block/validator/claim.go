package validator

import (
	"context"
	"errors"
	"fmt"

	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
	"github.com/billy1624/champ/pkg/types"
)

// resolveClaim 解析一笔 Collect，返回被领取 Send 的金额
func (s *Service) resolveClaim(ctx context.Context, claimer types.AccountID, index int, c *types.TxCollect) (uint64, error) {
	sendID, err := types.TransactionIDFromBytes(c.TransactionID)
	if err != nil {
		return 0, types.NewNodeError(types.TxNotFound, err)
	}

	tx, err := callStorage(ctx, s.options.StorageTimeout, func(ctx context.Context) (*types.Transaction, error) {
		return s.store.GetTransaction(ctx, sendID)
	})
	if err != nil {
		if errors.Is(err, ledgerif.ErrNotFound) {
			return 0, types.NewTxValidationError(types.TxValidationError, index,
				fmt.Sprintf("被领取的交易 %s 不存在", sendID))
		}
		return 0, storageFailure(err)
	}

	if !tx.HasPayload() {
		return 0, types.NewTxValidationError(types.SendTxNotFound, index, sendID.String())
	}
	send, ok := tx.Send()
	if !ok {
		return 0, types.NewTxValidationError(types.MissmatchedTx, index,
			fmt.Sprintf("被领取的交易是 %s 而非 send", tx.KindName()))
	}
	if !claimer.Equal(send.Receiver) {
		return 0, types.NewTxValidationError(types.TxValidationError, index, "Send 的接收方不是本账户")
	}

	claimed, err := callStorage(ctx, s.options.StorageTimeout, func(ctx context.Context) (bool, error) {
		return s.store.IsClaimed(ctx, sendID)
	})
	if err != nil {
		return 0, storageFailure(err)
	}
	if claimed {
		return 0, types.NewTxValidationError(types.DoubleClaim, index, sendID.String())
	}

	return send.Amount, nil
}

func storageFailure(err error) error {
	if isTimeout(err) {
		return types.NewNodeError(types.StorageTimeout, err)
	}
	return types.NewNodeError(types.StorageUnavailable, err)
}
