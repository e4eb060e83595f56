package validator

import (
	"context"
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/billy1624/champ/pkg/types"
)

// txKind 交易分类
type txKind uint8

const (
	kindSend txKind = iota + 1
	kindCollect
	kindDelegate
)

// classified 第一阶段的分类结果
type classified struct {
	kind    txKind
	send    *types.TxSend
	collect *types.TxCollect
}

// AccumulateBalance 从 prior 出发按交易顺序折算余额，并与声明余额比较
//
//  1. 交易数上限
//  2. 顺序计算交易ID，检测重复，分类（载荷缺失即失败）
//  3. 并发解析全部 Collect，按交易顺序报告第一个失败
//  4. 有符号大整数折算：Send 减、Collect 加、Delegate 不变
//
// 只检查最终余额：等于声明余额且非负。
func (s *Service) AccumulateBalance(ctx context.Context, claimer types.AccountID, prior *big.Int, data *types.BlockData) (*big.Int, error) {
	if data == nil {
		return nil, types.NewNodeError(types.BlockDataNotFound, nil)
	}

	limit := s.options.MaxTransactions
	if limit <= 0 || limit > types.MaxTransactionsPerBlock {
		limit = types.MaxTransactionsPerBlock
	}
	if n := len(data.Transactions); n > limit {
		return nil, types.NewValidationError(types.TooManyTransactions,
			fmt.Sprintf("交易数 %d 超过上限 %d", n, limit))
	}

	txs, err := s.classify(data)
	if err != nil {
		return nil, err
	}

	credits, err := s.resolveClaims(ctx, claimer, txs)
	if err != nil {
		return nil, err
	}

	balance := new(big.Int)
	if prior != nil {
		balance.Set(prior)
	}
	amount := new(big.Int)
	for i, tx := range txs {
		switch tx.kind {
		case kindSend:
			balance.Sub(balance, amount.SetUint64(tx.send.Amount))
		case kindCollect:
			balance.Add(balance, amount.SetUint64(credits[i]))
		}
	}

	declared := new(big.Int).SetUint64(data.Balance)
	if balance.Sign() < 0 || balance.Cmp(declared) != 0 {
		return nil, types.NewValidationError(types.TxValidationError,
			fmt.Sprintf("折算余额 %s 与声明余额 %s 不符", balance, declared))
	}
	return balance, nil
}

// classify 第一阶段：顺序计算交易ID并分类
func (s *Service) classify(data *types.BlockData) ([]classified, error) {
	blockID := s.ids.BlockID(data)
	seen := make(map[types.TransactionID]struct{}, len(data.Transactions))
	out := make([]classified, len(data.Transactions))

	for i, tx := range data.Transactions {
		id := s.ids.TransactionID(blockID, tx)
		if _, dup := seen[id]; dup {
			return nil, types.NewTxValidationError(types.DuplicatedTx, i, id.String())
		}
		seen[id] = struct{}{}

		if send, ok := tx.Send(); ok {
			out[i] = classified{kind: kindSend, send: send}
		} else if collect, ok := tx.Collect(); ok {
			out[i] = classified{kind: kindCollect, collect: collect}
		} else if _, ok := tx.Delegate(); ok {
			out[i] = classified{kind: kindDelegate}
		} else {
			return nil, types.NewTxValidationError(types.TransactionDataNotFound, i, "交易载荷缺失")
		}
	}
	return out, nil
}

// resolveClaims 第二阶段：并发解析 Collect，结果按下标存放
//
// 不使用 errgroup.WithContext：一个失败不能取消其它查询，
// 否则排在前面的交易可能被误报为超时。
func (s *Service) resolveClaims(ctx context.Context, claimer types.AccountID, txs []classified) ([]uint64, error) {
	credits := make([]uint64, len(txs))
	errs := make([]error, len(txs))

	var g errgroup.Group
	workers := s.options.MaxConcurrentLookups
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i := range txs {
		if txs[i].kind != kindCollect {
			continue
		}
		g.Go(func() error {
			credits[i], errs[i] = s.resolveClaim(ctx, claimer, i, txs[i].collect)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return credits, nil
}
