// Package block 定义区块验证与处理接口
package block

import (
	"context"
	"math/big"

	"github.com/billy1624/champ/pkg/types"
)

// BlockValidator 区块验证器
//
// 验证无副作用：通过只表示调用方可以追加或投票，不写入任何数据。
// 失败时返回 *types.ValidationError（区块非法）或 *types.NodeError（节点故障）。
type BlockValidator interface {
	// ValidateBlock 完整验证候选区块
	ValidateBlock(ctx context.Context, block *types.SignedBlock) error

	// CheckLinkage 检查候选区块与前一区块的链接关系
	CheckLinkage(prev *types.SignedBlock, candidate *types.BlockData) error

	// AccumulateBalance 从 prior 余额出发折算交易，并与声明余额比较，返回折算结果
	AccumulateBalance(ctx context.Context, claimer types.AccountID, prior *big.Int, data *types.BlockData) (*big.Int, error)
}
