package block

import (
	"context"

	"github.com/billy1624/champ/pkg/types"
)

// BlockProcessor 区块处理器：验证后在账户锁内追加到账本
type BlockProcessor interface {
	// ProcessBlock 验证并追加，返回新区块ID
	ProcessBlock(ctx context.Context, block *types.SignedBlock) (types.BlockID, error)
}

// IDCalculator 区块ID与交易ID计算
type IDCalculator interface {
	// BlockID 计算区块ID
	BlockID(data *types.BlockData) types.BlockID

	// TransactionID 计算区块内交易ID
	TransactionID(blockID types.BlockID, tx *types.Transaction) types.TransactionID
}
