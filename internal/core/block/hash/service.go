// Package hash 计算区块ID与交易ID
//
//   - BlockID       = SHA3-256(BlockData 规范编码)
//   - TransactionID = SHA3-256(BlockID ‖ Transaction 规范编码)
package hash

import (
	"fmt"

	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/types"
)

var _ blockif.IDCalculator = (*BlockHashService)(nil)

// BlockHashService 区块与交易ID计算服务
type BlockHashService struct {
	hasher crypto.HashManager
}

// NewBlockHashService 创建ID计算服务
func NewBlockHashService(hasher crypto.HashManager) (*BlockHashService, error) {
	if hasher == nil {
		return nil, fmt.Errorf("hasher 不能为空")
	}
	return &BlockHashService{hasher: hasher}, nil
}

// BlockID 计算区块ID；nil 数据按空消息处理
func (s *BlockHashService) BlockID(data *types.BlockData) types.BlockID {
	var id types.BlockID
	copy(id[:], s.hasher.SHA3_256(data.Marshal()))
	return id
}

// TransactionID 计算交易ID
func (s *BlockHashService) TransactionID(blockID types.BlockID, tx *types.Transaction) types.TransactionID {
	encoded := tx.Marshal()
	buf := make([]byte, 0, types.HashLength+len(encoded))
	buf = append(buf, blockID[:]...)
	buf = append(buf, encoded...)

	var id types.TransactionID
	copy(id[:], s.hasher.SHA3_256(buf))
	return id
}
