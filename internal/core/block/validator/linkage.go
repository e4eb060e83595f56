package validator

import (
	"bytes"
	"fmt"
	"math"

	"github.com/billy1624/champ/pkg/types"
)

// CheckLinkage 检查候选区块是否接续 prev：先高度，后 previous
func (s *Service) CheckLinkage(prev *types.SignedBlock, candidate *types.BlockData) error {
	if prev == nil || prev.Data == nil || candidate == nil {
		return types.NewNodeError(types.BlockDataNotFound, nil)
	}

	prevHeight := prev.Data.Height
	if prevHeight == math.MaxUint64 || candidate.Height != prevHeight+1 {
		return types.NewValidationError(types.BlockHeightError,
			fmt.Sprintf("期望高度 %d 的后继，实际 %d", prevHeight, candidate.Height))
	}

	prevID := s.ids.BlockID(prev.Data)
	if !bytes.Equal(candidate.Previous, prevID[:]) {
		return types.NewValidationError(types.PreviousBlockError,
			fmt.Sprintf("previous 应为 %s", prevID))
	}
	return nil
}
