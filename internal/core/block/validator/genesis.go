package validator

import (
	"context"
	"fmt"
	"math/big"

	"github.com/billy1624/champ/pkg/types"
)

// validateGenesis 账户第一个区块：高度 0、previous 为零值，余额从创世额度起算
func (s *Service) validateGenesis(ctx context.Context, account types.AccountID, block *types.SignedBlock) error {
	data := block.Data

	if data.Height != 0 {
		return types.NewValidationError(types.BlockHeightError,
			fmt.Sprintf("账户无头区块，创世区块高度必须为 0，实际 %d", data.Height))
	}
	if prev, ok := data.PreviousID(); !ok || !prev.IsZero() {
		return types.NewValidationError(types.PreviousBlockError, "创世区块 previous 必须为空或全零")
	}
	if err := s.verifySignature(block); err != nil {
		return err
	}

	allotment := s.genesis.BalanceFor(s.addresses.Encode(account))
	_, err := s.AccumulateBalance(ctx, account, new(big.Int).SetUint64(allotment), data)
	return err
}
