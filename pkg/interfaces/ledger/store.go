// Package ledger 定义账户链账本的存储接口
//
// 账本按账户维护只追加的区块链（头区块、高度索引），并提供全局的交易查询
// 与 Send 交易的领取标记。验证器只读；追加由区块处理器完成。
package ledger

import (
	"context"
	"errors"

	"github.com/billy1624/champ/pkg/types"
)

var (
	// ErrNoLastBlock 账户尚无任何区块
	ErrNoLastBlock = errors.New("账户没有头区块")

	// ErrNotFound 查询对象不存在
	ErrNotFound = errors.New("账本记录不存在")

	// ErrConflict 追加时账户头已变化、高度不连续、分叉或 Send 已被领取
	ErrConflict = errors.New("账本追加冲突")
)

// Store 账本存储
type Store interface {
	// ==================== 验证所需的只读查询 ====================

	// GetHeadBlock 账户当前头区块；无区块时返回 ErrNoLastBlock
	GetHeadBlock(ctx context.Context, account types.AccountID) (*types.SignedBlock, error)

	// GetTransaction 按交易ID查询交易；不存在时返回 ErrNotFound
	GetTransaction(ctx context.Context, id types.TransactionID) (*types.Transaction, error)

	// IsClaimed Send 交易是否已被某个 Collect 领取
	IsClaimed(ctx context.Context, sendID types.TransactionID) (bool, error)

	// ==================== 追加 ====================

	// AddBlock 原子追加区块：在同一事务内复核头区块、高度、previous 与领取标记，
	// 不满足时返回 ErrConflict 且不写入任何数据
	AddBlock(ctx context.Context, block *types.SignedBlock) (types.BlockID, error)

	// ==================== 扩展查询 ====================

	// GetBlock 按区块ID查询
	//
	// 区块ID不含账户，多个账户可持有同ID的区块；此时返回其中之一
	GetBlock(ctx context.Context, id types.BlockID) (*types.SignedBlock, error)

	// GetBlockByHeight 按账户与高度查询
	GetBlockByHeight(ctx context.Context, account types.AccountID, height uint64) (*types.SignedBlock, error)

	// GetTransactionRecord 查询交易及其所在区块；同ID交易存在于多个账户时返回其中之一
	GetTransactionRecord(ctx context.Context, id types.TransactionID) (*TransactionRecord, error)

	// GetAccountDelegate 账户最近一次委托的代表
	GetAccountDelegate(ctx context.Context, account types.AccountID) ([]byte, error)

	// GetDelegatedAccounts 委托给指定代表的账户
	GetDelegatedAccounts(ctx context.Context, representative []byte) ([]types.AccountID, error)
}

// TransactionRecord 交易在账本中的位置
type TransactionRecord struct {
	BlockID     types.BlockID
	Index       int
	Account     types.AccountID
	Transaction *types.Transaction
}
