package types

// BlockEvent 区块事件载荷，随 block.validated / block.rejected / block.appended 发布
type BlockEvent struct {
	Account AccountID
	BlockID BlockID
	Height  uint64
	Balance uint64
	TxCount int
	Reason  string // 仅 rejected：失败类别
}
