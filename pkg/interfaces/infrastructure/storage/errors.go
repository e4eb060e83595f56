package storage

import "errors"

var (
	// ErrTxnConflict 乐观事务提交时检测到并发冲突
	ErrTxnConflict = errors.New("存储事务冲突")

	// ErrStoreClosing 存储正在关闭，拒绝新的写入
	ErrStoreClosing = errors.New("存储正在关闭")
)
