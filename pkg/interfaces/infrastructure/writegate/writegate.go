// Package writegate 定义账本写门闸接口
package writegate

import (
	"context"
	"errors"
	"time"
)

// ErrReadOnly 节点处于只读模式时的写入拒绝
var ErrReadOnly = errors.New("ledger is read-only")

// Status 门闸状态快照
type Status struct {
	ReadOnly bool      `json:"read_only"`
	Reason   string    `json:"reason,omitempty"`
	Since    time.Time `json:"since,omitempty"`
}

// WriteGate 账本写门闸
//
// 只读模式下验证照常进行，追加被拒绝。
type WriteGate interface {
	// EnterReadOnly 进入只读模式，重复调用更新原因
	EnterReadOnly(reason string)
	// ExitReadOnly 恢复写入
	ExitReadOnly()
	// IsReadOnly 是否只读
	IsReadOnly() bool
	// Status 当前状态
	Status() Status
	// AssertWriteAllowed 写入前检查，只读时返回包装 ErrReadOnly 的错误
	AssertWriteAllowed(ctx context.Context, op string) error
}
