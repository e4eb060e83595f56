// Package writegate 实现账本写门闸
//
// 维护期间或节点关闭过程中，门闸进入只读模式，区块追加被拒绝而验证与查询不受影响。
package writegate

import (
	"context"
	"fmt"
	"sync"
	"time"

	wgif "github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
)

// gateImpl WriteGate 默认实现，RWMutex 保护状态
type gateImpl struct {
	mu sync.RWMutex

	readOnly   bool
	reason     string
	readOnlyAt time.Time

	now func() time.Time
}

var _ wgif.WriteGate = (*gateImpl)(nil)

// New 创建可写状态的门闸
func New() wgif.WriteGate {
	return &gateImpl{now: time.Now}
}

// EnterReadOnly 进入只读模式；已只读时只更新原因，保留起始时间
func (g *gateImpl) EnterReadOnly(reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.readOnly {
		g.readOnlyAt = g.now()
	}
	g.readOnly = true
	g.reason = reason
}

// ExitReadOnly 退出只读模式
func (g *gateImpl) ExitReadOnly() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.readOnly = false
	g.reason = ""
	g.readOnlyAt = time.Time{}
}

// IsReadOnly 检查是否处于只读模式
func (g *gateImpl) IsReadOnly() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.readOnly
}

// Status 返回状态快照
func (g *gateImpl) Status() wgif.Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return wgif.Status{ReadOnly: g.readOnly, Reason: g.reason, Since: g.readOnlyAt}
}

// AssertWriteAllowed 校验写操作是否允许
func (g *gateImpl) AssertWriteAllowed(_ context.Context, op string) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.readOnly {
		return fmt.Errorf("%w: op=%s reason=%s", wgif.ErrReadOnly, op, g.reason)
	}
	return nil
}
