// Package event 定义进程内事件总线接口
package event

// EventType 事件主题
type EventType string

const (
	// EventTypeBlockValidated 区块通过验证
	EventTypeBlockValidated EventType = "block.validated"
	// EventTypeBlockRejected 区块被拒绝
	EventTypeBlockRejected EventType = "block.rejected"
	// EventTypeBlockAppended 区块已写入账本
	EventTypeBlockAppended EventType = "block.appended"
)

// EventBus 事件总线
type EventBus interface {
	// Subscribe 同步订阅，handler 为任意函数，参数需与 Publish 的参数匹配
	Subscribe(eventType EventType, handler interface{}) error

	// SubscribeAsync 异步订阅，transactional 为 true 时同一 handler 串行执行
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error

	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error

	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})

	// HasCallback 主题是否有订阅者
	HasCallback(eventType EventType) bool

	// WaitAsync 等待所有异步 handler 完成
	WaitAsync()
}
