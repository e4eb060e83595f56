// 基于asaskevich/EventBus的事件总线实现

package event

import (
	"sync/atomic"

	evbus "github.com/asaskevich/EventBus"

	"github.com/billy1624/champ/pkg/interfaces/infrastructure/event"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
)

// EventBus 对 asaskevich/EventBus 的薄封装，增加发布计数和调试日志
type EventBus struct {
	bus       evbus.Bus
	logger    log.Logger
	published atomic.Uint64
}

var _ event.EventBus = (*EventBus)(nil)

// New 创建事件总线实例，logger 可为空
func New(logger log.Logger) *EventBus {
	return &EventBus{
		bus:    evbus.New(),
		logger: logger,
	}
}

// Subscribe 同步订阅
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	return eb.bus.Subscribe(string(eventType), handler)
}

// SubscribeAsync 异步订阅
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	return eb.bus.SubscribeAsync(string(eventType), handler, transactional)
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	return eb.bus.Unsubscribe(string(eventType), handler)
}

// Publish 发布事件，没有订阅者时直接返回
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	eb.published.Add(1)
	if !eb.bus.HasCallback(string(eventType)) {
		return
	}
	if eb.logger != nil {
		eb.logger.Debugf("发布事件: %s", eventType)
	}
	eb.bus.Publish(string(eventType), args...)
}

// HasCallback 检查是否有回调
func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	return eb.bus.HasCallback(string(eventType))
}

// WaitAsync 等待异步处理完成
func (eb *EventBus) WaitAsync() {
	eb.bus.WaitAsync()
}

// PublishedCount 已发布事件总数（含无订阅者的事件）
func (eb *EventBus) PublishedCount() uint64 {
	return eb.published.Load()
}
