package storage

import "context"

// MemoryStore 进程内缓存
//
// 缓存只是加速层：未命中或出错时调用方必须回退到持久化存储。
type MemoryStore interface {
	// Get 获取缓存值
	Get(ctx context.Context, key string) (value []byte, exists bool, err error)

	// Set 写入缓存值，过期策略由实现的生命周期窗口决定
	Set(ctx context.Context, key string, value []byte) error

	// Delete 删除缓存值
	Delete(ctx context.Context, key string) error

	// Clear 清空缓存
	Clear(ctx context.Context) error

	// Count 当前条目数
	Count(ctx context.Context) (int64, error)

	// Close 释放资源
	Close() error
}
