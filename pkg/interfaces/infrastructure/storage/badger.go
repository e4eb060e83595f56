// Package storage 定义节点使用的存储接口
package storage

import "context"

// BadgerStore 基于 BadgerDB 的持久化键值存储
type BadgerStore interface {
	// Close 关闭数据库连接，等待进行中的写事务退出
	Close() error

	// Get 获取指定键的值；键不存在时返回 nil 值和 nil 错误
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set 单键写入
	Set(ctx context.Context, key, value []byte) error

	// Exists 检查键是否存在
	Exists(ctx context.Context, key []byte) (bool, error)

	// View 在只读事务中执行 fn，提供一致性快照
	View(ctx context.Context, fn func(tx BadgerTransaction) error) error

	// RunInTransaction 在读写事务中执行 fn；fn 返回错误则回滚。
	// 并发事务读写冲突时提交返回 ErrTxnConflict
	RunInTransaction(ctx context.Context, fn func(tx BadgerTransaction) error) error
}

// BadgerTransaction 事务内的键值操作
type BadgerTransaction interface {
	// Get 获取指定键的值；键不存在时返回 nil 值和 nil 错误
	Get(key []byte) ([]byte, error)

	// Set 设置键值对（只读事务中返回错误）
	Set(key, value []byte) error

	// Delete 删除指定键
	Delete(key []byte) error

	// Exists 检查键是否存在
	Exists(key []byte) (bool, error)

	// IteratePrefix 按键序遍历前缀下的键值，fn 返回 false 时停止
	IteratePrefix(prefix []byte, fn func(key, value []byte) bool) error
}
