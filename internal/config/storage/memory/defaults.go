package memory

import "time"

// 头区块缓存默认配置值
const (
	// defaultEnabled 默认启用头区块缓存
	defaultEnabled = true

	// defaultLifeWindow 条目存活时间 10 分钟
	// 原因：头区块在追加时主动刷新，过期只是兜底
	defaultLifeWindow = 10 * time.Minute

	// defaultCleanWindow 过期清理间隔 5 分钟
	defaultCleanWindow = 5 * time.Minute

	// defaultMaxEntriesInWindow 窗口内条目数，用于预分配分片
	// 较小的值降低 BigCache 预分配内存
	defaultMaxEntriesInWindow = 10000

	// defaultMaxEntrySize 条目大小预估（字节），区块通常只含少量交易
	defaultMaxEntrySize = 1024

	// defaultHardMaxCacheSize 缓存上限 64MB
	defaultHardMaxCacheSize = 64

	// defaultShards 分片数，必须是 2 的幂
	defaultShards = 256
)
