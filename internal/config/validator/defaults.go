package validator

import "time"

// 区块验证默认配置值
const (
	// defaultStorageTimeout 单次存储访问的超时时间
	// 超时视为节点临时故障（可重试），不判定区块非法
	defaultStorageTimeout = 5 * time.Second

	// defaultMaxTransactions 单区块最大交易数，同时也是上限
	defaultMaxTransactions = 255

	// defaultMaxConcurrentLookups 单区块 Collect 并发查询数
	defaultMaxConcurrentLookups = 8
)
