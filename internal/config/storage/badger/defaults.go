package badger

// BadgerDB 默认配置值
const (
	// defaultDataRoot 默认数据根目录，badger 位于其下的 badger/ 子目录
	defaultDataRoot = "data"

	// defaultSyncWrites 默认启用同步写入
	// 原因：账本追加后立即对外可见（领取标记、头区块），断电丢失会导致重复领取
	defaultSyncWrites = true

	// defaultInMemory 默认使用磁盘
	defaultInMemory = false

	// defaultMemTableSize 内存表大小 64MB
	defaultMemTableSize = 64 << 20

	// defaultBlockCacheSize 块缓存 64MB
	defaultBlockCacheSize = 64 << 20

	// defaultIndexCacheSize 索引缓存 32MB
	defaultIndexCacheSize = 32 << 20

	// defaultValueLogFileSize value log 文件 256MB，降低 mmap 占用
	defaultValueLogFileSize = 256 << 20
)
