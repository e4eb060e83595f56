package api

import "time"

// HTTP API 默认配置值
const (
	// defaultEnabled 默认启用 HTTP API
	defaultEnabled = true

	// defaultListen 默认监听地址
	// 原因：只监听本机，追加接口需要显式配置管理口令后再对外开放
	defaultListen = "127.0.0.1:8080"

	// defaultReadTimeout 读取超时
	defaultReadTimeout = 15 * time.Second

	// defaultWriteTimeout 写入超时，需覆盖一次完整的区块验证
	defaultWriteTimeout = 30 * time.Second

	// defaultShutdownTimeout 优雅关闭等待时间
	defaultShutdownTimeout = 10 * time.Second

	// defaultMaxBodyBytes 请求体上限 1MB
	defaultMaxBodyBytes int64 = 1 << 20
)
