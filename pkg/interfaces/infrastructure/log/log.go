// Package log 节点统一的日志接口，实现位于 internal/core/infrastructure/log
package log

import "go.uber.org/zap"

// Logger 日志记录器
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	Fatal(msg string)
	Fatalf(format string, args ...interface{})

	// With 返回附加键值对字段的日志记录器，如 With("module", "ledger")
	With(args ...interface{}) Logger

	Sync() error

	// GetZapLogger 底层 zap 日志器，gin 访问日志使用
	GetZapLogger() *zap.Logger
}
