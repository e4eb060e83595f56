// Package log 基于 zap 的日志实现，控制台与文件双路输出
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logconfig "github.com/billy1624/champ/internal/config/log"
	logInterface "github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	"github.com/billy1624/champ/pkg/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	globalLogger logInterface.Logger
	mu           sync.RWMutex
)

// Logger 实现 log.Logger
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

var _ logInterface.Logger = (*Logger)(nil)

func init() {
	// fx 模块启动前的兜底日志器，只写 stderr
	logger, err := New(logconfig.NewFromOptions(&logconfig.LogOptions{
		Level:    "info",
		FilePath: logconfig.OutputStderr,
	}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化默认日志器失败: %v\n", err)
		return
	}
	SetLogger(logger)
}

// New 根据配置创建日志记录器
//
// 文件路径相对 CHAMP_HOME 解析，JSON 编码并由 lumberjack 轮转。
func New(config *logconfig.Config) (logInterface.Logger, error) {
	opts := config.GetOptions()
	zapLevel, err := config.ZapLevel()
	if err != nil {
		return nil, err
	}
	level := zap.NewAtomicLevelAt(zapLevel)

	var cores []zapcore.Core
	switch {
	case opts.FilePath == logconfig.OutputStderr:
		cores = append(cores, zapcore.NewCore(config.Encoder(true), zapcore.Lock(os.Stderr), level))
	case opts.FilePath == logconfig.OutputStdout || opts.ToConsole:
		cores = append(cores, zapcore.NewCore(config.Encoder(true), zapcore.Lock(os.Stdout), level))
	}

	if config.FileOutput() {
		writer, err := newRotatingWriter(opts)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(config.Encoder(false), writer, level))
	}

	var zapOptions []zap.Option
	if opts.EnableCaller {
		// 跳过本包一层封装
		zapOptions = append(zapOptions, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if opts.EnableStacktrace {
		zapOptions = append(zapOptions, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return wrap(zap.New(zapcore.NewTee(cores...), zapOptions...)), nil
}

func newRotatingWriter(opts *logconfig.LogOptions) (zapcore.WriteSyncer, error) {
	path, err := filepath.Abs(utils.ResolveDataPath(opts.FilePath))
	if err != nil {
		return nil, fmt.Errorf("解析日志文件路径失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("创建日志目录失败: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   opts.Compress,
	}), nil
}

func wrap(z *zap.Logger) *Logger {
	return &Logger{zapLogger: z, sugar: z.Sugar()}
}

// NewNop 丢弃所有输出
func NewNop() logInterface.Logger {
	return wrap(zap.NewNop())
}

// GetZapLogger 获取底层的zap日志记录器
func (l *Logger) GetZapLogger() *zap.Logger {
	return l.zapLogger
}

// SetLogger 设置全局日志记录器，nil 忽略
func SetLogger(logger logInterface.Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	globalLogger = logger
	mu.Unlock()
}

// GetLogger 获取全局日志记录器
func GetLogger() logInterface.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// toZapFields 键值对转字段，落单的键丢弃
func toZapFields(args ...interface{}) []zap.Field {
	if len(args)%2 != 0 {
		args = args[:len(args)-1]
	}

	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}

func (l *Logger) Debug(msg string)                          { l.sugar.Debug(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(msg string)                           { l.sugar.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.sugar.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.sugar.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// Fatal 记录后退出进程
func (l *Logger) Fatal(msg string)                          { l.sugar.Fatal(msg) }
func (l *Logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

// With 附加键值对字段
func (l *Logger) With(args ...interface{}) logInterface.Logger {
	return wrap(l.zapLogger.With(toZapFields(args...)...))
}

// Sync 刷新缓冲
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}
