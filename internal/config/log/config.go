// Package log 日志配置
package log

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	configtypes "github.com/billy1624/champ/pkg/types"
)

// 特殊输出路径
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// LogOptions 日志配置选项
type LogOptions struct {
	Level     string `json:"level"`      // debug|info|warn|error
	ToConsole bool   `json:"to_console"` // 同时输出到 stdout
	FilePath  string `json:"file_path"`  // "stdout"/"stderr" 仅控制台，空表示不写文件

	// lumberjack 轮转
	MaxSize    int  `json:"max_size"`    // MB
	MaxBackups int  `json:"max_backups"` // 保留份数
	MaxAge     int  `json:"max_age"`     // 天
	Compress   bool `json:"compress"`

	EnableCaller     bool `json:"enable_caller"`
	EnableStacktrace bool `json:"enable_stacktrace"` // Error 及以上附带堆栈
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 默认值之上叠加用户配置
func New(userConfig *configtypes.UserLogConfig) *Config {
	options := defaultOptions()
	if userConfig != nil {
		applyUserLogConfig(options, userConfig)
	}
	return &Config{options: options}
}

// NewFromOptions 直接使用已构造的选项，nil 时取默认值
func NewFromOptions(options *LogOptions) *Config {
	if options == nil {
		options = defaultOptions()
	}
	return &Config{options: options}
}

func defaultOptions() *LogOptions {
	return &LogOptions{
		Level:            defaultLogLevel,
		ToConsole:        defaultToConsole,
		FilePath:         defaultFilePath,
		MaxSize:          defaultMaxSize,
		MaxBackups:       defaultMaxBackups,
		MaxAge:           defaultMaxAge,
		Compress:         defaultCompress,
		EnableCaller:     defaultEnableCaller,
		EnableStacktrace: defaultEnableStacktrace,
	}
}

// applyUserLogConfig 只覆盖配置文件中出现的字段
func applyUserLogConfig(o *LogOptions, u *configtypes.UserLogConfig) {
	if u.Level != nil {
		o.Level = *u.Level
	}
	if u.FilePath != nil {
		o.FilePath = *u.FilePath
		o.ToConsole = false // 显式指定文件时默认关闭控制台，可由 to_console 再打开
	}
	if u.ToConsole != nil {
		o.ToConsole = *u.ToConsole
	}
	if u.MaxSize != nil && *u.MaxSize > 0 {
		o.MaxSize = *u.MaxSize
	}
	if u.MaxBackups != nil && *u.MaxBackups >= 0 {
		o.MaxBackups = *u.MaxBackups
	}
	if u.MaxAge != nil && *u.MaxAge >= 0 {
		o.MaxAge = *u.MaxAge
	}
	if u.Compress != nil {
		o.Compress = *u.Compress
	}
	if u.EnableCaller != nil {
		o.EnableCaller = *u.EnableCaller
	}
	if u.EnableStacktrace != nil {
		o.EnableStacktrace = *u.EnableStacktrace
	}
}

// GetOptions 获取完整的日志配置选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// ZapLevel 解析日志级别
func (c *Config) ZapLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.options.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("无效的日志级别 %q: %w", c.options.Level, err)
	}
	return level, nil
}

// FileOutput 是否写日志文件
func (c *Config) FileOutput() bool {
	p := c.options.FilePath
	return p != "" && p != OutputStdout && p != OutputStderr
}

// Encoder 文件用 JSON，控制台用带颜色的文本
func (c *Config) Encoder(console bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
	}
	if console {
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}
