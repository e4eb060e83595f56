// Package api HTTP API 配置
package api

import (
	"time"

	"github.com/billy1624/champ/pkg/types"
)

// APIOptions HTTP API 配置选项
type APIOptions struct {
	Enabled           bool          `json:"enabled"`
	Listen            string        `json:"listen"`
	AdminPasswordHash string        `json:"admin_password_hash"` // 为空时禁用追加接口
	ReadTimeout       time.Duration `json:"read_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout"`
	MaxBodyBytes      int64         `json:"max_body_bytes"`
}

// Config HTTP API 配置实现
type Config struct {
	options *APIOptions
}

// New 创建 HTTP API 配置
func New(userConfig interface{}) *Config {
	options := &APIOptions{
		Enabled:         defaultEnabled,
		Listen:          defaultListen,
		ReadTimeout:     defaultReadTimeout,
		WriteTimeout:    defaultWriteTimeout,
		ShutdownTimeout: defaultShutdownTimeout,
		MaxBodyBytes:    defaultMaxBodyBytes,
	}
	if cfg, ok := userConfig.(*types.UserAPIConfig); ok && cfg != nil {
		if cfg.Enabled != nil {
			options.Enabled = *cfg.Enabled
		}
		if cfg.Listen != nil && *cfg.Listen != "" {
			options.Listen = *cfg.Listen
		}
		if cfg.AdminPasswordHash != nil {
			options.AdminPasswordHash = *cfg.AdminPasswordHash
		}
	}
	return &Config{options: options}
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}
