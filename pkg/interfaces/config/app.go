// Package config 定义配置访问接口
package config

import "github.com/billy1624/champ/pkg/types"

// AppOptions 应用配置选项，提供解析后的用户配置
type AppOptions interface {
	GetAppConfig() *types.AppConfig
}
