// Package configs 嵌入各环境的默认配置文件
package configs

import _ "embed"

// EmbeddedConfigs 嵌入的配置文件内容
type EmbeddedConfigs struct {
	Default    []byte
	Production []byte
}

//go:embed default/config.json
var defaultConfig []byte

//go:embed production/config.json
var productionConfig []byte

// GetEmbeddedConfigs 获取所有嵌入的配置
func GetEmbeddedConfigs() *EmbeddedConfigs {
	return &EmbeddedConfigs{
		Default:    defaultConfig,
		Production: productionConfig,
	}
}

// GetDefaultConfig 获取默认（开发）配置
func GetDefaultConfig() []byte {
	return defaultConfig
}

// GetProductionConfig 获取生产环境配置
func GetProductionConfig() []byte {
	return productionConfig
}

// Get 按环境名获取配置，未知环境返回 nil
func Get(env string) []byte {
	switch env {
	case "", "default", "development":
		return defaultConfig
	case "production":
		return productionConfig
	}
	return nil
}
