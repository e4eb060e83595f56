package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/billy1624/champ/pkg/types"
)

// LoadFromFile 读取 JSON 配置文件
func LoadFromFile(path string) (*types.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("配置文件 %s: %w", path, err)
	}
	return cfg, nil
}

// Parse 解析 JSON 配置，拒绝未知字段以便尽早发现拼写错误
func Parse(data []byte) (*types.AppConfig, error) {
	var cfg types.AppConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &cfg, nil
}
