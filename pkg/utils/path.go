// Package utils 提供路径等通用工具函数
package utils

import (
	"os"
	"path/filepath"
)

// HomeEnv 指定节点工作目录的环境变量
const HomeEnv = "CHAMP_HOME"

// GetHomeDir 获取节点工作目录的绝对路径
// 优先使用 CHAMP_HOME，否则使用当前工作目录
func GetHomeDir() string {
	if home := os.Getenv(HomeEnv); home != "" {
		if abs, err := filepath.Abs(home); err == nil {
			return abs
		}
		return home
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// ResolveDataPath 解析数据目录路径为绝对路径
// 绝对路径原样返回，相对路径基于工作目录解析
func ResolveDataPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(GetHomeDir(), path)
}

// EnsureDir 确保目录存在，如果不存在则创建
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
